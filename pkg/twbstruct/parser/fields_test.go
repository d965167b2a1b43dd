package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

const fieldsDataSource = `
<datasource name='federated.1'>
  <connection class='federated'>
    <metadata-records>
      <metadata-record class='column'>
        <remote-name>SALES</remote-name>
        <remote-type>5</remote-type>
        <local-name>[Sales]</local-name>
        <parent-name>[FCT_ORDERS]</parent-name>
        <local-type>real</local-type>
        <aggregation>Sum</aggregation>
        <contains-null>true</contains-null>
        <_.fcp.ObjectModelEncapsulateLegacy.true...object-id>[FCT_ORDERS_1]</_.fcp.ObjectModelEncapsulateLegacy.true...object-id>
      </metadata-record>
      <metadata-record class='capability'>
        <remote-name />
      </metadata-record>
      <metadata-record class='column'>
        <local-name>[Region]</local-name>
      </metadata-record>
    </metadata-records>
  </connection>
  <column caption='Region' datatype='string' name='[Region]' role='dimension' type='nominal'>
    <aliases>
      <alias key='&quot;E&quot;' value='East' />
      <alias key='&quot;W&quot;' value='' />
    </aliases>
  </column>
  <column caption='Margin' datatype='real' name='[Calculation_1]' role='measure' type='quantitative'>
    <calculation class='tableau' formula='SUM([Sales]) * 0.1' />
  </column>
  <column datatype='integer' name='[Bins]' role='dimension'>
    <calculation class='bin' decimals='0' formula='[Sales]' peg='0' size-parameter='[Parameters].[Bin Size]' />
    <range max='100' min='0' />
  </column>
  <column name='[Rank]'>
    <calculation class='tableau' formula='RANK(SUM([Sales]))'>
      <table-calc ordering-type='Field' ordering-field='[Region]' />
    </calculation>
  </column>
  <column name='[Group]'>
    <calculation class='categorical-bin' column='[Region]'>
      <bin value='&quot;East&quot;'>
        <member value='&quot;E&quot;' />
        <member value='&quot;NE&quot;' />
      </bin>
    </calculation>
    <formatted-alias key='East'>Eastern</formatted-alias>
  </column>
</datasource>`

func TestExtractMetadataRecords(t *testing.T) {
	records := ExtractMetadataRecords(parseElement(t, fieldsDataSource))
	require.Len(t, records, 2)

	sales := records[0]
	assert.Equal(t, "column", *sales.Class)
	assert.Equal(t, "SALES", *sales.RemoteName)
	assert.Equal(t, "5", *sales.RemoteType)
	assert.Equal(t, "[Sales]", *sales.LocalName)
	assert.Equal(t, "[FCT_ORDERS]", *sales.ParentName)
	assert.Equal(t, "Sum", *sales.Aggregation)
	assert.Equal(t, "[FCT_ORDERS_1]", *sales.ObjectID)
	assert.Nil(t, sales.Collation)
	assert.Nil(t, sales.Family)

	region := records[1]
	assert.Equal(t, "[Region]", *region.LocalName)
	assert.Nil(t, region.ParentName)
}

func TestExtractMetadataRecordsMissingBlock(t *testing.T) {
	records := ExtractMetadataRecords(parseElement(t, `<datasource name='x'><column name='[A]'/></datasource>`))
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestExtractColumnRecords(t *testing.T) {
	cols := ExtractColumnRecords(parseElement(t, fieldsDataSource))
	require.Len(t, cols, 5)

	region := cols[0]
	assert.Equal(t, "[Region]", region.Name())
	assert.Equal(t, "dimension", region.Attributes["role"])
	assert.Nil(t, region.Calculation)
	assert.Equal(t, map[string]string{`"E"`: "East"}, region.Aliases)

	margin := cols[1]
	require.NotNil(t, margin.Calculation)
	assert.Equal(t, "SUM([Sales]) * 0.1", *margin.Calculation.Formula)
	assert.Equal(t, "tableau", *margin.Calculation.Class)
	assert.Nil(t, margin.Aliases)
	assert.Nil(t, margin.Range)

	bins := cols[2]
	assert.Equal(t, "[Parameters].[Bin Size]", bins.Calculation.Attributes["size-parameter"])
	assert.Equal(t, map[string]string{"max": "100", "min": "0"}, bins.Range)

	rank := cols[3]
	assert.Equal(t, "Field", rank.TableCalc["ordering-type"])

	group := cols[4]
	require.NotNil(t, group.Calculation)
	assert.Nil(t, group.Calculation.Formula)
	assert.Len(t, group.Members, 2)
	assert.Equal(t, `"NE"`, group.Members[1]["value"])
	require.Len(t, group.FormattedAliases, 1)
	assert.Equal(t, "Eastern", *group.FormattedAliases[0].Text)
	assert.Equal(t, "East", group.FormattedAliases[0].Attributes["key"])
}

func TestPairFields(t *testing.T) {
	ds := parseElement(t, fieldsDataSource)
	fields := PairFields(ExtractMetadataRecords(ds), ExtractColumnRecords(ds))

	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.FieldName)
	}
	assert.Equal(t, []string{"[Bins]", "[Calculation_1]", "[Group]", "[Rank]", "[Region]", "[Sales]"}, names)

	byName := map[string]models.PairedField{}
	for _, f := range fields {
		byName[f.FieldName] = f
	}
	assert.True(t, byName["[Region]"].HasMetadata())
	assert.NotNil(t, byName["[Region]"].Column)
	assert.Nil(t, byName["[Sales]"].Column)
	assert.True(t, byName["[Calculation_1]"].IsCalculated())
	assert.False(t, byName["[Region]"].IsCalculated())
	assert.Equal(t, "SUM([Sales]) * 0.1", byName["[Calculation_1]"].Formula())
	assert.Equal(t, "[FCT_ORDERS]", *byName["[Sales]"].ParentTable())
}

func TestPairFieldsCount(t *testing.T) {
	name := func(i int) string { return fmt.Sprintf("[F%d]", i) }
	meta := func(i int) models.MetadataRecord {
		n := name(i)
		return models.MetadataRecord{LocalName: &n}
	}
	col := func(i int) models.ColumnRecord {
		return models.ColumnRecord{Attributes: map[string]string{"name": name(i)}}
	}

	tests := []struct {
		name       string
		metaRange  [2]int
		colRange   [2]int
		wantFields int
	}{
		{"disjoint", [2]int{0, 3}, [2]int{3, 7}, 3 + 4},
		{"overlap", [2]int{0, 5}, [2]int{3, 8}, 5 + 5 - 2},
		{"identical", [2]int{0, 4}, [2]int{0, 4}, 4},
		{"metadata only", [2]int{0, 4}, [2]int{0, 0}, 4},
		{"empty", [2]int{0, 0}, [2]int{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var metadata []models.MetadataRecord
			for i := tt.metaRange[0]; i < tt.metaRange[1]; i++ {
				metadata = append(metadata, meta(i))
			}
			var columns []models.ColumnRecord
			for i := tt.colRange[0]; i < tt.colRange[1]; i++ {
				columns = append(columns, col(i))
			}

			fields := PairFields(metadata, columns)
			assert.Len(t, fields, tt.wantFields)
			for _, f := range fields {
				assert.True(t, f.Metadata != nil || f.Column != nil, f.FieldName)
			}
		})
	}
}

func TestPairFieldsLastRecordWins(t *testing.T) {
	first, second := "first", "second"
	columns := []models.ColumnRecord{
		{Attributes: map[string]string{"name": "[A]", "caption": first}},
		{Attributes: map[string]string{"caption": "unnamed"}},
		{Attributes: map[string]string{"name": "[A]", "caption": second}},
	}
	fields := PairFields(nil, columns)
	require.Len(t, fields, 1)
	assert.Equal(t, second, fields[0].Column.Attributes["caption"])
}
