package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

const objectIDTag = "_.fcp.ObjectModelEncapsulateLegacy.true...object-id"

// ExtractMetadataRecords extracts the column-class metadata records of a data source.
func ExtractMetadataRecords(datasource *etree.Element) []models.MetadataRecord {
	records := []models.MetadataRecord{}

	section := descendants(datasource, ".//metadata-records")
	if len(section) == 0 {
		return records
	}

	for _, rec := range section[0].FindElements("metadata-record[@class='column']") {
		records = append(records, extractMetadataRecord(rec))
	}
	return records
}

func extractMetadataRecord(el *etree.Element) models.MetadataRecord {
	return models.MetadataRecord{
		Class:        attr(el, "class"),
		RemoteName:   childText(el, "remote-name"),
		RemoteType:   childText(el, "remote-type"),
		RemoteAlias:  childText(el, "remote-alias"),
		LocalName:    childText(el, "local-name"),
		LocalType:    childText(el, "local-type"),
		ParentName:   childText(el, "parent-name"),
		Aggregation:  childText(el, "aggregation"),
		ContainsNull: childText(el, "contains-null"),
		Collation:    childText(el, "collation"),
		Ordinal:      childText(el, "ordinal"),
		ObjectID:     childText(el, objectIDTag),
		Family:       childText(el, "family"),
	}
}
