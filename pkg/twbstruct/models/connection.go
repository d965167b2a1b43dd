package models

// RelationKind classifies a relation node.
type RelationKind string

const (
	RelationTable     RelationKind = "table"
	RelationJoin      RelationKind = "join"
	RelationCustomSQL RelationKind = "custom_sql"
	RelationOther     RelationKind = "other"
)

// Connection is the normalized connection block of a data source.
type Connection struct {
	// Class is the connection class tag (e.g. federated, snowflake).
	Class *string `json:"class"`
	// NamedConnections lists the named-connection entries.
	NamedConnections []NamedConnection `json:"named_connections"`
	// Relation is the root of the relation tree, nil when absent.
	Relation *Relation `json:"relation"`
	// Cols maps logical column keys to physical column values.
	Cols map[string]string `json:"cols"`
	// Refresh holds the raw refresh policy attributes.
	Refresh map[string]string `json:"refresh"`
}

// IsEmpty reports whether no part of the connection block was present.
func (c Connection) IsEmpty() bool {
	return c.Class == nil && len(c.NamedConnections) == 0 && c.Relation == nil &&
		len(c.Cols) == 0 && len(c.Refresh) == 0
}

// NamedConnection is one entry of a federated connection.
type NamedConnection struct {
	Name    *string           `json:"name"`
	Caption *string           `json:"caption"`
	Details map[string]string `json:"details,omitempty"`
}

// Relation is a node of the relation tree. Which fields are populated depends on Kind.
type Relation struct {
	Kind RelationKind `json:"type"`
	// Name is the relation name (table and custom SQL relations).
	Name *string `json:"name,omitempty"`
	// Table is the qualified physical table, e.g. [dbo].[Orders].
	Table *string `json:"table,omitempty"`
	// Connection names the named-connection that serves this relation.
	Connection *string `json:"connection,omitempty"`
	// TableType is the raw type attribute of a table relation.
	TableType *string `json:"table_type,omitempty"`
	// Join is the join type (inner, left, ...) of a join relation.
	Join *string `json:"join,omitempty"`
	// Clauses are the join clauses of a join relation.
	Clauses []JoinClause `json:"clauses,omitempty"`
	// Relations are the nested relations of a join.
	Relations []Relation `json:"tables,omitempty"`
	// SQL is the verbatim text of a custom SQL relation.
	SQL *string `json:"sql,omitempty"`
	// Attributes holds every attribute of a relation of unknown kind.
	Attributes map[string]string `json:"attributes,omitempty"`
}

// JoinClause is one clause of a join relation.
type JoinClause struct {
	Type        *string      `json:"type"`
	Operator    *string      `json:"operator,omitempty"`
	Expressions []Expression `json:"expressions"`
}

// Expression is a node of a join clause expression tree.
type Expression struct {
	Op          *string      `json:"op"`
	Expressions []Expression `json:"expressions,omitempty"`
}
