package parser

import (
	"github.com/beevik/etree"

	"github.com/ukaji3/twbstruct-go/pkg/twbstruct/models"
)

// relationTags lists the tags a connection's root relation may use, in lookup order.
var relationTags = []string{
	"_.fcp.ObjectModelEncapsulateLegacy.false...relation",
	"_.fcp.ObjectModelEncapsulateLegacy.true...relation",
	"relation",
}

// ExtractConnection normalizes a data source's connection block.
// A nil node yields an empty connection.
func ExtractConnection(el *etree.Element) models.Connection {
	conn := models.Connection{
		NamedConnections: []models.NamedConnection{},
		Cols:             map[string]string{},
		Refresh:          map[string]string{},
	}
	if el == nil {
		return conn
	}

	conn.Class = attr(el, "class")
	conn.NamedConnections = extractNamedConnections(el)
	conn.Relation = extractRootRelation(el)
	conn.Cols = extractColsMapping(el)
	if refresh := child(el, "refresh"); refresh != nil {
		conn.Refresh = attrs(refresh)
	}
	return conn
}

func extractNamedConnections(el *etree.Element) []models.NamedConnection {
	result := []models.NamedConnection{}
	for _, nc := range children(child(el, "named-connections"), "named-connection") {
		named := models.NamedConnection{
			Name:    attr(nc, "name"),
			Caption: attr(nc, "caption"),
		}
		if detail := child(nc, "connection"); detail != nil {
			named.Details = attrs(detail)
		}
		result = append(result, named)
	}
	return result
}

func extractRootRelation(el *etree.Element) *models.Relation {
	for _, tag := range relationTags {
		if rel := child(el, tag); rel != nil {
			r := extractRelation(rel)
			return &r
		}
	}
	return nil
}

// extractRelation classifies a relation node and extracts it. Join relations
// recurse into their nested relations.
func extractRelation(el *etree.Element) models.Relation {
	relType := attr(el, "type")
	kind := ""
	if relType != nil {
		kind = *relType
	}

	switch kind {
	case "join":
		rel := models.Relation{
			Kind:      models.RelationJoin,
			Join:      attr(el, "join"),
			Clauses:   extractJoinClauses(el),
			Relations: []models.Relation{},
		}
		for _, nested := range nestedRelations(el) {
			rel.Relations = append(rel.Relations, extractRelation(nested))
		}
		return rel
	case "table":
		return models.Relation{
			Kind:       models.RelationTable,
			Name:       attr(el, "name"),
			Table:      attr(el, "table"),
			Connection: attr(el, "connection"),
			TableType:  relType,
		}
	case "text":
		sql := el.Text()
		return models.Relation{
			Kind:       models.RelationCustomSQL,
			Name:       attr(el, "name"),
			Connection: attr(el, "connection"),
			SQL:        &sql,
		}
	default:
		return models.Relation{
			Kind:       models.RelationOther,
			TableType:  relType,
			Attributes: attrs(el),
		}
	}
}

// nestedRelations returns the relation children of a join, whichever relation
// tag variant the document uses.
func nestedRelations(el *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		for _, tag := range relationTags {
			if c.Tag == tag {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func extractJoinClauses(el *etree.Element) []models.JoinClause {
	clauses := []models.JoinClause{}
	for _, c := range children(el, "clause") {
		clause := models.JoinClause{
			Type:        attr(c, "type"),
			Expressions: []models.Expression{},
		}
		if expr := child(c, "expression"); expr != nil {
			clause.Operator = attr(expr, "op")
			clause.Expressions = extractExpressions(expr)
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// extractExpressions returns the nested expressions of an expression node.
func extractExpressions(el *etree.Element) []models.Expression {
	var out []models.Expression
	for _, sub := range children(el, "expression") {
		out = append(out, models.Expression{
			Op:          attr(sub, "op"),
			Expressions: extractExpressions(sub),
		})
	}
	if out == nil {
		return []models.Expression{}
	}
	return out
}

func extractColsMapping(el *etree.Element) map[string]string {
	mapping := map[string]string{}
	for _, m := range children(child(el, "cols"), "map") {
		key, value := attr(m, "key"), attr(m, "value")
		if key != nil && value != nil && *key != "" && *value != "" {
			mapping[*key] = *value
		}
	}
	return mapping
}
