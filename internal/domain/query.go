package domain

// DefaultGroup is the metric group used when a query does not name one.
const DefaultGroup = "postgres"

// QueryDefinition is one catalog entry: a statistics query and the group its metrics belong to.
type QueryDefinition struct {
	SQL   string
	Group string
}

// NewQuery returns a definition for sql, tagged with group or DefaultGroup when group is empty.
func NewQuery(sql string, group ...string) QueryDefinition {
	g := DefaultGroup
	if len(group) > 0 && group[0] != "" {
		g = group[0]
	}
	return QueryDefinition{SQL: sql, Group: g}
}
