package domain

import "strings"

// Delimiter separates fields in unaligned psql output.
const Delimiter = "|"

// TabularResult holds the header row and the first data row of a query result.
type TabularResult struct {
	Columns []string
	Values  []string
}

// Empty reports whether the result carries no columns to publish.
func (r TabularResult) Empty() bool {
	return len(r.Columns) == 0
}

// ParseTabular reads the two-line unaligned format: column names, then one row of values.
// Anything past the second line is ignored. Output without a data row yields an empty result.
// A single trailing newline terminates the last line and does not start a new one.
func ParseTabular(text string) TabularResult {
	lines := strings.SplitN(strings.TrimSuffix(text, "\n"), "\n", 3)
	if len(lines) < 2 {
		return TabularResult{}
	}
	header := strings.TrimSuffix(lines[0], "\r")
	row := strings.TrimSuffix(lines[1], "\r")
	if header == "" {
		return TabularResult{}
	}

	cols := strings.Split(header, Delimiter)
	vals := strings.Split(row, Delimiter)
	values := make([]string, len(cols))
	for i := range cols {
		if i < len(vals) {
			values[i] = vals[i]
		}
	}
	return TabularResult{Columns: cols, Values: values}
}

// FormatTabular renders columns and one row in the format ParseTabular reads.
func FormatTabular(columns, values []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(columns, Delimiter))
	b.WriteByte('\n')
	b.WriteString(strings.Join(values, Delimiter))
	b.WriteByte('\n')
	return b.String()
}
