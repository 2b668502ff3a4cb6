package domain

// MetricPrefix is prepended to every column name to form the metric name.
const MetricPrefix = "pg_"

// MetricType is the gmetric value type every sample is published with.
const MetricType = "float"

// DMaxSeconds is how long gmond keeps a metric after its last update.
const DMaxSeconds = 240

// MetricSample is a single value ready to be handed to the publisher.
type MetricSample struct {
	Name  string
	Value string
	Group string
}

// NewSample builds the sample for a result column.
func NewSample(column, value, group string) MetricSample {
	return MetricSample{
		Name:  MetricPrefix + column,
		Value: value,
		Group: group,
	}
}
