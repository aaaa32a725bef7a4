// Package metrics holds the raw measurement model consumed by the engine and
// the errors it reports when a measurement cannot be interpreted.
package metrics

import (
	"fmt"
	"math"
)

// Sample is one named measurement produced by an external analysis step.
type Sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Domain is the closed interval of legal values for a metric.
// Max may be +Inf for unbounded metrics.
type Domain struct {
	Min float64
	Max float64
}

// Common domains.
var (
	Fraction    = Domain{Min: 0, Max: 1}
	Percentage  = Domain{Min: 0, Max: 100}
	NonNegative = Domain{Min: 0, Max: math.Inf(1)}
)

// Contains reports whether v is finite and inside the domain.
func (d Domain) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= d.Min && v <= d.Max
}

// Check returns an InvalidMetricError when v is outside the domain.
func (d Domain) Check(metric string, v float64) error {
	if d.Contains(v) {
		return nil
	}
	return &InvalidMetricError{Metric: metric, Value: v, Domain: d}
}

// String renders the domain as an interval.
func (d Domain) String() string {
	if math.IsInf(d.Max, 1) {
		return fmt.Sprintf("[%g, +Inf)", d.Min)
	}
	return fmt.Sprintf("[%g, %g]", d.Min, d.Max)
}

// ConfigurationError reports a metric name the engine has no table for.
type ConfigurationError struct {
	Metric string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown metric %q", e.Metric)
}

// InvalidMetricError reports a value outside its metric's documented domain.
type InvalidMetricError struct {
	Metric string
	Value  float64
	Domain Domain
	// Subject names the entity the value belongs to, e.g. a candidate.
	Subject string
}

func (e *InvalidMetricError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("invalid %s for %q: %g outside %s", e.Metric, e.Subject, e.Value, e.Domain)
	}
	return fmt.Sprintf("invalid %s: %g outside %s", e.Metric, e.Value, e.Domain)
}
