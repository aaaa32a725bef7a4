package bands

import (
	"fmt"
)

// Direction says which end of a metric's range is better.
type Direction int

const (
	// HigherIsBetter tables match values at or above a bound.
	HigherIsBetter Direction = iota
	// LowerIsBetter tables match values at or below a bound.
	LowerIsBetter
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower-is-better"
	}
	return "higher-is-better"
}

// Band is one threshold and the value it yields.
type Band[T any] struct {
	Bound float64
	Value T
}

// Table maps a number onto the first band whose bound it meets.
// Bands are ordered best first. Values that meet no bound get Fallback.
type Table[T any] struct {
	Direction Direction
	// Strict makes a value equal to a bound fall through to the next band.
	Strict   bool
	Bands    []Band[T]
	Fallback T
}

// Lookup returns the value of the first band v meets, or the fallback.
func (t Table[T]) Lookup(v float64) T {
	for _, b := range t.Bands {
		if t.meets(v, b.Bound) {
			return b.Value
		}
	}
	return t.Fallback
}

func (t Table[T]) meets(v, bound float64) bool {
	switch {
	case t.Direction == LowerIsBetter && t.Strict:
		return v < bound
	case t.Direction == LowerIsBetter:
		return v <= bound
	case t.Strict:
		return v > bound
	default:
		return v >= bound
	}
}

// Operator returns the comparison symbol used against each bound.
func (t Table[T]) Operator() string {
	switch {
	case t.Direction == LowerIsBetter && t.Strict:
		return "<"
	case t.Direction == LowerIsBetter:
		return "<="
	case t.Strict:
		return ">"
	default:
		return ">="
	}
}

// Validate checks that bounds are strictly monotonic in scan order.
func (t Table[T]) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("table has no bands")
	}
	for i := 1; i < len(t.Bands); i++ {
		prev, cur := t.Bands[i-1].Bound, t.Bands[i].Bound
		if t.Direction == HigherIsBetter && cur >= prev {
			return fmt.Errorf("band %d bound %g must be below %g", i, cur, prev)
		}
		if t.Direction == LowerIsBetter && cur <= prev {
			return fmt.Errorf("band %d bound %g must be above %g", i, cur, prev)
		}
	}
	return nil
}
