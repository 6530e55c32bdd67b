package marks

import "fmt"

// Pass threshold and overall scale of the internal total.
const (
	PassMark = 24.0
	MaxTotal = 40.0

	MaxCAT2Conv = 6.0
	MaxCAT3Conv = 12.0
)

// Component identifies one of the four graded inputs of a subject.
type Component int

const (
	CAT1 Component = iota
	CAT2
	CAT3
	Assignment
)

// AllComponents lists the components in display order.
var AllComponents = []Component{CAT1, CAT2, CAT3, Assignment}

// componentScale holds the raw maximum and the converted maximum.
var componentScale = map[Component][2]float64{
	CAT1:       {50, 12},
	CAT2:       {25, MaxCAT2Conv},
	CAT3:       {50, MaxCAT3Conv},
	Assignment: {10, 10},
}

func (c Component) String() string {
	switch c {
	case CAT1:
		return "CAT1"
	case CAT2:
		return "CAT2"
	case CAT3:
		return "CAT3"
	case Assignment:
		return "Assignment"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// DisplayName returns the label used in forms and reports.
func (c Component) DisplayName() string {
	switch c {
	case CAT1:
		return "CAT 1"
	case CAT2:
		return "CAT 2"
	case CAT3:
		return "CAT 3"
	default:
		return c.String()
	}
}

// RawMax returns the maximum raw score for the component.
func (c Component) RawMax() float64 { return componentScale[c][0] }

// ConvMax returns the component's maximum contribution to the 40-point total.
func (c Component) ConvMax() float64 { return componentScale[c][1] }

// ToConverted scales a raw score to its contribution toward the total.
func (c Component) ToConverted(raw float64) float64 {
	return raw / c.RawMax() * c.ConvMax()
}

// ToRaw is the inverse of ToConverted.
func (c Component) ToRaw(conv float64) float64 {
	return conv * c.RawMax() / c.ConvMax()
}

// Score is a raw score that may not have been entered yet.
type Score struct {
	Value float64
	Set   bool
}

// Some returns a recorded score.
func Some(v float64) Score { return Score{Value: v, Set: true} }

// None returns an absent score.
func None() Score { return Score{} }

// Or returns the value, or def when the score is absent.
func (s Score) Or(def float64) float64 {
	if !s.Set {
		return def
	}
	return s.Value
}

// ZeroPolicy decides whether a recorded zero counts as a written CAT.
type ZeroPolicy int

const (
	// ZeroPending treats a CAT scored exactly 0 as not yet taken.
	ZeroPending ZeroPolicy = iota
	// ZeroRecorded treats any entered score, including 0, as taken.
	ZeroRecorded
)

func (p ZeroPolicy) String() string {
	if p == ZeroRecorded {
		return "recorded"
	}
	return "pending"
}

// ParseZeroPolicy parses "pending" or "recorded".
func ParseZeroPolicy(s string) (ZeroPolicy, error) {
	switch s {
	case "", "pending":
		return ZeroPending, nil
	case "recorded":
		return ZeroRecorded, nil
	default:
		return ZeroPending, fmt.Errorf("unknown zero policy %q: must be pending or recorded", s)
	}
}

// SubjectInput is one subject's entry.
type SubjectInput struct {
	Name       string
	CAT1       Score
	CAT2       Score
	CAT3       Score
	Assignment Score
}

// Score returns the input's score for c.
func (in SubjectInput) Score(c Component) Score {
	switch c {
	case CAT1:
		return in.CAT1
	case CAT2:
		return in.CAT2
	case CAT3:
		return in.CAT3
	case Assignment:
		return in.Assignment
	default:
		return None()
	}
}

// ConvertedScores are the normalized sub-scores of one subject.
type ConvertedScores struct {
	CAT1       float64
	CAT2       float64
	CAT3       float64
	Assignment float64
	Total      float64
}

// Of returns the converted value for c.
func (cs ConvertedScores) Of(c Component) float64 {
	switch c {
	case CAT1:
		return cs.CAT1
	case CAT2:
		return cs.CAT2
	case CAT3:
		return cs.CAT3
	case Assignment:
		return cs.Assignment
	default:
		return 0
	}
}

// WrittenFlags records which CATs have been taken.
type WrittenFlags struct {
	CAT1 bool
	CAT2 bool
	CAT3 bool
}
