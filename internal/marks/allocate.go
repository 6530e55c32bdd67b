package marks

// Pending is a component that has not been taken, with the converted
// marks it can still contribute.
type Pending struct {
	Component Component
	Capacity  float64
}

// Allocation is the share of a deficit assigned to one pending component.
type Allocation struct {
	Component Component
	Converted float64
	Raw       float64
	RawMax    float64
	Clamped   bool
}

// Allocate splits deficit across pending in proportion to each
// component's capacity, clamps every share to [0, capacity] and converts it
// back to a raw target. It is a single pass: marks lost to clamping are not
// moved to other components.
//
// Returns nil when there is nothing to split.
func Allocate(deficit float64, pending []Pending) []Allocation {
	if deficit <= 0 || len(pending) == 0 {
		return nil
	}

	var total float64
	for _, p := range pending {
		total += p.Capacity
	}
	if total <= 0 {
		return nil
	}

	out := make([]Allocation, 0, len(pending))
	for _, p := range pending {
		share := deficit * (p.Capacity / total)
		clamped := false
		if share > p.Capacity {
			share = p.Capacity
			clamped = true
		}
		if share < 0 {
			share = 0
			clamped = true
		}
		out = append(out, Allocation{
			Component: p.Component,
			Converted: share,
			Raw:       p.Component.ToRaw(share),
			RawMax:    p.Component.RawMax(),
			Clamped:   clamped,
		})
	}
	return out
}
