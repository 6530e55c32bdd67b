package marks

// Feasibility describes how far a subject can still go given the CATs
// already taken.
type Feasibility struct {
	CurrentSecured    float64
	RemainingCapacity float64
	BestCase          float64
}

// Impossible reports whether the pass mark is out of reach.
func (f Feasibility) Impossible() bool {
	return f.BestCase < PassMark
}

// Analyze computes the secured marks and the best achievable total.
// CAT3 never counts toward CurrentSecured; branches that need it add it
// themselves.
func Analyze(conv ConvertedScores, flags WrittenFlags) Feasibility {
	var f Feasibility
	if flags.CAT1 {
		f.CurrentSecured += conv.CAT1
	}
	if flags.CAT2 {
		f.CurrentSecured += conv.CAT2
	}
	if conv.Assignment > 0 {
		f.CurrentSecured += conv.Assignment
	}

	for _, p := range pendingOf(flags) {
		f.RemainingCapacity += p.Capacity
	}
	f.BestCase = f.CurrentSecured + f.RemainingCapacity
	return f
}

// pendingOf lists the predictable components that have not been taken.
func pendingOf(flags WrittenFlags) []Pending {
	var pending []Pending
	if !flags.CAT2 {
		pending = append(pending, Pending{Component: CAT2, Capacity: MaxCAT2Conv})
	}
	if !flags.CAT3 {
		pending = append(pending, Pending{Component: CAT3, Capacity: MaxCAT3Conv})
	}
	return pending
}
