package marks

// ConvertRaw scales four raw scores to their normalized contributions.
// Inputs are not bounds-checked; out-of-range values scale linearly.
func ConvertRaw(cat1, cat2, cat3, assignment float64) ConvertedScores {
	cs := ConvertedScores{
		CAT1:       CAT1.ToConverted(cat1),
		CAT2:       CAT2.ToConverted(cat2),
		CAT3:       CAT3.ToConverted(cat3),
		Assignment: Assignment.ToConverted(assignment),
	}
	cs.Total = cs.CAT1 + cs.CAT2 + cs.CAT3 + cs.Assignment
	return cs
}

// Convert scales a subject's scores. Absent scores convert to 0.
func Convert(in SubjectInput) ConvertedScores {
	return ConvertRaw(in.CAT1.Or(0), in.CAT2.Or(0), in.CAT3.Or(0), in.Assignment.Or(0))
}

// Flags derives the written flags for a subject under the given policy.
func Flags(in SubjectInput, policy ZeroPolicy) WrittenFlags {
	return WrittenFlags{
		CAT1: written(in.CAT1, policy),
		CAT2: written(in.CAT2, policy),
		CAT3: written(in.CAT3, policy),
	}
}

func written(s Score, policy ZeroPolicy) bool {
	if !s.Set {
		return false
	}
	if policy == ZeroRecorded {
		return true
	}
	return s.Value > 0
}
