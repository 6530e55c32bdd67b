package marks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subject(cat1, cat2, cat3, assignment float64) SubjectInput {
	return SubjectInput{
		CAT1:       Some(cat1),
		CAT2:       Some(cat2),
		CAT3:       Some(cat3),
		Assignment: Some(assignment),
	}
}

func TestPredict_FullMarksPass(t *testing.T) {
	p := Predict(subject(50, 25, 50, 10), ZeroPending)
	assert.Equal(t, StageAllWritten, p.Stage)
	assert.Equal(t, StatusPass, p.Status)
	assert.InDelta(t, 40.0, p.Converted.Total, 1e-9)
	assert.Equal(t, "PASS (Total: 40.00 / 40)", p.Message)

	rec := NewRecord("Maths", subject(50, 25, 50, 10), p.Converted)
	assert.Equal(t, 40.0, rec.Total)
	assert.Equal(t, LabelPass, rec.Status)
}

func TestPredict_NothingEntered(t *testing.T) {
	for _, in := range []SubjectInput{subject(0, 0, 0, 0), {}} {
		p := Predict(in, ZeroPending)
		assert.Equal(t, StageNoneWritten, p.Stage)
		assert.Equal(t, StatusNotStarted, p.Status)
		assert.Empty(t, p.Targets)
		assert.Empty(t, p.Suggestion)
		assert.NotEmpty(t, p.Message)
	}
}

func TestPredict_OnlyCAT1Targets(t *testing.T) {
	p := Predict(subject(40, 0, 0, 5), ZeroPending)
	assert.Equal(t, StageOnlyCAT1, p.Stage)
	assert.Equal(t, StatusNeedsTargets, p.Status)
	assert.InDelta(t, 9.6, p.Converted.CAT1, 1e-9)
	assert.InDelta(t, 5.0, p.Converted.Assignment, 1e-9)
	assert.InDelta(t, 9.4, p.Deficit, 1e-9)

	require.Len(t, p.Targets, 2)
	assert.Equal(t, CAT2, p.Targets[0].Component)
	assert.InDelta(t, 3.1333, p.Targets[0].Converted, 1e-4)
	assert.InDelta(t, 13.06, Round2(p.Targets[0].Raw), 1e-9)
	assert.Equal(t, CAT3, p.Targets[1].Component)
	assert.InDelta(t, 6.2667, p.Targets[1].Converted, 1e-4)
	assert.InDelta(t, 26.11, Round2(p.Targets[1].Raw), 1e-9)

	assert.Contains(t, p.Suggestion, "13.06/25 in CAT 2")
	assert.Contains(t, p.Suggestion, "26.11/50 in CAT 3")
}

func TestPredict_OnlyCAT1Impossible(t *testing.T) {
	p := Predict(subject(10, 0, 0, 0), ZeroPending)
	assert.Equal(t, StageOnlyCAT1, p.Stage)
	assert.Equal(t, StatusImpossible, p.Status)
	assert.InDelta(t, 20.4, p.Feasibility.BestCase, 1e-9)
	assert.Contains(t, p.Message, "20.40/40")
	assert.Empty(t, p.Targets)
}

func TestPredict_CAT1AndCAT2Secured(t *testing.T) {
	p := Predict(subject(50, 25, 0, 10), ZeroPending)
	assert.Equal(t, StageCAT1AndCAT2, p.Stage)
	assert.Equal(t, StatusSecured, p.Status)
	assert.InDelta(t, 28.0, p.Feasibility.CurrentSecured, 1e-9)
	assert.Equal(t, "CAT 3 is optional.", p.Suggestion)
	assert.Empty(t, p.Targets)
}

func TestPredict_CAT1AndCAT2Target(t *testing.T) {
	p := Predict(subject(40, 15, 0, 5), ZeroPending)
	assert.Equal(t, StageCAT1AndCAT2, p.Stage)
	assert.Equal(t, StatusNeedsTargets, p.Status)
	assert.InDelta(t, 5.8, p.Deficit, 1e-9)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, CAT3, p.Targets[0].Component)
	assert.InDelta(t, 5.8*50/12, p.Targets[0].Raw, 1e-9)
	assert.Contains(t, p.Suggestion, "24.17/50 in CAT 3")
}

func TestPredict_CAT1AndCAT2Impossible(t *testing.T) {
	// 1.2 + 0.24 + 12 = 13.44
	p := Predict(subject(5, 1, 0, 0), ZeroPending)
	assert.Equal(t, StatusImpossible, p.Status)
	assert.Contains(t, p.Message, "13.44/40")
}

func TestPredict_AllWrittenIsBinary(t *testing.T) {
	p := Predict(subject(20, 10, 20, 5), ZeroPending)
	assert.Equal(t, StageAllWritten, p.Stage)
	assert.Equal(t, StatusFail, p.Status)
	assert.Empty(t, p.Targets)
	assert.Empty(t, p.Suggestion)
	assert.Equal(t, "FAIL (Total: 17.00 / 40)", p.Message)
}

func TestPredict_ThresholdInclusive(t *testing.T) {
	in := subject(50, 25, 25, 0)
	p := Predict(in, ZeroPending)
	require.Equal(t, 24.0, p.Converted.Total)
	assert.Equal(t, StatusPass, p.Status)
	assert.Equal(t, LabelPass, NewRecord("x", in, p.Converted).Status)
}

func TestPredict_PartialSplitsOverCAT3(t *testing.T) {
	// CAT2 taken without CAT1: only CAT3 is pending.
	in := SubjectInput{CAT2: Some(25), Assignment: Some(10)}
	p := Predict(in, ZeroPending)
	assert.Equal(t, StagePartial, p.Stage)
	assert.Equal(t, StatusNeedsTargets, p.Status)
	assert.InDelta(t, 8.0, p.Deficit, 1e-9)
	require.Len(t, p.Targets, 1)
	assert.Equal(t, CAT3, p.Targets[0].Component)
	assert.InDelta(t, 100.0/3, p.Targets[0].Raw, 1e-9)
}

func TestPredict_PartialPassesOnTotal(t *testing.T) {
	in := SubjectInput{CAT1: Some(50), CAT3: Some(20), Assignment: Some(10)}
	p := Predict(in, ZeroPending)
	assert.Equal(t, StagePartial, p.Stage)
	assert.Equal(t, StatusPass, p.Status)
}

func TestPredict_PartialIgnoresWrittenCAT3InBestCase(t *testing.T) {
	// CAT3 is written but not counted as secured, so the best case is
	// 9.6 + 5 + 6 = 20.6 even though 25.4 is reachable.
	in := SubjectInput{CAT1: Some(40), CAT3: Some(20), Assignment: Some(5)}
	p := Predict(in, ZeroPending)
	assert.Equal(t, StagePartial, p.Stage)
	assert.Equal(t, StatusImpossible, p.Status)
	assert.InDelta(t, 20.6, p.Feasibility.BestCase, 1e-9)
}

func TestPredict_ZeroRecordedPolicy(t *testing.T) {
	in := SubjectInput{CAT1: Some(0), Assignment: Some(10)}

	p := Predict(in, ZeroPending)
	assert.Equal(t, StageNoneWritten, p.Stage)

	p = Predict(in, ZeroRecorded)
	assert.Equal(t, StageOnlyCAT1, p.Stage)
	assert.Equal(t, StatusNeedsTargets, p.Status)
	assert.InDelta(t, 14.0, p.Deficit, 1e-9)
	require.Len(t, p.Targets, 2)
}

func TestPredict_Idempotent(t *testing.T) {
	inputs := []SubjectInput{
		subject(40, 0, 0, 5),
		subject(10, 0, 0, 0),
		subject(50, 25, 0, 10),
		subject(50, 25, 50, 10),
		{CAT2: Some(12)},
	}
	for _, in := range inputs {
		assert.Equal(t, Predict(in, ZeroPending), Predict(in, ZeroPending))
	}
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		flags WrittenFlags
		want  Stage
	}{
		{WrittenFlags{}, StageNoneWritten},
		{WrittenFlags{CAT1: true}, StageOnlyCAT1},
		{WrittenFlags{CAT1: true, CAT2: true}, StageCAT1AndCAT2},
		{WrittenFlags{CAT1: true, CAT2: true, CAT3: true}, StageAllWritten},
		{WrittenFlags{CAT2: true}, StagePartial},
		{WrittenFlags{CAT3: true}, StagePartial},
		{WrittenFlags{CAT1: true, CAT3: true}, StagePartial},
		{WrittenFlags{CAT2: true, CAT3: true}, StagePartial},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageOf(tt.flags), "%+v", tt.flags)
	}
}
