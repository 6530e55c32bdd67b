package marks

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Pass/fail labels of a summary row.
const (
	LabelPass = "Pass"
	LabelFail = "Fail"
)

// SubjectRecord is one row of the summary handed to exporters.
type SubjectRecord struct {
	Name       string
	CAT1       float64
	CAT2       float64
	CAT3       float64
	Assignment float64
	Total      float64 // rounded to 2 decimal places
	Status     string
}

// Passed reports whether the row is labeled Pass.
func (r SubjectRecord) Passed() bool { return r.Status == LabelPass }

// DefaultName returns the name shown for the subject at index i.
func DefaultName(i int) string {
	return fmt.Sprintf("Subject %d", i+1)
}

// NewRecord builds the summary row for a subject. Absent scores are
// reported as 0.
func NewRecord(name string, in SubjectInput, conv ConvertedScores) SubjectRecord {
	status := LabelFail
	if conv.Total >= PassMark {
		status = LabelPass
	}
	return SubjectRecord{
		Name:       name,
		CAT1:       in.CAT1.Or(0),
		CAT2:       in.CAT2.Or(0),
		CAT3:       in.CAT3.Or(0),
		Assignment: in.Assignment.Or(0),
		Total:      Round2(conv.Total),
		Status:     status,
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Result is the evaluation of one subject.
type Result struct {
	Index      int
	Name       string
	Input      SubjectInput
	Prediction Prediction
	Record     SubjectRecord
}

// Report is the evaluation of every subject in entry order.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Results     []Result
	Passed      int
	Failed      int
}

// Records returns the summary rows in subject order.
func (r *Report) Records() []SubjectRecord {
	out := make([]SubjectRecord, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.Record)
	}
	return out
}

// Inputs returns the evaluated inputs in subject order.
func (r *Report) Inputs() []SubjectInput {
	out := make([]SubjectInput, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.Input)
	}
	return out
}

// EvaluateSubject runs the pipeline for the subject at index i.
func EvaluateSubject(i int, in SubjectInput, policy ZeroPolicy) Result {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName(i)
	}
	pred := Predict(in, policy)
	return Result{
		Index:      i,
		Name:       name,
		Input:      in,
		Prediction: pred,
		Record:     NewRecord(name, in, pred.Converted),
	}
}

// Evaluate runs every subject through the pipeline. Subjects are
// independent of each other.
func Evaluate(inputs []SubjectInput, policy ZeroPolicy) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Results:     make([]Result, 0, len(inputs)),
	}
	for i, in := range inputs {
		res := EvaluateSubject(i, in, policy)
		if res.Record.Passed() {
			r.Passed++
		} else {
			r.Failed++
		}
		r.Results = append(r.Results, res)
	}
	return r
}
