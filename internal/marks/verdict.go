package marks

import (
	"fmt"
	"strings"
)

// Stage is the combination of taken CATs that selects a prediction branch.
type Stage int

const (
	StageNoneWritten Stage = iota
	StageOnlyCAT1
	StageCAT1AndCAT2
	StageAllWritten
	// StagePartial covers every other combination, e.g. CAT2 without CAT1.
	StagePartial
)

func (s Stage) String() string {
	switch s {
	case StageNoneWritten:
		return "none-written"
	case StageOnlyCAT1:
		return "only-cat1"
	case StageCAT1AndCAT2:
		return "cat1-and-cat2"
	case StageAllWritten:
		return "all-written"
	case StagePartial:
		return "partial"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageOf selects the stage for a set of written flags.
func StageOf(f WrittenFlags) Stage {
	switch {
	case !f.CAT1 && !f.CAT2 && !f.CAT3:
		return StageNoneWritten
	case f.CAT1 && !f.CAT2 && !f.CAT3:
		return StageOnlyCAT1
	case f.CAT1 && f.CAT2 && !f.CAT3:
		return StageCAT1AndCAT2
	case f.CAT1 && f.CAT2 && f.CAT3:
		return StageAllWritten
	default:
		return StagePartial
	}
}

// Status is the outcome category of a prediction.
type Status int

const (
	StatusNotStarted Status = iota
	StatusNeedsTargets
	StatusImpossible
	StatusSecured
	StatusPass
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not-started"
	case StatusNeedsTargets:
		return "needs-targets"
	case StatusImpossible:
		return "impossible"
	case StatusSecured:
		return "secured"
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Label returns a short human-readable name.
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not started"
	case StatusNeedsTargets:
		return "Targets"
	case StatusImpossible:
		return "Cannot pass"
	case StatusSecured:
		return "Secured"
	case StatusPass:
		return "Pass"
	case StatusFail:
		return "Fail"
	default:
		return s.String()
	}
}

// Prediction is the full verdict for one subject.
type Prediction struct {
	Stage       Stage
	Status      Status
	Converted   ConvertedScores
	Flags       WrittenFlags
	Feasibility Feasibility
	Deficit     float64
	Targets     []Allocation
	Message     string
	Suggestion  string
}

// Predict runs the conversion and prediction pipeline for one subject.
func Predict(in SubjectInput, policy ZeroPolicy) Prediction {
	conv := Convert(in)
	flags := Flags(in, policy)
	p := Prediction{
		Stage:       StageOf(flags),
		Converted:   conv,
		Flags:       flags,
		Feasibility: Analyze(conv, flags),
	}

	switch p.Stage {
	case StageNoneWritten:
		p.Status = StatusNotStarted
		p.Message = "No CAT marks entered yet. Enter CAT 1 to see a pass prediction."
	case StageOnlyCAT1:
		p.predictSplit()
	case StageCAT1AndCAT2:
		p.predictCAT3()
	case StageAllWritten:
		p.finalVerdict()
	case StagePartial:
		if conv.Total >= PassMark {
			p.pass()
			return p
		}
		p.predictSplit()
	}
	return p
}

// predictSplit spreads the deficit over every pending CAT.
func (p *Prediction) predictSplit() {
	if p.Feasibility.Impossible() {
		p.impossible()
		return
	}
	p.Deficit = PassMark - p.Feasibility.CurrentSecured
	if p.Deficit <= 0 {
		p.secured()
		return
	}
	p.Targets = Allocate(p.Deficit, pendingOf(p.Flags))
	if len(p.Targets) == 0 {
		p.fail()
		return
	}
	p.needsTargets()
}

// predictCAT3 computes the single CAT3 target once CAT1 and CAT2 are in.
func (p *Prediction) predictCAT3() {
	if p.Feasibility.Impossible() {
		p.impossible()
		return
	}
	p.Deficit = PassMark - p.Feasibility.CurrentSecured
	if p.Deficit <= 0 {
		p.secured()
		return
	}
	raw := CAT3.ToRaw(p.Deficit)
	if raw > CAT3.RawMax() {
		p.Status = StatusImpossible
		p.Message = "Cannot pass: the CAT 3 score needed is above its maximum."
		p.Suggestion = fmt.Sprintf("CAT 3 would need %.2f/%.0f.", raw, CAT3.RawMax())
		return
	}
	p.Targets = []Allocation{{
		Component: CAT3,
		Converted: p.Deficit,
		Raw:       raw,
		RawMax:    CAT3.RawMax(),
	}}
	p.needsTargets()
}

// finalVerdict is a plain pass/fail once every CAT is taken.
func (p *Prediction) finalVerdict() {
	if p.Converted.Total >= PassMark {
		p.pass()
		return
	}
	// Nothing is pending once every CAT is taken: an impossible best case
	// is still reported as a plain fail.
	p.fail()
}

func (p *Prediction) pass() {
	p.Status = StatusPass
	p.Message = fmt.Sprintf("PASS (Total: %.2f / %.0f)", p.Converted.Total, MaxTotal)
}

func (p *Prediction) fail() {
	p.Status = StatusFail
	p.Message = fmt.Sprintf("FAIL (Total: %.2f / %.0f)", p.Converted.Total, MaxTotal)
}

func (p *Prediction) impossible() {
	p.Status = StatusImpossible
	p.Message = fmt.Sprintf("Cannot pass: maximum possible total is %.2f/%.0f.",
		p.Feasibility.BestCase, MaxTotal)
	p.Suggestion = fmt.Sprintf("The pass mark is %.0f/%.0f even with full marks in every remaining CAT.",
		PassMark, MaxTotal)
}

func (p *Prediction) secured() {
	p.Status = StatusSecured
	p.Message = fmt.Sprintf("Pass already secured with %.2f/%.0f.",
		p.Feasibility.CurrentSecured, MaxTotal)
	var optional []string
	for _, pc := range pendingOf(p.Flags) {
		optional = append(optional, pc.Component.DisplayName())
	}
	switch len(optional) {
	case 0:
	case 1:
		p.Suggestion = optional[0] + " is optional."
	default:
		p.Suggestion = strings.Join(optional, " and ") + " are optional."
	}
}

func (p *Prediction) needsTargets() {
	p.Status = StatusNeedsTargets
	p.Message = fmt.Sprintf("Need %.2f more marks to reach %.0f/%.0f.", p.Deficit, PassMark, MaxTotal)
	parts := make([]string, 0, len(p.Targets))
	for _, t := range p.Targets {
		parts = append(parts, fmt.Sprintf("%.2f/%.0f in %s", t.Raw, t.RawMax, t.Component.DisplayName()))
	}
	p.Suggestion = "Score at least " + strings.Join(parts, " and ") + "."
}
