package harness

import (
	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/verify"
)

// CheckEvent records one evaluated expectation or assertion.
type CheckEvent struct {
	Seq     int64    `json:"seq"`
	Kind    string   `json:"kind"` // "expect" or an assertion type
	Text    string   `json:"text"`
	Beg     int      `json:"beg"`
	End     int      `json:"end"`
	Classes []string `json:"classes"`
	Faces   []string `json:"faces"`
	Pass    bool     `json:"pass"`
	Message string   `json:"message,omitempty"`
}

// Result is the outcome of running a scenario.
type Result struct {
	// Pass is true when every check passed.
	Pass bool `json:"pass"`

	// Checks holds one event per evaluated expectation or assertion, in order.
	Checks []CheckEvent `json:"checks"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Attributes is the per-character map of the loaded fixture.
	Attributes []verify.CharAttribute `json:"-"`

	// Divergences lists offsets where line and block loading disagree.
	Divergences []verify.Divergence `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Checks: []CheckEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCheck appends a check event built from an observation.
func (r *Result) AddCheck(seq int64, kind string, obs verify.Observation, err error) {
	ev := CheckEvent{
		Seq:     seq,
		Kind:    kind,
		Text:    obs.Text,
		Beg:     obs.Range.Beg,
		End:     obs.Range.End,
		Classes: classNames(obs.Classes),
		Faces:   faceNames(obs.Faces),
		Pass:    err == nil,
	}
	if err != nil {
		ev.Message = err.Error()
	}
	r.Checks = append(r.Checks, ev)
}

// Passed returns the number of passing checks.
func (r *Result) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Pass {
			n++
		}
	}
	return n
}

func classNames(cs []host.Class) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func faceNames(fs []host.Face) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.String()
	}
	return out
}
