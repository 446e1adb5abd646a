package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/roach88/fontverify/internal/fixture"
	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/lexmode"
	"github.com/roach88/fontverify/internal/testutil"
	"github.com/roach88/fontverify/internal/textbuf"
	"github.com/roach88/fontverify/internal/verify"
)

// FixtureName is the buffer every scenario is loaded into. Acquiring it
// discards whatever the previous scenario left behind.
const FixtureName = "*fontverify*"

// Modes maps scenario mode names to constructors.
var Modes = map[string]func() host.Mode{
	lexmode.Name:  func() host.Mode { return lexmode.New() },
	"fundamental": func() host.Mode { return textbuf.Fundamental{} },
}

// ModeNames returns the registered mode names, sorted.
func ModeNames() []string {
	names := make([]string, 0, len(Modes))
	for n := range Modes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupMode returns a fresh instance of the named mode.
func LookupMode(name string) (host.Mode, error) {
	newMode, ok := Modes[name]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", name)
	}
	return newMode(), nil
}

// Harness runs scenarios against an in-memory host. Fixtures persist between
// runs until re-acquired, so the last scenario's buffer can be inspected.
type Harness struct {
	host     *textbuf.Host
	fixtures *fixture.Manager
	clock    *testutil.SeqClock
	logger   *slog.Logger
}

// New creates a harness that logs to logger. A nil logger discards.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	h := textbuf.NewHost()
	return &Harness{
		host:     h,
		fixtures: fixture.NewManager(h),
		clock:    testutil.NewSeqClock(),
		logger:   logger,
	}
}

// Fixtures exposes the harness's fixture manager.
func (h *Harness) Fixtures() *fixture.Manager { return h.fixtures }

// Run executes a scenario on a fresh harness with logging discarded.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run loads the scenario's content into a clean fixture and evaluates its
// expectations in order, then its assertions.
//
// A set mismatch is recorded and evaluation continues. A literal that cannot
// be found stops the expectations, since every later search would start from
// the wrong place. Errors loading the content are returned, not recorded.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	h.clock.Reset()
	mode, err := LookupMode(scenario.modeName())
	if err != nil {
		return nil, err
	}

	f, err := h.fixtures.Acquire(FixtureName, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire fixture: %w", err)
	}
	if err := fixture.Load(f, scenario.content()); err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	h.logger.Debug("fixture loaded",
		"scenario", scenario.Name,
		"mode", mode.Name(),
		"length", f.Buffer.Len(),
	)

	result := NewResult()
	result.Attributes = verify.AttributeMap(f.Buffer)

	h.runExpectations(f.Buffer, scenario.Expect, result)
	for i, a := range scenario.Assertions {
		h.runAssertion(f.Buffer, i, a, result)
	}

	if scenario.Equivalence {
		divs, err := verify.Equivalence(h.fixtures, mode, scenario.Lines)
		if err != nil {
			return nil, fmt.Errorf("failed to check equivalence: %w", err)
		}
		result.Divergences = divs
		for _, d := range divs {
			result.AddError(fmt.Sprintf("line and block loading differ at %s", d))
		}
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"checks", len(result.Checks),
		"passed", result.Passed(),
		"pass", result.Pass,
	)
	return result, nil
}

func (h *Harness) runExpectations(buf host.Buffer, exps []Expect, result *Result) {
	for i, e := range exps {
		from := buf.Point()
		r, ok := buf.SearchForward(e.Text)
		if !ok {
			err := &verify.NotFoundError{Literal: e.Text, From: from}
			result.AddCheck(h.clock.Next(), "expect", verify.Observation{Text: e.Text, Range: host.Range{Beg: from, End: from}}, err)
			result.AddError(fmt.Sprintf("expect[%d]: %v", i, err))
			h.logger.Debug("expectation not found", "index", i, "text", e.Text, "from", from)
			return
		}

		obs := verify.Observe(buf, r.Beg, r.End)
		err := verify.Verify(buf, r.Beg, r.End, classMatcher(e.Classes), faceMatcher(e.Face))
		result.AddCheck(h.clock.Next(), "expect", obs, err)
		if err != nil {
			result.AddError(fmt.Sprintf("expect[%d]: %v", i, err))
		}
		h.logger.Debug("expectation checked",
			"index", i,
			"text", e.Text,
			"beg", r.Beg,
			"end", r.End,
			"pass", err == nil,
		)
	}
}

// classMatcher converts scenario classes; nil means any.
func classMatcher(names []string) verify.ClassMatcher {
	if names == nil {
		return verify.AnyClass
	}
	cs := make([]host.Class, len(names))
	for i, n := range names {
		cs[i] = host.Class(n)
	}
	return verify.Classes(cs...)
}

// faceMatcher converts a scenario face; nil means any.
func faceMatcher(face *string) verify.FaceMatcher {
	if face == nil {
		return verify.AnyFace
	}
	return verify.FaceIs(host.ParseFace(*face))
}

func (s *Scenario) content() fixture.Content {
	if len(s.Lines) > 0 {
		return fixture.Lines(s.Lines...)
	}
	return fixture.Text(s.Content)
}

// isRangeError reports whether err is a *verify.RangeError.
func isRangeError(err error) bool {
	var re *verify.RangeError
	return errors.As(err, &re)
}
