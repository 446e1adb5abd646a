package harness

import (
	"fmt"

	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/verify"
)

// CountError is returned when a check_count assertion fails.
type CountError struct {
	Expected int
	Actual   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("Assertion failed: check_count\n  Expected: %d passing checks\n  Actual:   %d", e.Expected, e.Actual)
}

// runAssertion evaluates one assertion and records it as a check.
func (h *Harness) runAssertion(buf host.Buffer, index int, a Assertion, result *Result) {
	var (
		obs verify.Observation
		err error
	)
	switch a.Type {
	case AssertRange:
		obs, err = assertRange(buf, a.Beg, a.End, classMatcher(a.Classes), faceMatcher(a.Face))
	case AssertFaceAt:
		obs, err = assertRange(buf, a.Offset, a.Offset+1, verify.AnyClass, faceMatcher(a.Face))
	case AssertCheckCount:
		// Counted before this assertion adds its own check.
		if passed := result.Passed(); passed != a.Count {
			err = &CountError{Expected: a.Count, Actual: passed}
		}
	default:
		err = fmt.Errorf("unknown assertion type %q", a.Type)
	}

	result.AddCheck(h.clock.Next(), a.Type, obs, err)
	if err != nil {
		result.AddError(fmt.Sprintf("assertions[%d]: %v", index, err))
	}
	h.logger.Debug("assertion evaluated", "index", index, "type", a.Type, "pass", err == nil)
}

// assertRange verifies [beg, end) and returns what was observed there. An
// invalid range yields an empty observation.
func assertRange(buf host.Buffer, beg, end int, classes verify.ClassMatcher, face verify.FaceMatcher) (verify.Observation, error) {
	err := verify.Verify(buf, beg, end, classes, face)
	if isRangeError(err) {
		return verify.Observation{Range: host.Range{Beg: beg, End: end}}, err
	}
	return verify.Observe(buf, beg, end), err
}
