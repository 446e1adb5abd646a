package harness

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/fontverify/internal/canonical"
	"github.com/roach88/fontverify/internal/verify"
)

// GoldenDir is where RunWithGolden and AssertGolden keep their files,
// relative to the test's package directory.
const GoldenDir = "testdata/golden"

// GoldenSuffix is the extension of golden files.
const GoldenSuffix = ".golden"

// Snapshot renders a scenario's attribute map as canonical JSON, one object
// per line: a header naming the scenario followed by one line per character.
// Check events are left out so a snapshot only changes when fontification
// does.
func Snapshot(name string, attrs []verify.CharAttribute) ([]byte, error) {
	var buf bytes.Buffer
	header, err := canonical.Marshal(map[string]any{
		"scenario": name,
		"length":   len(attrs),
	})
	if err != nil {
		return nil, err
	}
	buf.Write(header)
	buf.WriteByte('\n')

	for _, a := range attrs {
		line, err := canonical.Marshal(map[string]any{
			"offset": a.Offset,
			"char":   string(a.Char),
			"class":  string(a.Class),
			"face":   a.Face.String(),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RunWithGolden runs a scenario and compares its attribute map with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Scenario failures are not reported here; the returned result carries them.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's attribute map with the golden
// file for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snap, err := Snapshot(scenarioName, result.Attributes)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(GoldenSuffix),
	)
	g.Assert(t, scenarioName, snap)
	return nil
}
