package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fontverify/internal/host"
)

// Scenario describes one attribute check: the content to load, the mode to
// fontify it with, and what the fontified text must carry.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Mode selects the content-analysis mode from Modes. Defaults to DefaultMode.
	Mode string `yaml:"mode,omitempty"`

	// Content is loaded as a single block. Exactly one of Content and Lines
	// must be set.
	Content string `yaml:"content,omitempty"`

	// Lines are loaded one at a time, each fontified as it is appended.
	Lines []string `yaml:"lines,omitempty"`

	// Equivalence additionally requires that loading Lines line by line and
	// as one block give the same attributes. Only valid with Lines.
	Equivalence bool `yaml:"equivalence,omitempty"`

	// Expect is checked in order against successive forward searches.
	Expect []Expect `yaml:"expect,omitempty"`

	// Assertions are evaluated after Expect.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Expect is one searched literal and the attributes its span must carry.
type Expect struct {
	Text string `yaml:"text"`

	// Classes is the exact set of classes over the span. Omitted means any.
	Classes []string `yaml:"classes,omitempty"`

	// Face is the single face every character must have; "none" means no
	// face. Omitted means any.
	Face *string `yaml:"face,omitempty"`
}

// Assertion checks the loaded fixture directly rather than through a search.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Beg and End bound the range checked by "range".
	Beg int `yaml:"beg,omitempty"`
	End int `yaml:"end,omitempty"`

	// Offset is the character checked by "face_at".
	Offset int `yaml:"offset,omitempty"`

	Classes []string `yaml:"classes,omitempty"`
	Face    *string  `yaml:"face,omitempty"`

	// Count is the number of passing checks required by "check_count".
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRange      = "range"
	AssertFaceAt     = "face_at"
	AssertCheckCount = "check_count"
)

// DefaultMode is used when a scenario names no mode.
const DefaultMode = "let"

//go:embed schema.cue
var schemaSource string

var validName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// LoadScenario reads, parses and validates a scenario file. Unknown fields
// are rejected both by the YAML decoder and by the CUE schema.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// checkSchema unifies the decoded document with #Scenario.
func checkSchema(raw map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return err
	}
	return def.Unify(doc).Validate(cue.Concrete(true))
}

// validateScenario checks the rules the schema cannot express.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !validName.MatchString(s.Name) {
		return fmt.Errorf("name %q may only contain letters, digits, '_', '.' and '-'", s.Name)
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if _, ok := Modes[s.modeName()]; !ok {
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	hasLines := len(s.Lines) > 0
	if hasLines == (s.Content != "") {
		return fmt.Errorf("exactly one of content and lines is required")
	}
	if s.Equivalence && !hasLines {
		return fmt.Errorf("equivalence requires lines")
	}
	if len(s.Expect) == 0 && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions must be non-empty")
	}

	for i, e := range s.Expect {
		if e.Text == "" {
			return fmt.Errorf("expect[%d]: text is required", i)
		}
		if err := validateClasses(e.Classes); err != nil {
			return fmt.Errorf("expect[%d]: %w", i, err)
		}
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateClasses(classes []string) error {
	if classes != nil && len(classes) == 0 {
		return fmt.Errorf("classes must be non-empty (omit it to accept any)")
	}
	for _, c := range classes {
		if !host.Class(c).Valid() {
			return fmt.Errorf("unknown class %q", c)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRange:
		if a.Beg < 0 || a.End < a.Beg {
			return fmt.Errorf("assertions[%d]: range needs 0 <= beg <= end", index)
		}
		if a.Classes == nil && a.Face == nil {
			return fmt.Errorf("assertions[%d]: range needs classes or face", index)
		}
	case AssertFaceAt:
		if a.Offset < 0 {
			return fmt.Errorf("assertions[%d]: offset must be non-negative", index)
		}
		if a.Face == nil {
			return fmt.Errorf("assertions[%d]: face is required for face_at", index)
		}
	case AssertCheckCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	if err := validateClasses(a.Classes); err != nil {
		return fmt.Errorf("assertions[%d]: %w", index, err)
	}
	return nil
}

func (s *Scenario) modeName() string {
	if s.Mode == "" {
		return DefaultMode
	}
	return s.Mode
}
