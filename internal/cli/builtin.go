package cli

import (
	"strings"
	"unicode"

	"github.com/roach88/fontverify/internal/batchio"
	"github.com/roach88/fontverify/internal/fixture"
	"github.com/roach88/fontverify/internal/harness"
	"github.com/roach88/fontverify/internal/host"
	"github.com/roach88/fontverify/internal/isolate"
	"github.com/roach88/fontverify/internal/lexmode"
	"github.com/roach88/fontverify/internal/textbuf"
	"github.com/roach88/fontverify/internal/verify"
)

// BuiltinModule provides the entry points shipped with fontverify.
const BuiltinModule = "builtin"

func init() {
	isolate.RegisterModule(BuiltinModule, nil)
	isolate.Register(isolate.EntryPoint{Name: "version", Module: BuiltinModule, Func: printVersion})
	isolate.Register(isolate.EntryPoint{Name: "classify", Module: BuiltinModule, Func: classifyLines})
}

func printVersion() any {
	batchio.Print("fontverify %s", Version)
	return ExitSuccess
}

// classifyLines fontifies each line of standard input on its own and prints
// its face runs as text:face pairs. The mode is the first argument, "let" by
// default. The result is the number of lines containing visible text that
// received no face.
func classifyLines() any {
	modeName := lexmode.Name
	if args := isolate.Args(); len(args) > 0 {
		modeName = args[0]
	}
	mode, err := harness.LookupMode(modeName)
	if err != nil {
		batchio.Message("classify: %v", err)
		return isolate.ExitBatchError
	}

	fixtures := fixture.NewManager(textbuf.NewHost())
	bare := 0
	for {
		line, ok := batchio.ReadLine()
		if !ok {
			break
		}
		f, err := fixtures.Acquire("*classify*", mode)
		if err != nil {
			batchio.Message("classify: %v", err)
			return isolate.ExitBatchError
		}
		if err := fixture.Load(f, fixture.Text(line)); err != nil {
			batchio.Message("classify: %v", err)
			return isolate.ExitBatchError
		}
		attrs := verify.AttributeMap(f.Buffer)
		batchio.Print("%s", describeFaces(attrs))
		if hasBareText(attrs) {
			bare++
		}
	}
	return bare
}

// describeFaces renders runs of one face as "text:face", skipping
// whitespace-only runs.
func describeFaces(attrs []verify.CharAttribute) string {
	var parts []string
	var cur strings.Builder
	face := host.NoFace
	flush := func() {
		text := cur.String()
		cur.Reset()
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			parts = append(parts, trimmed+":"+face.String())
		}
	}
	for _, a := range attrs {
		if a.Face != face {
			flush()
			face = a.Face
		}
		cur.WriteRune(a.Char)
	}
	flush()
	return strings.Join(parts, " ")
}

func hasBareText(attrs []verify.CharAttribute) bool {
	for _, a := range attrs {
		if a.Face == host.NoFace && !unicode.IsSpace(a.Char) {
			return true
		}
	}
	return false
}
