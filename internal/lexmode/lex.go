package lexmode

import (
	"strings"
	"unicode"

	"github.com/roach88/fontverify/internal/host"
)

type token struct {
	beg, end int
	class    host.Class
	face     host.Face
}

// lexLine tokenizes text[lb:le]. Tokens cover every rune in the line.
func lexLine(text []rune, lb, le int) []token {
	var toks []token
	emit := func(beg, end int, class host.Class, face host.Face) {
		toks = append(toks, token{beg: beg, end: end, class: class, face: face})
	}

	bindNext := false
	for i := lb; i < le; {
		r := text[i]
		switch {
		case unicode.IsSpace(r):
			j := i + 1
			for j < le && unicode.IsSpace(text[j]) {
				j++
			}
			emit(i, j, host.ClassWhitespace, host.NoFace)
			i = j

		case r == '#':
			j := i
			for j < le && text[j] != '\n' {
				j++
			}
			emit(i, j, host.ClassComment, FaceComment)
			i = j

		case r == '"':
			i = lexString(text, i, le, emit)
			bindNext = false

		case unicode.IsDigit(r):
			j := i + 1
			for j < le && unicode.IsDigit(text[j]) {
				j++
			}
			if j+1 < le && text[j] == '.' && unicode.IsDigit(text[j+1]) {
				j += 2
				for j < le && unicode.IsDigit(text[j]) {
					j++
				}
			}
			emit(i, j, host.ClassConstant, FaceNumber)
			i = j
			bindNext = false

		case isIdentStart(r):
			j := i + 1
			for j < le && isIdentPart(text[j]) {
				j++
			}
			word := string(text[i:j])
			switch {
			case keywords[word]:
				emit(i, j, host.ClassKeyword, FaceKeyword)
				bindNext = binders[word]
				i = j
				continue
			case constants[word]:
				emit(i, j, host.ClassConstant, FaceConstant)
			case bindNext:
				emit(i, j, host.ClassWord, FaceBinding)
			default:
				emit(i, j, host.ClassWord, host.NoFace)
			}
			bindNext = false
			i = j

		case strings.ContainsRune("<>!=", r):
			j := i + 1
			if j < le && strings.ContainsRune("<>=", text[j]) {
				j++
			}
			op := string(text[i:j])
			if op == "=" {
				emit(i, j, host.ClassOperator, host.NoFace)
			} else {
				emit(i, j, host.ClassComparison, FaceOperator)
			}
			i = j
			bindNext = false

		case strings.ContainsRune("+-*/^|&@:", r):
			j := i + 1
			if r == '-' && j < le && text[j] == '>' {
				j++
			}
			emit(i, j, host.ClassOperator, FaceOperator)
			i = j
			bindNext = false

		case strings.ContainsRune("([{", r):
			emit(i, i+1, host.ClassOpen, host.NoFace)
			i++
			bindNext = false

		case strings.ContainsRune(")]}", r):
			emit(i, i+1, host.ClassClose, host.NoFace)
			i++
			bindNext = false

		default:
			emit(i, i+1, host.ClassPunctuation, host.NoFace)
			i++
			bindNext = false
		}
	}
	return toks
}

// lexString lexes a double-quoted string starting at i and returns the offset
// after it. An unterminated string ends at the end of the line, newline
// excluded.
func lexString(text []rune, i, le int, emit func(beg, end int, class host.Class, face host.Face)) int {
	emit(i, i+1, host.ClassQuote, FaceString)
	j := i + 1
	body := j
	flush := func(end int) {
		if end > body {
			emit(body, end, host.ClassString, FaceString)
		}
	}
	for j < le && text[j] != '\n' {
		switch text[j] {
		case '"':
			flush(j)
			emit(j, j+1, host.ClassQuote, FaceString)
			return j + 1
		case '\\':
			flush(j)
			emit(j, j+1, host.ClassEscape, FaceString)
			j++
			if j < le && text[j] != '\n' {
				emit(j, j+1, host.ClassString, FaceString)
				j++
			}
			body = j
		default:
			j++
		}
	}
	flush(j)
	return j
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
