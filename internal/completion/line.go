package completion

import (
	"strings"
	"unicode"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// ParseLine splits the command line the shell is completing (COMP_LINE and
// COMP_POINT in bash) into words and returns the index of the word under the
// cursor. Only the text before the cursor is considered; unquoted whitespace
// after the last word starts a new, empty word. Quoted and escaped words are
// unquoted. When the line is not valid shell yet (an open quote), it falls
// back to splitting on whitespace.
func ParseLine(line string, point int) ([]string, int) {
	if point < 0 || point > len(line) {
		point = len(line)
	}
	line = line[:point]

	words, end, ok := shellWords(line)
	if !ok {
		words = strings.Fields(line)
		end = len(strings.TrimRightFunc(line, unicode.IsSpace))
	}

	if len(words) == 0 || end < len(line) {
		words = append(words, "")
	}
	return words, len(words) - 1
}

// shellWords returns the words of the last simple command in line and the
// offset just past the last of them.
func shellWords(line string) ([]string, int, bool) {
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		return nil, 0, false
	}
	if len(file.Stmts) == 0 {
		return nil, 0, true
	}

	call := lastCall(file.Stmts[len(file.Stmts)-1].Cmd)
	if call == nil {
		return nil, 0, false
	}

	words := make([]string, 0, len(call.Args))
	for _, w := range call.Args {
		lit, err := expand.Literal(nil, w)
		if err != nil {
			return nil, 0, false
		}
		words = append(words, lit)
	}
	if len(words) == 0 {
		return nil, 0, true
	}
	return words, int(call.Args[len(call.Args)-1].End().Offset()), true
}

// lastCall descends into `a && b` style lists to the rightmost simple command.
func lastCall(cmd syntax.Command) *syntax.CallExpr {
	for {
		switch c := cmd.(type) {
		case *syntax.CallExpr:
			return c
		case *syntax.BinaryCmd:
			cmd = c.Y.Cmd
		default:
			return nil
		}
	}
}
