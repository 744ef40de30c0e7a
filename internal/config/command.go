// SPDX-License-Identifier: MPL-2.0

package config

import (
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

// splitCommand splits a shell-quoted command line into arguments with POSIX
// quoting rules. Expansions ($VAR, ${VAR:-x}, $(cmd), $((n)), ~) are kept
// verbatim so the container's shell sees them, not the host's.
func splitCommand(command string) ([]string, error) {
	parser := syntax.NewParser()
	printer := syntax.NewPrinter()

	var words []*syntax.Word
	for word, err := range parser.WordsSeq(strings.NewReader(command)) {
		if err != nil {
			return nil, err
		}
		if err := literalizeParts(printer, word.Parts); err != nil {
			return nil, err
		}
		word.Parts = literalizeTilde(word.Parts)
		words = append(words, word)
	}

	// Nothing is left to expand; Fields only removes quotes and splits.
	return expand.Fields(&expand.Config{}, words...)
}

// literalizeParts replaces expansion word parts in place with single-quoted
// copies of their source text. Double-quoted parts are handled recursively.
func literalizeParts(printer *syntax.Printer, parts []syntax.WordPart) error {
	for i, part := range parts {
		switch part := part.(type) {
		case *syntax.DblQuoted:
			if err := literalizeParts(printer, part.Parts); err != nil {
				return err
			}
		case *syntax.ParamExp, *syntax.CmdSubst, *syntax.ArithmExp, *syntax.ProcSubst:
			var src strings.Builder
			if err := printer.Print(&src, part); err != nil {
				return err
			}
			parts[i] = &syntax.SglQuoted{Left: part.Pos(), Value: src.String()}
		}
	}
	return nil
}

// literalizeTilde quotes a leading "~" so it is not resolved to a host home
// directory.
func literalizeTilde(parts []syntax.WordPart) []syntax.WordPart {
	if len(parts) == 0 {
		return parts
	}
	lit, ok := parts[0].(*syntax.Lit)
	if !ok || !strings.HasPrefix(lit.Value, "~") {
		return parts
	}

	out := []syntax.WordPart{&syntax.SglQuoted{Left: lit.ValuePos, Value: "~"}}
	if rest := lit.Value[1:]; rest != "" {
		out = append(out, &syntax.Lit{ValuePos: lit.ValuePos, ValueEnd: lit.ValueEnd, Value: rest})
	}
	return append(out, parts[1:]...)
}
