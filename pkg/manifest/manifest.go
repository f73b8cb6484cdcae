package manifest

import (
	"bufio"
	"regexp"
	"strings"

	"pathctl/pkg/errors"
	"pathctl/pkg/types"
)

var (
	reComment = regexp.MustCompile(`^\s*(#.*)?$`)
	reOpLine  = regexp.MustCompile(`^\s*(mkdir|touch|rm)\s+(\S+)(?:\s+(.*\S))?\s*$`)
)

// splitLines splits a string into lines with proper handling of large content
func splitLines(s string) []string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lines := []string{}
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines
}

// Parse parses manifest text into operations. One operation per line:
//
//	mkdir <path>
//	touch <path> [data...]
//	rm <path>
//
// Blank lines and lines starting with # are skipped. Data for touch is the
// remainder of the line; rm and mkdir take no data.
func Parse(text string) ([]types.Op, error) {
	if text == "" {
		return nil, errors.ParseError("empty manifest text")
	}

	var ops []types.Op
	for i, line := range splitLines(text) {
		if reComment.MatchString(line) {
			continue
		}
		m := reOpLine.FindStringSubmatch(line)
		if m == nil {
			return nil, errors.ParseErrorf("line %d: unrecognized operation: %q", i+1, strings.TrimSpace(line))
		}
		verb, path, data := m[1], m[2], m[3]
		if data != "" && verb != types.VerbTouch {
			return nil, errors.ParseErrorf("line %d: %s takes no data", i+1, verb)
		}
		ops = append(ops, types.Op{Verb: verb, Path: path, Data: data})
	}

	if len(ops) == 0 {
		return nil, errors.ParseError("no operations found in manifest")
	}

	return ops, nil
}
