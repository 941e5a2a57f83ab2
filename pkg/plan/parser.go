package plan

import (
	"strings"

	"github.com/planviz/planviz/pkg/errors"
)

// indentWidth is the number of spaces one tree level occupies in
// EXPLAIN-style plan text.
const indentWidth = 2

// ParseText parses indented physical-plan text into a Node tree.
//
// The expected shape is one operator per line, children indented two spaces
// deeper than their parent:
//
//	SortPreservingMergeExec: [total@1 DESC]
//	  SortExec: expr=[total@1 DESC], preserve_partitioning=[true]
//	    AggregateExec: mode=FinalPartitioned, gby=[name@0 as name], aggr=[SUM(amount)]
//
// Everything after the first ": " is parsed into key=value properties with a
// bracket-aware comma split. Segments without an "=" (such as the bare sort
// expression on a merge stage) are collected under the "expr" key. Malformed
// lines never fail the parse; they produce an operator-only node.
func ParseText(text string) (*Node, error) {
	lines := planLines(text)
	if len(lines) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlan, "empty plan text")
	}

	root := parseLine(lines[0].text, 0)
	stack := []*Node{root}

	for _, ln := range lines[1:] {
		level := ln.indent / indentWidth
		if level < 1 {
			// A second root-level operator; plans are single-rooted, so
			// treat it as a child of the current root.
			level = 1
		}
		if level > len(stack) {
			level = len(stack)
		}

		node := parseLine(ln.text, level)
		parent := stack[level-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack[:level], node)
	}

	return root, nil
}

type line struct {
	indent int
	text   string
}

func planLines(text string) []line {
	var out []line
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		indent := 0
		for indent < len(trimmed) && trimmed[indent] == ' ' {
			indent++
		}
		out = append(out, line{indent: indent, text: strings.TrimSpace(trimmed)})
	}
	return out
}

func parseLine(text string, level int) *Node {
	node := &Node{Level: level}

	op, rest, found := strings.Cut(text, ":")
	node.Operator = strings.TrimSpace(op)
	if !found || strings.TrimSpace(rest) == "" {
		return node
	}

	node.Properties = parseProperties(strings.TrimSpace(rest))
	return node
}

// parseProperties splits a property string into key=value pairs. Bare
// segments (no top-level "=") accumulate under the "expr" key, preserving
// their original comma separation.
func parseProperties(s string) map[string]string {
	props := make(map[string]string)
	var bare []string

	for _, part := range SplitTop(s, ',') {
		key, value, ok := cutTop(part, '=')
		if !ok {
			bare = append(bare, part)
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if len(bare) > 0 {
		if _, exists := props["expr"]; !exists {
			props["expr"] = strings.Join(bare, ", ")
		}
	}
	if len(props) == 0 {
		return nil
	}
	return props
}

// cutTop is strings.Cut on the first separator that sits outside any
// bracket or quote nesting.
func cutTop(s string, sep rune) (before, after string, found bool) {
	depth := 0
	inQuote := false
	for i, r := range s {
		switch {
		case inQuote:
			if r == '"' {
				inQuote = false
			}
		case r == '"':
			inQuote = true
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case r == sep && depth == 0:
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}
