package plan

import (
	"regexp"
	"strconv"
	"strings"
)

// DataFusion parses the property-string dialect emitted by DataFusion-style
// physical plans. It is the default dialect used by the CLI and server.
type DataFusion struct{}

var _ Dialect = DataFusion{}

var (
	qualifierRe   = regexp.MustCompile(`@\d+`)
	structColRe   = regexp.MustCompile(`Column\s*\{\s*name:\s*"([^"]+)"[^}]*\}`)
	fileGroupsRe  = regexp.MustCompile(`\{\s*(\d+)\s+groups?\s*:`)
	binningCallRe = regexp.MustCompile(`^\s*(?:date_bin|date_trunc|time_bucket)\s*\(`)
	columnRefRe   = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_.]*)@\d+`)
)

// StripQualifier removes "@N" positional qualifiers and unwraps
// `Column { name: "x", index: N }` struct notation.
func (DataFusion) StripQualifier(col string) string {
	col = strings.TrimSpace(col)
	if m := structColRe.FindStringSubmatch(col); m != nil {
		return m[1]
	}
	return strings.TrimSpace(qualifierRe.ReplaceAllString(col, ""))
}

// Columns splits a bracketed column list and strips qualifiers from each
// entry. Non-column expressions are kept verbatim (minus qualifiers) so the
// caller still has something to display.
func (d DataFusion) Columns(list string) []string {
	inner := StripBrackets(list)
	if inner == "" {
		return nil
	}
	parts := SplitTop(inner, ',')
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		cols = append(cols, d.StripQualifier(p))
	}
	return cols
}

// SortOrder parses entries of the form "col@N ASC", "col@N DESC NULLS LAST".
// The direction defaults to ascending when absent.
func (d DataFusion) SortOrder(list string) []SortKey {
	inner := StripBrackets(list)
	if inner == "" {
		return nil
	}
	parts := SplitTop(inner, ',')
	keys := make([]SortKey, 0, len(parts))
	for _, p := range parts {
		expr := p
		desc := false
		if idx := strings.Index(p, " DESC"); idx >= 0 {
			expr, desc = p[:idx], true
		} else if idx := strings.Index(p, " ASC"); idx >= 0 {
			expr = p[:idx]
		}
		keys = append(keys, SortKey{Column: d.StripQualifier(expr), Descending: desc})
	}
	return keys
}

// JoinKeys parses "[(l@0, r@0), (l2@1, r2@1)]" into column pairs. Entries
// that are not two-element tuples are skipped.
func (d DataFusion) JoinKeys(on string) [][2]string {
	inner := StripBrackets(on)
	if inner == "" {
		return nil
	}
	var pairs [][2]string
	for _, tuple := range SplitTop(inner, ',') {
		sides := SplitTop(StripBrackets(tuple), ',')
		if len(sides) != 2 {
			continue
		}
		pairs = append(pairs, [2]string{
			d.StripQualifier(sides[0]),
			d.StripQualifier(sides[1]),
		})
	}
	return pairs
}

// Partitioning parses "Hash([a@0, b@1], 4)", "RoundRobinBatch(8)" and
// similar kind(args) specs. Unknown kinds parse as long as a trailing
// integer argument is present; anything else reports ok=false.
func (d DataFusion) Partitioning(spec string) (Partitioning, bool) {
	spec = strings.TrimSpace(spec)
	open := strings.IndexByte(spec, '(')
	if open <= 0 || !strings.HasSuffix(spec, ")") {
		return Partitioning{}, false
	}

	p := Partitioning{Kind: strings.TrimSpace(spec[:open])}
	args := SplitTop(spec[open+1:len(spec)-1], ',')
	if len(args) == 0 {
		return Partitioning{}, false
	}

	// The stream count is always the last argument.
	count, err := strconv.Atoi(strings.TrimSpace(args[len(args)-1]))
	if err != nil || count < 0 {
		return Partitioning{}, false
	}
	p.Count = count

	if p.Kind == PartitionHash && len(args) >= 2 {
		p.Columns = d.Columns(strings.Join(args[:len(args)-1], ", "))
	}
	return p, true
}

// FileGroupCount parses "{4 groups: [[...], ...]}" by the group-count
// header, falling back to counting top-level entries of a bare "[...]"
// list. Unparseable specs yield 0.
func (DataFusion) FileGroupCount(spec string) int {
	spec = strings.TrimSpace(spec)
	if m := fileGroupsRe.FindStringSubmatch(spec); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0
		}
		return n
	}
	if strings.HasPrefix(spec, "[") {
		return len(SplitTop(StripBrackets(spec), ','))
	}
	return 0
}

// ProjectionAliases extracts output names from "[a@0 as x, b@1]": the alias
// when an "as" clause is present, the bare column name otherwise.
func (d DataFusion) ProjectionAliases(list string) []string {
	inner := StripBrackets(list)
	if inner == "" {
		return nil
	}
	parts := SplitTop(inner, ',')
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, d.aliasOf(p))
	}
	return names
}

func (d DataFusion) aliasOf(expr string) string {
	if idx := lastTopIndex(expr, " as "); idx >= 0 {
		return strings.TrimSpace(expr[idx+len(" as "):])
	}
	return d.StripQualifier(expr)
}

// BinningSource recognizes date_bin/date_trunc/time_bucket calls and
// returns the column reference found among the call arguments.
func (DataFusion) BinningSource(expr string) (string, bool) {
	expr = strings.TrimSpace(expr)
	// Ignore any alias when deciding whether this is a binning call.
	if idx := lastTopIndex(expr, " as "); idx >= 0 {
		expr = strings.TrimSpace(expr[:idx])
	}
	if !binningCallRe.MatchString(expr) {
		return "", false
	}
	if m := columnRefRe.FindStringSubmatch(expr); m != nil {
		return m[1], true
	}
	if m := structColRe.FindStringSubmatch(expr); m != nil {
		return m[1], true
	}
	return "", false
}

// lastTopIndex finds the last occurrence of sub outside bracket nesting.
func lastTopIndex(s, sub string) int {
	depth := 0
	last := -1
	for i := 0; i+len(sub) <= len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && s[i:i+len(sub)] == sub {
			last = i
		}
	}
	return last
}
