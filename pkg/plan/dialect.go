package plan

// SortKey is one column of a sort order, in sort priority order.
type SortKey struct {
	Column     string
	Descending bool
}

// Partitioning kinds understood by the layout engine. Kinds outside this set
// are carried through verbatim in Partitioning.Kind.
const (
	PartitionHash       = "Hash"
	PartitionRoundRobin = "RoundRobinBatch"
)

// Partitioning is a parsed partitioning spec from a repartition stage.
type Partitioning struct {
	Kind    string   // "Hash", "RoundRobinBatch", or a dialect-specific kind
	Columns []string // hash columns (empty for round-robin)
	Count   int      // output partition count
}

// Dialect isolates the plan-text heuristics that are specific to one
// EXPLAIN dialect. Every regex tuned to a particular optimizer's output
// lives behind this interface so the layout algorithms stay dialect-free
// and alternate dialects can be plugged in without touching them.
//
// All methods degrade rather than fail: unparseable input yields empty
// results, never an error.
type Dialect interface {
	// Columns extracts column names from a bracketed list such as
	// "[a@0, b@1]", stripping positional qualifiers.
	Columns(list string) []string

	// SortOrder parses an ordering expression list such as
	// "[a@0 ASC, b@1 DESC NULLS LAST]".
	SortOrder(list string) []SortKey

	// JoinKeys parses an equi-join key list such as "[(a@0, b@0)]" into
	// (left, right) column pairs.
	JoinKeys(on string) [][2]string

	// Partitioning parses a partitioning spec such as "Hash([a@0], 4)" or
	// "RoundRobinBatch(8)". ok is false when the spec is unparseable.
	Partitioning(spec string) (p Partitioning, ok bool)

	// FileGroupCount parses the number of file groups from a scan stage's
	// file_groups property. Returns 0 when unparseable.
	FileGroupCount(spec string) int

	// ProjectionAliases extracts output column names from a projection
	// expression list, honoring "expr as alias" forms.
	ProjectionAliases(list string) []string

	// StripQualifier removes positional or struct-style qualifiers from a
	// single column reference ("a@0" -> "a").
	StripQualifier(col string) string

	// BinningSource reports the column a time-binning call (e.g. date_bin)
	// buckets over, if expr is such a call.
	BinningSource(expr string) (column string, ok bool)
}
