package plan_test

import (
	"fmt"

	"github.com/planviz/planviz/pkg/plan"
)

func ExampleParseText() {
	text := `SortExec: expr=[total@1 DESC], preserve_partitioning=[false]
  AggregateExec: mode=Single, gby=[id@0 as id], aggr=[sum(amount)]
    DataSourceExec: file_groups={2 groups: [[a.parquet], [b.parquet]]}, projection=[id@0, amount@1]`

	tree, err := plan.ParseText(text)
	if err != nil {
		fmt.Println(err)
		return
	}

	tree.Walk(func(n *plan.Node) {
		fmt.Printf("%*s%s\n", n.Level*2, "", n.Operator)
	})
	// Output:
	// SortExec
	//   AggregateExec
	//     DataSourceExec
}

func ExampleSplitTop() {
	parts := plan.SplitTop("sum(a, b)@0 as total, id@1", ',')
	for _, p := range parts {
		fmt.Println(p)
	}
	// Output:
	// sum(a, b)@0 as total
	// id@1
}
