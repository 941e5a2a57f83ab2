// Package io provides JSON import and export for parsed plan trees.
//
// The format mirrors [plan.Node] directly: an operator tag, a property map,
// and ordered children. It exists so plans can be captured once (e.g. from a
// production EXPLAIN) and re-rendered later without keeping the original
// text around, and so external tools can feed trees in without going
// through the text parser.
//
//	{
//	  "operator": "SortExec",
//	  "properties": {"expr": "[a@0 ASC]"},
//	  "children": [
//	    {"operator": "DataSourceExec", "properties": {"file_groups": "..."}}
//	  ]
//	}
//
// Import validates structure only (a root must exist and every node needs an
// operator tag); semantic validation happens during diagram generation.
// Round-trips are lossless: export a parsed tree, re-import it, and the
// generated diagram is byte-identical.
package io
