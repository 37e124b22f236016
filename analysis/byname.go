package analysis

import (
	"fmt"

	"github.com/numhack/egraph"
)

// ByName resolves an analysis by its registry name. Scenario files and
// the CLI refer to analyses by name; this is the single lookup table.
//
// Supported names: "constfold", "minsize", "minsize-lazy".
func ByName(name string) (egraph.Analysis, error) {
	switch name {
	case ConstFoldName:
		return ConstFold{}, nil
	case MinSizeName:
		return MinSize{}, nil
	case "minsize-lazy":
		return MinSize{LazyEval: true}, nil
	default:
		return nil, fmt.Errorf("analysis: unknown analysis %q", name)
	}
}
