// Command topo selects the files an LLM coding assistant should read first
// for a given query, out of a repository too large to fit in context.
package main

import (
	"fmt"
	"os"

	"github.com/topo-sh/topo/cmd/topo/cmd"
	topoerrors "github.com/topo-sh/topo/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, topoerrors.FormatForCLI(err))
		os.Exit(1)
	}
}
