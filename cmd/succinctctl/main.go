// Command succinctctl is a thin CLI collaborator around the bitvec/rank/
// wavelet/bloom/persist packages: build and query Bloom filters and
// wavelet trees from flat files, recovering precondition failures at the
// outermost boundary and mapping them to a non-zero exit code.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xflash-panda/succinct/pkg/fault"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "succinctctl",
		Short: "Build and query succinct Bloom filters and wavelet trees",
	}

	rootCmd.AddCommand(newBFCmd(), newWTCmd())

	if err := runGuarded(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "succinctctl: %v\n", err)
		os.Exit(1)
	}
}

// runGuarded recovers any *fault.PreconditionError panic raised while
// executing cmd and turns it into an ordinary error, so a bad index or
// oversized value reaches the user as a clean message instead of a stack
// trace.
func runGuarded(cmd *cobra.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*fault.PreconditionError); ok {
				err = fmt.Errorf("%w", pe)
				return
			}
			panic(r)
		}
	}()
	return cmd.Execute()
}
