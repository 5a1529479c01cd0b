// Command apexad is the command-line front end for the apexad
// differentiation engine: evaluate a formula and its gradient at a
// point, or just parse one and inspect the resulting tape.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "apexad: %v\n", err)
		os.Exit(1)
	}
}
