// Command wardrobe is the maintenance CLI for the wardrobe catalog: backup,
// restore, statistics, suggestions, reset and vocabulary editing.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(openConfigured).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
