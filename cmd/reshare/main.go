// Command reshare deals, verifies, repairs and refreshes threshold secret shares.
package main

import (
	"fmt"
	"os"

	"github.com/f3rmion/reshare/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reshare:", err)
		os.Exit(1)
	}
}
