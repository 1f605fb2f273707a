// Command impactctl runs impact simulations from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/couchcryptid/asteroid-impact-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
