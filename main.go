// main is the entrypoint for the gitgrade CLI.
package main

import (
	"fmt"
	"os"

	"github.com/gitgrade/gitgrade/cmd"
	"github.com/gitgrade/gitgrade/internal/iocache"
)

func main() {
	err := cmd.Execute()
	iocache.CloseStores()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
