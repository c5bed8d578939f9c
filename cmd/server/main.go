// Command server runs the complaint category finder.
package main

import (
	"os"

	"complaintfinder/cmd/server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
