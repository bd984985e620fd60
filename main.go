// Entrypoint that delegates to the Cobra root command in cmd/root.go.

package main

import (
	"github.com/clossim/clossim/cmd"
)

func main() {
	cmd.Execute()
}
