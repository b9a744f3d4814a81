package main

import (
	"fmt"
	"os"

	"github.com/temirov/reltag/cmd/cli"
)

const (
	exitErrorTemplateConstant = "[ERROR] %v\n"
)

// main executes the reltag command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
