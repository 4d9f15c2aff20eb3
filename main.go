package main

import (
	"fmt"
	"os"

	"github.com/haguru/signup/internal/cli"
)

func main() {
	// serve the sign-up page until SIGINT or SIGTERM
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
