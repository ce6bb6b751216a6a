package main

import (
	"fmt"
	"os"

	"github.com/promptqa/promptqa/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "promptqa: %s\n", err)
		os.Exit(4)
	}
}
