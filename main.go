package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/kodo/cmd"
	"github.com/thenoetrevino/kodo/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Commands that report through the output formatter have already printed
		var coded *cli.CodeError
		if !errors.As(err, &coded) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}
