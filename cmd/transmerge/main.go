// Command transmerge merges updated translation files into the current ones.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/transmerge/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// Flag and argument errors are not printed by the command itself.
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
