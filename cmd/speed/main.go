// Command speed validates and stores quantum many-body benchmark records and
// exports their JSON Schema.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/OpenQS/speed/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	// Commands report their own failures as ExitErrors; anything else (bad
	// arguments, unknown commands) has not been printed yet.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	os.Exit(cli.GetExitCode(err))
}
