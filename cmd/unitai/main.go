// Command unitai serves the AI unit converter and its CLI/MCP front ends.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matiasleandrokruk/unitai/internal/infra/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and maps errors onto an exit status.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCommand(newCommandContext(out, errOut))
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrMissingAPIKey):
		fmt.Fprintln(errOut, config.MissingAPIKeyMessage) //nolint:errcheck
		return 1
	case errors.Is(err, errConversionFailed):
		// The banner has already been printed.
		return 1
	case errors.Is(err, context.Canceled):
		return 1
	default:
		fmt.Fprintln(errOut, "Error:", err) //nolint:errcheck
		return 1
	}
}
