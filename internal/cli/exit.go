package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/updatecenter/pkg/errors"
)

// Exit statuses of the updatecenter command. Plugins that fail to build
// never change the status; only errors that end the run do.
const (
	ExitConfiguration = 1   // bad configuration, nothing was attempted
	ExitAborted       = 2   // the run started but could not complete
	ExitInterrupted   = 130 // SIGINT, shell convention
)

// ExitCode maps an error returned by the root command to an exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsFatal(err):
		return ExitConfiguration
	default:
		return ExitAborted
	}
}

// ReportError prints err to w and returns the exit status for it.
// Interrupted runs are not reported.
func ReportError(w io.Writer, err error) int {
	code := ExitCode(err)
	if code != ExitInterrupted {
		fmt.Fprintln(w, styleIconError.Render(iconError)+" "+errors.UserMessage(err))
	}
	return code
}
