package commands

import (
	"errors"
	"fmt"
	"io"

	"tasktrack/internal/exitcode"
	"tasktrack/internal/service"
)

// reportError prints err and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	msg := service.Message(err)
	switch {
	case errors.Is(err, service.ErrNotValid), errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %s\n", msg)
		return exitcode.AuthError
	case errors.Is(err, service.ErrForbidden):
		fmt.Fprintf(errOut, "error: forbidden: %s\n", msg)
		return exitcode.Forbidden
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", msg)
	return exitcode.BackendError
}

func isAuthError(err error) bool {
	return errors.Is(err, service.ErrUnauthorized)
}
