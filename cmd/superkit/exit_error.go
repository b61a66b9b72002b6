package main

import (
	"errors"
	"fmt"
	"io"
)

// ExitError carries a process exit code out of a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode prints err to w unless it is a bare ExitError and returns the
// code the process should exit with.
func exitCode(err error, w io.Writer) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(w, ErrorStyle.Render("Error: ")+exitErr.Err.Error())
		}
		return exitErr.Code
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+err.Error())
	return 1
}
