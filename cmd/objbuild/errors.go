package main

import (
	"errors"

	"github.com/altuslabsxyz/objbuild/internal/output"
	"github.com/altuslabsxyz/objbuild/internal/toolchain"
)

// reportError prints a command error. Compiler and linker failures get a
// framed report; the tool's own output was already streamed to stderr.
func reportError(err error) {
	logger := output.DefaultLogger

	var procErr *toolchain.ExternalProcessError
	if errors.As(err, &procErr) {
		logger.PrintCommandError(&output.CommandErrorInfo{
			Operation: procErr.Operation,
			Command:   procErr.Command,
			Args:      procErr.Args,
			ExitCode:  procErr.ExitCode,
			Error:     procErr.Err,
		})
		return
	}
	logger.Error("%v", err)
}
