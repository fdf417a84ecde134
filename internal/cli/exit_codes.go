package cli

import (
	stderrors "errors"

	herrors "github.com/guorant/hexo/internal/errors"
	"github.com/guorant/hexo/internal/scaffold"
)

// Exit codes for the hexo CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure covers argument errors and failures without a dedicated code
	ExitFailure = 1

	// ExitConfig indicates an invalid or unreadable configuration
	ExitConfig = 2

	// ExitTargetNotEmpty indicates 'hexo init' refused a folder that already has files
	ExitTargetNotEmpty = 3

	// ExitInterrupted indicates the command was cancelled (Ctrl-C)
	ExitInterrupted = 130
)

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case stderrors.Is(err, scaffold.ErrTargetNotEmpty):
		return ExitTargetNotEmpty
	}
	if cliErr := herrors.AsCLIError(err); cliErr != nil && cliErr.Category == herrors.Configuration {
		return ExitConfig
	}
	return ExitFailure
}
