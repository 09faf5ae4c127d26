// Package prompt isolates the installer's single interactive question so the
// install handler stays deterministic and testable without a terminal.
package prompt

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
)

// Confirmer answers a yes/no question.
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Survey asks on the terminal via the survey library. Empty input accepts
// the default.
type Survey struct{}

// Confirm prompts the user. When stdin is not a terminal there is nobody to
// ask, and a question nobody answered must not opt in to anything: the
// answer is no.
func (Survey) Confirm(question string, def bool) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, nil
	}
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: question, Default: def}, &answer)
	if err != nil {
		// Ctrl-D or a closed terminal reads as "no".
		return false, err
	}
	return answer, nil
}

// Static always answers the same way; used by --no-service style automation
// and by tests.
type Static bool

// Confirm returns the fixed answer.
func (s Static) Confirm(string, bool) (bool, error) {
	return bool(s), nil
}
