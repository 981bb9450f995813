package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
)

// commandNames seeds first-word completion in the command bar.
var commandNames = []string{
	"go", "apply", "finish", "abort", "help",
	"key list", "key show", "key import", "key remove",
	"score", "config show",
}

// executeCommand runs one command-bar line. Rehearsal commands act on the
// tracked session; anything else goes through the cobra tree.
func executeCommand(state *SharedState, input string) tea.Cmd {
	args := strings.Fields(input)
	if len(args) == 0 {
		return nil
	}

	switch strings.ToLower(args[0]) {
	case "go", "jump":
		if len(args) != 2 {
			return outputCmd(shellError(fmt.Errorf("usage: go QUESTION")))
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return outputCmd(shellError(fmt.Errorf("not a question number: %q", args[1])))
		}
		if !state.InRehearsal() {
			return outputCmd(noRehearsal())
		}
		return jumpCmd(state, n-1)

	case "apply":
		if len(args) != 2 {
			return outputCmd(shellError(fmt.Errorf("usage: apply KEY")))
		}
		if !state.InRehearsal() {
			return outputCmd(noRehearsal())
		}
		return applyKeyCmd(state, args[1])

	case "finish":
		if !state.InRehearsal() {
			return outputCmd(noRehearsal())
		}
		return finishPhaseCmd(state)

	case "abort":
		if !state.InRehearsal() {
			return outputCmd(noRehearsal())
		}
		return abortWizardCmd(state)

	case "help":
		return outputCmd(commandHelp())

	case "rehearse":
		return outputCmd(shellError(fmt.Errorf("already in the rehearsal app; finish or abort the current one instead")))
	}

	return outputCmd(captureCobraOutput(state.App, args))
}

func noRehearsal() string {
	return formatter.Dim("No rehearsal in progress.")
}

func shellError(err error) string {
	return formatter.StyleRed.Render("Error: " + err.Error())
}

func commandHelp() string {
	rows := [][]string{
		{"go N", "Jump to question N (forward only past finished questions)"},
		{"apply KEY", "Apply a stored answer key (correction pass)"},
		{"finish", "Finish the current pass from the last question"},
		{"abort", "Discard the rehearsal and return to setup"},
		{"key list|show|import|remove", "Manage the answer-key library"},
		{"score FILE", "Grade an answer-sheet file"},
		{"config show", "Print the effective configuration"},
	}
	return formatter.Header("Commands") + "\n" + formatter.RenderTable([]string{"COMMAND", "WHAT IT DOES"}, rows)
}
