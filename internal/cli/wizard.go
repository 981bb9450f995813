package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
)

// rehearsalHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func rehearsalHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// abortConfirmForm asks before discarding every answer of the rehearsal.
func abortConfirmForm(result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Abort this rehearsal?").
				Description("Every answer given so far is discarded.").
				Affirmative("Abort").
				Negative("Keep going").
				Value(result),
		),
	).WithTheme(rehearsalHuhTheme()).WithShowHelp(false)
}

// wizardSelectKey creates a huh form to pick a stored answer key with
// exactly questionCount answers. It returns nil when there is none.
func wizardSelectKey(ctx context.Context, app *App, questionCount int, result *string) *huh.Form {
	if app.Keys == nil {
		return nil
	}
	keys, err := app.Keys.List(ctx)
	if err != nil {
		return nil
	}

	var options []huh.Option[string]
	for _, k := range keys {
		if len(k.Answers) != questionCount {
			continue
		}
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", k.Name, formatter.HumanDate(k.CreatedAt)), k.Name))
	}
	if len(options) == 0 {
		return nil
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which answer key?").
				Options(options...).
				Value(result),
		),
	).WithTheme(rehearsalHuhTheme()).WithShowHelp(false)
}

// abortWizardCmd confirms, then aborts the tracked rehearsal.
func abortWizardCmd(state *SharedState) tea.Cmd {
	confirm := new(bool)
	return startWizardCmd("Abort", abortConfirmForm(confirm), func() tea.Cmd {
		if !*confirm {
			return nil
		}
		return abortRehearsalCmd(state)
	})
}

// applyKeyWizardCmd lets the candidate pick a stored key to grade with.
func applyKeyWizardCmd(state *SharedState, questionCount int) tea.Cmd {
	name := new(string)
	form := wizardSelectKey(context.Background(), state.App, questionCount, name)
	if form == nil {
		return outputCmd(formatter.Dim(fmt.Sprintf("No stored answer key has %d answers.", questionCount)))
	}
	return startWizardCmd("Answer key", form, func() tea.Cmd {
		if *name == "" {
			return nil
		}
		return applyKeyCmd(state, *name)
	})
}
