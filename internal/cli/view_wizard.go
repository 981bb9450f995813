package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
)

// wizardView shows a one-off huh form (abort confirmation, answer-key
// picker) on top of the current view. Completing the form pops it and runs
// the done callback; Esc pops it with "Cancelled.".
type wizardView struct {
	form  *huh.Form
	title string
	done  func() tea.Cmd

	finished bool
}

func newWizardView(title string, form *huh.Form, done func() tea.Cmd) *wizardView {
	return &wizardView{form: form, title: title, done: done}
}

func (v *wizardView) ID() ViewID    { return ViewForm }
func (v *wizardView) Title() string { return v.title }
func (v *wizardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *wizardView) Init() tea.Cmd { return v.form.Init() }

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		v.finished = true
		return v, func() tea.Msg { return wizardCompleteOutput(formatter.Dim("Cancelled.")) }
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State != huh.StateCompleted {
		return v, cmd
	}

	v.finished = true
	var next tea.Cmd
	if v.done != nil {
		next = v.done()
	}
	return v, func() tea.Msg { return wizardCompleteMsg{nextCmd: tea.Batch(cmd, next)} }
}

func (v *wizardView) View() string { return v.form.View() }

// wizardCompleteOutput closes the wizard and shows text in its place.
func wizardCompleteOutput(text string) wizardCompleteMsg {
	return wizardCompleteMsg{nextCmd: outputCmd(text)}
}

// startWizardCmd pushes a wizard for form. A nil form means there is
// nothing to ask, so done runs straight away.
func startWizardCmd(title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	if form == nil {
		if done != nil {
			return done()
		}
		return nil
	}
	return pushView(newWizardView(title, form, done))
}
