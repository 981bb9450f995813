package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/config"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

// setupValues are the raw strings bound to the setup form.
type setupValues struct {
	questions string
	divisor   string
	options   string
	key       string
}

func (s setupValues) request() (service.StartRequest, error) {
	n, err := parsePositive(s.questions)
	if err != nil {
		return service.StartRequest{}, fmt.Errorf("questions: %w", err)
	}
	d, err := parsePositive(s.divisor)
	if err != nil {
		return service.StartRequest{}, fmt.Errorf("error divisor: %w", err)
	}
	opts := config.SplitOptions(s.options)
	if _, err := domain.NewAlphabet(opts...); err != nil {
		return service.StartRequest{}, fmt.Errorf("options: %w", err)
	}
	return service.StartRequest{QuestionCount: n, ErrorDivisor: d, Options: opts}, nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("enter a whole number")
	}
	if n < 1 {
		return 0, errors.New("must be at least 1")
	}
	return n, nil
}

func validateOptions(s string) error {
	if _, err := domain.NewAlphabet(config.SplitOptions(s)...); err != nil {
		return errors.New("enter at least one label, e.g. A,B,C,D")
	}
	return nil
}

// setupView is the home view: a form for the exam parameters.
type setupView struct {
	state  *SharedState
	form   *huh.Form
	values *setupValues
	err    string

	submitted bool
}

func newSetupView(state *SharedState) *setupView {
	r := state.LastRequest
	v := &setupView{
		state: state,
		values: &setupValues{
			questions: strconv.Itoa(r.QuestionCount),
			divisor:   strconv.Itoa(r.ErrorDivisor),
			options:   strings.Join(r.Options, ","),
			key:       state.KeyName,
		},
	}
	v.form = v.buildForm()
	return v
}

func (v *setupView) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Questions").
			Description("How many questions the exam has").
			Value(&v.values.questions).
			Validate(func(s string) error { _, err := parsePositive(s); return err }),
		huh.NewInput().
			Title("Error divisor").
			Description("Wrong answers that cancel one correct answer").
			Value(&v.values.divisor).
			Validate(func(s string) error { _, err := parsePositive(s); return err }),
		huh.NewInput().
			Title("Options").
			Description("Answer labels, comma separated").
			Value(&v.values.options).
			Validate(validateOptions),
	}
	if opts := v.keyOptions(); len(opts) > 1 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Answer key").
			Description("Applied automatically when correction starts").
			Options(opts...).
			Value(&v.values.key))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(rehearsalHuhTheme()).
		WithShowHelp(false)
}

func (v *setupView) keyOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("None, grade by hand", "")}
	if v.state.App.Keys == nil {
		return opts
	}
	keys, err := v.state.App.Keys.List(context.Background())
	if err != nil {
		return opts
	}
	for _, k := range keys {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%d answers)", k.Name, len(k.Answers)), k.Name))
	}
	return opts
}

func (v *setupView) ID() ViewID    { return ViewSetup }
func (v *setupView) Title() string { return "Setup" }
func (v *setupView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *setupView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *setupView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(sessionMsg); ok {
		if msg.err != nil {
			v.err = msg.err.Error()
			v.submitted = false
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		v.state.track(msg.sess)
		return v, resetView(newRehearsalView(v.state, msg.sess, msg.note))
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted && !v.submitted {
		v.submitted = true
		return v, tea.Batch(cmd, v.submit())
	}
	return v, cmd
}

// submit starts a rehearsal from the form values.
func (v *setupView) submit() tea.Cmd {
	req, err := v.values.request()
	if err != nil {
		return func() tea.Msg { return sessionMsg{err: err} }
	}
	v.err = ""
	v.state.LastRequest = req
	v.state.KeyName = v.values.key
	return startRehearsalCmd(v.state, req)
}

func (v *setupView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.Header("New rehearsal"))
	b.WriteString("\n")
	b.WriteString(formatter.Dim("Three passes: rate and mark, settle your doubts, then grade against the key."))
	b.WriteString("\n\n")
	b.WriteString(v.form.View())
	if v.err != "" {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render(v.err))
	}
	return b.String()
}
