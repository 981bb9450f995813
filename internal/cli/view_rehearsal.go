package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pruizcastillo-design/Oposecurity/internal/cli/formatter"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
)

const (
	stepBarWidth = 20
	stripColumns = 20
)

type rehearsalKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	First    key.Binding
	Red      key.Binding
	Yellow   key.Binding
	Green    key.Binding
	Clear    key.Binding
	ApplyKey key.Binding
	Abort    key.Binding
}

func newRehearsalKeyMap() rehearsalKeyMap {
	return rehearsalKeyMap{
		Next:     key.NewBinding(key.WithKeys("enter", "right"), key.WithHelp("enter", "next")),
		Prev:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "back")),
		First:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Red:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "red")),
		Yellow:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "yellow")),
		Green:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "green")),
		Clear:    key.NewBinding(key.WithKeys("0", "backspace"), key.WithHelp("0", "clear")),
		ApplyKey: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "answer key")),
		Abort:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abort")),
	}
}

// rehearsalView walks the question list through TESTING, REFINEMENT and
// CORRECTION. It renders the latest snapshot returned by the service.
type rehearsalView struct {
	state      *SharedState
	sess       *domain.Session
	keys       rehearsalKeyMap
	status     string
	failed     bool
	keyApplied bool
}

func newRehearsalView(state *SharedState, sess *domain.Session, note string) *rehearsalView {
	return &rehearsalView{
		state:  state,
		sess:   sess,
		keys:   newRehearsalKeyMap(),
		status: note,
	}
}

func (v *rehearsalView) ID() ViewID { return ViewRehearsal }
func (v *rehearsalView) Title() string {
	return strings.ToLower(string(v.sess.Phase()))
}

func (v *rehearsalView) ShortHelp() []key.Binding {
	switch v.sess.Phase() {
	case domain.PhaseTesting:
		return []key.Binding{v.keys.Red, v.keys.Yellow, v.keys.Green, v.marksHelp("mark"), v.keys.Next, v.keys.Prev, v.keys.Abort}
	case domain.PhaseRefinement:
		return []key.Binding{v.marksHelp("final"), v.keys.Clear, v.keys.Next, v.keys.Prev, v.keys.Abort}
	case domain.PhaseCorrection:
		help := []key.Binding{v.marksHelp("key"), v.keys.Next, v.keys.Prev}
		if v.state.App.Keys != nil {
			help = append(help, v.keys.ApplyKey)
		}
		return append(help, v.keys.Abort)
	}
	return nil
}

// marksHelp is the hint for the option letters, e.g. "a-d: mark".
func (v *rehearsalView) marksHelp(desc string) key.Binding {
	opts := v.sess.Alphabet().Strings()
	label := strings.ToLower(opts[0])
	if len(opts) > 1 {
		label += "-" + strings.ToLower(opts[len(opts)-1])
	}
	return key.NewBinding(key.WithKeys(), key.WithHelp(label, desc))
}

func (v *rehearsalView) Init() tea.Cmd { return nil }

func (v *rehearsalView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionMsg:
		return v.apply(msg)

	case abortedMsg:
		v.state.SessionID = msg.sessionID
		v.state.Phase = domain.PhaseSetup
		return v, resetView(newSetupView(v.state))

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

// apply takes in a new snapshot and reacts to phase changes.
func (v *rehearsalView) apply(msg sessionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		v.status = msg.err.Error()
		v.failed = true
		return v, nil
	}

	prev := v.sess.Phase()
	v.sess = msg.sess
	v.state.track(msg.sess)
	v.failed = false
	v.status = msg.note

	phase := msg.sess.Phase()
	if phase == prev {
		return v, nil
	}

	switch phase {
	case domain.PhaseRefinement:
		v.status = "Second pass: settle your doubts. Green answers are locked."
	case domain.PhaseCorrection:
		v.status = "Correction: enter the correct answer for every question."
		if v.state.KeyName != "" && !v.keyApplied {
			v.keyApplied = true
			return v, applyKeyCmd(v.state, v.state.KeyName)
		}
	case domain.PhaseResults:
		return v, resetView(newResultsView(v.state, msg.sess))
	}
	return v, nil
}

func (v *rehearsalView) handleKey(msg tea.KeyMsg) tea.Cmd {
	i := v.sess.Cursor()
	switch {
	case key.Matches(msg, v.keys.Abort):
		return abortWizardCmd(v.state)
	case key.Matches(msg, v.keys.Next):
		return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
			return svc.Advance(ctx, id)
		})
	case key.Matches(msg, v.keys.Prev):
		return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
			return svc.Retreat(ctx, id)
		})
	case key.Matches(msg, v.keys.First):
		return jumpCmd(v.state, 0)
	case key.Matches(msg, v.keys.ApplyKey) && v.sess.Phase() == domain.PhaseCorrection:
		return applyKeyWizardCmd(v.state, v.sess.QuestionCount())
	}

	switch v.sess.Phase() {
	case domain.PhaseTesting:
		if c, ok := v.tierFor(msg); ok {
			return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
				return svc.SetConfidence(ctx, id, i, c)
			})
		}
		if o, ok := v.optionFor(msg); ok {
			return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
				return svc.MarkInitial(ctx, id, i, o)
			})
		}

	case domain.PhaseRefinement:
		if key.Matches(msg, v.keys.Clear) {
			return v.setFinal(i, domain.Blank)
		}
		if o, ok := v.optionFor(msg); ok {
			if q, _ := v.sess.Current(); q.FinalSelection == o {
				o = domain.Blank
			}
			return v.setFinal(i, o)
		}

	case domain.PhaseCorrection:
		if o, ok := v.optionFor(msg); ok {
			return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
				return svc.SetCorrect(ctx, id, i, o)
			})
		}
	}
	return nil
}

func (v *rehearsalView) call(op rehearsalOp) tea.Cmd {
	return rehearsalCmd(v.state, "", op)
}

func (v *rehearsalView) setFinal(i int, o domain.Option) tea.Cmd {
	return v.call(func(ctx context.Context, svc service.RehearsalService, id string) (*domain.Session, error) {
		return svc.SetFinal(ctx, id, i, o)
	})
}

// tierFor maps the 0-3 keys to confidence tiers.
func (v *rehearsalView) tierFor(msg tea.KeyMsg) (domain.Confidence, bool) {
	switch {
	case key.Matches(msg, v.keys.Red):
		return domain.ConfidenceRed, true
	case key.Matches(msg, v.keys.Yellow):
		return domain.ConfidenceYellow, true
	case key.Matches(msg, v.keys.Green):
		return domain.ConfidenceGreen, true
	case msg.String() == "0":
		return domain.ConfidenceNone, true
	}
	return "", false
}

// optionFor maps a typed label to an option of the session alphabet.
func (v *rehearsalView) optionFor(msg tea.KeyMsg) (domain.Option, bool) {
	if msg.Type != tea.KeyRunes {
		return domain.Blank, false
	}
	return v.sess.Alphabet().Lookup(string(msg.Runes))
}

// ── rendering ────────────────────────────────────────────────────────────────

func (v *rehearsalView) View() string {
	q, ok := v.sess.Current()
	if !ok {
		return formatter.Dim("No question selected.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.PhaseBadge(v.sess.Phase()))
	b.WriteString("  ")
	b.WriteString(formatter.RenderStep(v.sess.Cursor(), v.sess.QuestionCount(), stepBarWidth))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n", formatter.TierBadge(q.Confidence), formatter.Dim(formatter.TierLabel(q.Confidence))))
	b.WriteString("\n  ")
	b.WriteString(formatter.OptionRow(v.sess.Alphabet(), q, v.sess.Phase() == domain.PhaseCorrection))
	b.WriteString("\n\n")

	for _, line := range v.detailLines(q) {
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderStrip())

	if v.status != "" {
		b.WriteString("\n")
		if v.failed {
			b.WriteString(formatter.StyleRed.Render(v.status))
		} else {
			b.WriteString(formatter.Dim(v.status))
		}
	}
	return b.String()
}

// detailLines describes the current question for the active pass.
func (v *rehearsalView) detailLines(q domain.Question) []string {
	n := v.sess.QuestionCount()
	switch v.sess.Phase() {
	case domain.PhaseTesting:
		if hint := domain.GateHint(q); hint != "" {
			return []string{formatter.StyleYellow.Render("To continue: " + hint)}
		}
		return []string{formatter.StyleGreen.Render("Ready, press enter")}

	case domain.PhaseRefinement:
		var lines []string
		switch q.Confidence {
		case domain.ConfidenceGreen:
			lines = append(lines, "Locked answer: "+formatter.StyleGreen.Render(q.ImpliedFinal().String()))
		case domain.ConfidenceYellow:
			lines = append(lines, "Doubt between: "+formatter.StyleYellow.Render(formatter.FormatOptions(q.InitialSelections, " / ")))
			lines = append(lines, "Final answer: "+finalLabel(q.FinalSelection))
		default:
			lines = append(lines, "Final answer: "+finalLabel(q.FinalSelection))
		}
		lines = append(lines, countLine("Answered", v.sess.AnsweredCount(), n))
		return lines

	case domain.PhaseCorrection:
		correct := formatter.StyleYellow.Render("not entered")
		if q.Graded() {
			correct = formatter.StylePurple.Render(q.CorrectAnswer.String())
		}
		return []string{
			"Your answer: " + finalLabel(q.FinalSelection) + "   Correct: " + correct,
			countLine("Graded", v.sess.GradedCount(), n),
		}
	}
	return nil
}

// countLine renders "Graded 3 of 10" with a progress bar.
func countLine(label string, done, total int) string {
	return formatter.Dim(fmt.Sprintf("%s %d of %d", label, done, total)) + "  " +
		formatter.RenderProgress(float64(done)/float64(max(total, 1)), stepBarWidth)
}

func finalLabel(o domain.Option) string {
	if o == domain.Blank {
		return formatter.Dim("blank")
	}
	return formatter.Bold(o.String())
}

// renderStrip draws every question number in its tier color, with the
// cursor in brackets.
func (v *rehearsalView) renderStrip() string {
	var b strings.Builder
	questions := v.sess.Questions()
	for i, q := range questions {
		if i > 0 && i%stripColumns == 0 {
			b.WriteString("\n")
		}
		cell := fmt.Sprintf(" %2d ", q.ID)
		if i == v.sess.Cursor() {
			cell = fmt.Sprintf("[%2d]", q.ID)
		}
		style := formatter.TierStyle(q.Confidence)
		if v.sess.Phase() == domain.PhaseCorrection && q.Graded() {
			style = formatter.StylePurple
		}
		b.WriteString(style.Render(cell))
	}
	b.WriteString("\n")
	return b.String()
}
