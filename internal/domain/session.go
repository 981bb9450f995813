package domain

import "fmt"

// Session is one rehearsal: the question records, the lifecycle phase, the
// cursor and the grading parameters. It is owned by a single caller and is
// not safe for concurrent use.
//
// Every mutator validates phase, index and option before touching state, so
// a failed call leaves the session exactly as it was.
type Session struct {
	id           string
	alphabet     Alphabet
	phase        Phase
	cursor       int
	errorDivisor int
	questions    []Question
}

// NewSession returns a session in SETUP for the given alphabet.
func NewSession(id string, alphabet Alphabet) *Session {
	return &Session{id: id, alphabet: alphabet, phase: PhaseSetup}
}

// StartSession creates a session and moves it straight to TESTING.
func StartSession(alphabet Alphabet, questionCount, errorDivisor int) (*Session, error) {
	if alphabet.Len() == 0 {
		return nil, fmt.Errorf("%w: option alphabet is empty", ErrInvalidConfiguration)
	}
	s := NewSession("", alphabet)
	if err := s.Start(questionCount, errorDivisor); err != nil {
		return nil, err
	}
	return s, nil
}

// ── read access ──────────────────────────────────────────────────────────────

func (s *Session) ID() string           { return s.id }
func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Cursor() int          { return s.cursor }
func (s *Session) ErrorDivisor() int    { return s.errorDivisor }
func (s *Session) Alphabet() Alphabet   { return s.alphabet }
func (s *Session) QuestionCount() int   { return len(s.questions) }
func (s *Session) AtLastQuestion() bool { return s.cursor == len(s.questions)-1 }

// Questions returns deep copies of all records in order.
func (s *Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

// Question returns a copy of the record at index i.
func (s *Session) Question(i int) (Question, error) {
	if err := s.checkIndex(i); err != nil {
		return Question{}, err
	}
	return s.questions[i].Clone(), nil
}

// Current returns a copy of the record under the cursor. ok is false when
// the phase has no cursor or there are no questions.
func (s *Session) Current() (q Question, ok bool) {
	if !s.phase.HasCursor() || len(s.questions) == 0 {
		return Question{}, false
	}
	return s.questions[s.cursor].Clone(), true
}

// AnsweredCount is the refinement progress counter: GREEN questions plus
// questions with a written final mark.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, q := range s.questions {
		if q.Answered() {
			n++
		}
	}
	return n
}

// GradedCount is the number of questions whose correct answer is entered.
func (s *Session) GradedCount() int {
	n := 0
	for _, q := range s.questions {
		if q.Graded() {
			n++
		}
	}
	return n
}

// CanAdvance reports whether the advance gate for the current question is
// open in the current phase.
func (s *Session) CanAdvance() bool {
	if !s.phase.HasCursor() || len(s.questions) == 0 {
		return false
	}
	return s.gateOpen(s.cursor)
}

// Clone returns an independent deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.questions = s.Questions()
	if s.questions == nil {
		c.questions = nil
	}
	return &c
}

// ── lifecycle ────────────────────────────────────────────────────────────────

// Start allocates questionCount empty records and enters TESTING.
func (s *Session) Start(questionCount, errorDivisor int) error {
	if s.phase != PhaseSetup {
		return fmt.Errorf("%w: cannot start a session in %s", ErrInvalidTransition, s.phase)
	}
	if questionCount < 1 {
		return fmt.Errorf("%w: question count %d must be at least 1", ErrInvalidConfiguration, questionCount)
	}
	if errorDivisor < 1 {
		return fmt.Errorf("%w: error divisor %d must be at least 1", ErrInvalidConfiguration, errorDivisor)
	}
	if s.alphabet.Len() == 0 {
		return fmt.Errorf("%w: option alphabet is empty", ErrInvalidConfiguration)
	}

	questions := make([]Question, questionCount)
	for i := range questions {
		questions[i] = NewQuestion(i + 1)
	}
	s.questions = questions
	s.errorDivisor = errorDivisor
	s.cursor = 0
	s.phase = PhaseTesting
	return nil
}

// Abort discards every question record and returns to SETUP. It is
// available from every phase except SETUP itself.
func (s *Session) Abort() error {
	if s.phase == PhaseSetup {
		return fmt.Errorf("%w: session is already in %s", ErrInvalidTransition, PhaseSetup)
	}
	s.questions = nil
	s.errorDivisor = 0
	s.cursor = 0
	s.phase = PhaseSetup
	return nil
}

// ── first pass (TESTING) ─────────────────────────────────────────────────────

// SetConfidence declares the tier for question i.
func (s *Session) SetConfidence(i int, c Confidence) error {
	if err := s.requirePhase(PhaseTesting); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown confidence %q", ErrInvalidOption, string(c))
	}
	s.questions[i].setConfidence(c)
	return nil
}

// MarkInitial applies one provisional-mark tap of option o on question i
// using the tier rule of that question.
func (s *Session) MarkInitial(i int, o Option) error {
	if err := s.requirePhase(PhaseTesting); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.alphabet.checkOption(o); err != nil {
		return err
	}
	return applyMark(&s.questions[i], o)
}

// ── second pass (REFINEMENT) ─────────────────────────────────────────────────

// SetFinal overwrites the binding answer of question i; Blank clears it.
// GREEN questions are settled by consolidation and reject direct writes.
func (s *Session) SetFinal(i int, o Option) error {
	if err := s.requirePhase(PhaseRefinement); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if o != Blank {
		if err := s.alphabet.checkOption(o); err != nil {
			return err
		}
	}
	if s.questions[i].Confidence == ConfidenceGreen {
		return fmt.Errorf("%w: question %d is GREEN, its final mark is fixed", ErrInvalidTransition, s.questions[i].ID)
	}
	s.questions[i].FinalSelection = o
	return nil
}

// ── grading (CORRECTION) ─────────────────────────────────────────────────────

// SetCorrect records the answer-key entry for question i. It can be
// corrected while the session stays in CORRECTION and is frozen afterwards.
func (s *Session) SetCorrect(i int, o Option) error {
	if err := s.requirePhase(PhaseCorrection); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if err := s.alphabet.checkOption(o); err != nil {
		return err
	}
	s.questions[i].CorrectAnswer = o
	return nil
}

// ApplyKey writes a whole answer key at once. All entries are validated
// before any is written.
func (s *Session) ApplyKey(answers []Option) error {
	if err := s.requirePhase(PhaseCorrection); err != nil {
		return err
	}
	if len(answers) != len(s.questions) {
		return fmt.Errorf("%w: answer key has %d entries, session has %d questions",
			ErrInvalidConfiguration, len(answers), len(s.questions))
	}
	for i, o := range answers {
		if err := s.alphabet.checkOption(o); err != nil {
			return fmt.Errorf("answer %d: %w", i+1, err)
		}
	}
	for i, o := range answers {
		s.questions[i].CorrectAnswer = o
	}
	return nil
}

// ── cursor ───────────────────────────────────────────────────────────────────

// Advance moves the cursor forward when the gate is open. On the last
// question it finishes the phase instead.
func (s *Session) Advance() error {
	if err := s.requireCursor(); err != nil {
		return err
	}
	if err := s.checkGate(s.cursor); err != nil {
		return err
	}
	if s.cursor < len(s.questions)-1 {
		s.cursor++
		return nil
	}
	return s.finish()
}

// Retreat moves the cursor back one question, clamping at the first.
func (s *Session) Retreat() error {
	if err := s.requireCursor(); err != nil {
		return err
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return nil
}

// Jump moves the cursor to question i without consulting the gate, for
// going back to revise an earlier question. Moving forward past a closed
// gate is refused.
func (s *Session) Jump(i int) error {
	if err := s.requireCursor(); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	for j := s.cursor; j < i; j++ {
		if err := s.checkGate(j); err != nil {
			return err
		}
	}
	s.cursor = i
	return nil
}

// FinishPhase completes the current phase from its last question.
func (s *Session) FinishPhase() error {
	if err := s.requireCursor(); err != nil {
		return err
	}
	if !s.AtLastQuestion() {
		return fmt.Errorf("%w: %s can only be finished from the last question", ErrInvalidTransition, s.phase)
	}
	if err := s.checkGate(s.cursor); err != nil {
		return err
	}
	return s.finish()
}

// finish performs the phase transition out of the current cursor phase.
func (s *Session) finish() error {
	switch s.phase {
	case PhaseTesting:
		for i := range s.questions {
			if err := s.checkGate(i); err != nil {
				return err
			}
		}
	case PhaseRefinement:
		consolidate(s.questions)
	case PhaseCorrection:
		for i := range s.questions {
			if err := s.checkGate(i); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: nothing to finish in %s", ErrInvalidTransition, s.phase)
	}
	s.phase = s.phase.Next()
	s.cursor = 0
	return nil
}

// ── validation helpers ───────────────────────────────────────────────────────

// gateOpen is the phase-specific advance gate for question i.
func (s *Session) gateOpen(i int) bool {
	q := s.questions[i]
	switch s.phase {
	case PhaseTesting:
		return CanAdvance(q)
	case PhaseRefinement:
		return true
	case PhaseCorrection:
		return q.Graded()
	}
	return false
}

func (s *Session) checkGate(i int) error {
	if s.gateOpen(i) {
		return nil
	}
	q := s.questions[i]
	switch s.phase {
	case PhaseTesting:
		return fmt.Errorf("%w: question %d: %s", ErrInvalidTransition, q.ID, GateHint(q))
	case PhaseCorrection:
		return fmt.Errorf("%w: question %d has no correct answer yet", ErrInvalidTransition, q.ID)
	}
	return fmt.Errorf("%w: cannot advance in %s", ErrInvalidTransition, s.phase)
}

func (s *Session) requirePhase(p Phase) error {
	if s.phase != p {
		return fmt.Errorf("%w: operation needs %s, session is in %s", ErrInvalidTransition, p, s.phase)
	}
	return nil
}

func (s *Session) requireCursor() error {
	if !s.phase.HasCursor() {
		return fmt.Errorf("%w: no question cursor in %s", ErrInvalidTransition, s.phase)
	}
	return nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.questions) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.questions))
	}
	return nil
}
