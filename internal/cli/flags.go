package cli

import (
	"fmt"
	"strings"

	"github.com/pruizcastillo-design/Oposecurity/internal/config"
	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"github.com/pruizcastillo-design/Oposecurity/internal/service"
	"github.com/spf13/pflag"
)

// rehearsalFlags are the session parameters shared by every command that
// starts or replays a rehearsal.
type rehearsalFlags struct {
	questions int
	divisor   int
	options   string
}

func newRehearsalFlags(d config.Defaults) *rehearsalFlags {
	return &rehearsalFlags{
		questions: d.QuestionCount,
		divisor:   d.ErrorDivisor,
		options:   strings.Join(d.Options, ","),
	}
}

// flagSet binds the flags. Defaults come from the loaded configuration.
func (f *rehearsalFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rehearsal", pflag.ContinueOnError)
	fs.IntVarP(&f.questions, "questions", "n", f.questions, "Number of questions in the exam")
	fs.IntVarP(&f.divisor, "divisor", "d", f.divisor, "Wrong answers that cancel one correct answer")
	fs.StringVar(&f.options, "options", f.options, "Comma-separated answer option labels")
	return fs
}

// request validates the flags and turns them into a start request.
func (f *rehearsalFlags) request() (service.StartRequest, error) {
	if f.questions < 1 {
		return service.StartRequest{}, fmt.Errorf("%w: --questions must be at least 1", domain.ErrInvalidConfiguration)
	}
	if f.divisor < 1 {
		return service.StartRequest{}, fmt.Errorf("%w: --divisor must be at least 1", domain.ErrInvalidConfiguration)
	}
	opts := config.SplitOptions(f.options)
	if _, err := domain.NewAlphabet(opts...); err != nil {
		return service.StartRequest{}, fmt.Errorf("--options: %w", err)
	}
	return service.StartRequest{
		QuestionCount: f.questions,
		ErrorDivisor:  f.divisor,
		Options:       opts,
	}, nil
}
