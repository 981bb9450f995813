package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pruizcastillo-design/Oposecurity/internal/domain"
	"gopkg.in/yaml.v3"
)

// KeyFile is the on-disk form of an answer key.
//
//	{"name": "mock-3", "answers": ["A", "C", "D", "B"]}
type KeyFile struct {
	Name    string   `json:"name" yaml:"name"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
	Answers []string `json:"answers" yaml:"answers"`
}

// SheetFile is a completed answer sheet that can be replayed and scored
// without the TUI.
type SheetFile struct {
	Options      []string        `json:"options,omitempty" yaml:"options,omitempty"`
	ErrorDivisor int             `json:"error_divisor,omitempty" yaml:"error_divisor,omitempty"`
	Questions    []SheetQuestion `json:"questions" yaml:"questions"`
}

// SheetQuestion is one row of a SheetFile. Final may be omitted for GREEN
// questions, whose final answer is their initial pick.
type SheetQuestion struct {
	Confidence string   `json:"confidence" yaml:"confidence"`
	Initial    []string `json:"initial,omitempty" yaml:"initial,omitempty"`
	Final      string   `json:"final,omitempty" yaml:"final,omitempty"`
	Correct    string   `json:"correct" yaml:"correct"`
}

// Alphabet returns the sheet's option alphabet, A-D when none is given.
func (f *SheetFile) Alphabet() (domain.Alphabet, error) {
	return alphabetOf(f.Options)
}

// Alphabet returns the key's option alphabet, A-D when none is given.
func (f *KeyFile) Alphabet() (domain.Alphabet, error) {
	return alphabetOf(f.Options)
}

func alphabetOf(options []string) (domain.Alphabet, error) {
	if len(options) == 0 {
		return domain.DefaultAlphabet(), nil
	}
	return domain.NewAlphabet(options...)
}

// LoadKeyFile reads an answer key from a .json, .yaml or .yml file.
func LoadKeyFile(path string) (*KeyFile, error) {
	var f KeyFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadSheetFile reads an answer sheet from a .json, .yaml or .yml file.
func LoadSheetFile(path string) (*SheetFile, error) {
	var f SheetFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}
