// Package questionbank loads the read-only assessment question table.
package questionbank

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

// LikertCount is the fixed length of the phase-1 assessment.
const LikertCount = 10

//go:embed questions.yaml
var embedded []byte

type document struct {
	Likert []domain.LikertQuestion `yaml:"likert"`
	Stages []struct {
		Stage     domain.Stage           `yaml:"stage"`
		Questions []domain.StageQuestion `yaml:"questions"`
	} `yaml:"stages"`
}

// Bank is an immutable question table. Accessors return copies.
type Bank struct {
	likert  []domain.LikertQuestion
	byStage map[domain.Stage][]domain.StageQuestion
	ids     map[domain.Stage]map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultBank *Bank
	defaultErr  error
)

// Default returns the embedded bank, parsed once per process.
func Default() (*Bank, error) {
	defaultOnce.Do(func() {
		defaultBank, defaultErr = Parse(embedded)
	})
	return defaultBank, defaultErr
}

// Load returns the bank stored at path, or the embedded one when path is empty.
func Load(path string) (*Bank, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("op=questionbank.Load: %w", err)
	}
	bank, err := Parse(b)
	if err != nil {
		return nil, err
	}
	slog.Info("question bank loaded from file", slog.String("path", path))
	return bank, nil
}

// Parse decodes and validates a YAML question bank.
func Parse(data []byte) (*Bank, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("op=questionbank.Parse: %w", err)
	}
	if len(doc.Likert) != LikertCount {
		return nil, fmt.Errorf("op=questionbank.Parse: want %d likert questions, got %d", LikertCount, len(doc.Likert))
	}
	seen := map[int]struct{}{}
	for _, q := range doc.Likert {
		if _, dup := seen[q.ID]; dup {
			return nil, fmt.Errorf("op=questionbank.Parse: duplicate likert id %d", q.ID)
		}
		if q.Text == "" {
			return nil, fmt.Errorf("op=questionbank.Parse: likert %d has no text", q.ID)
		}
		seen[q.ID] = struct{}{}
	}

	bank := &Bank{
		likert:  doc.Likert,
		byStage: make(map[domain.Stage][]domain.StageQuestion, len(doc.Stages)),
		ids:     make(map[domain.Stage]map[string]struct{}, len(doc.Stages)),
	}
	for _, s := range doc.Stages {
		if !s.Stage.Valid() {
			return nil, fmt.Errorf("op=questionbank.Parse: unknown stage %q", s.Stage)
		}
		if _, dup := bank.byStage[s.Stage]; dup {
			return nil, fmt.Errorf("op=questionbank.Parse: stage %q listed twice", s.Stage)
		}
		ids := make(map[string]struct{}, len(s.Questions))
		for _, q := range s.Questions {
			if err := validateQuestion(q); err != nil {
				return nil, fmt.Errorf("op=questionbank.Parse: stage %q: %w", s.Stage, err)
			}
			if _, dup := ids[q.ID]; dup {
				return nil, fmt.Errorf("op=questionbank.Parse: stage %q: duplicate id %q", s.Stage, q.ID)
			}
			ids[q.ID] = struct{}{}
		}
		bank.byStage[s.Stage] = s.Questions
		bank.ids[s.Stage] = ids
	}
	for _, st := range domain.Stages {
		if _, ok := bank.byStage[st]; !ok {
			return nil, fmt.Errorf("op=questionbank.Parse: stage %q missing", st)
		}
	}
	return bank, nil
}

func validateQuestion(q domain.StageQuestion) error {
	if q.ID == "" || q.Text == "" {
		return fmt.Errorf("question %q: id and text required", q.ID)
	}
	switch q.Type {
	case domain.QuestionText:
	case domain.QuestionChoice, domain.QuestionMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: %s needs options", q.ID, q.Type)
		}
	default:
		return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}
	return nil
}

// Likert returns the phase-1 questions in order.
func (b *Bank) Likert() []domain.LikertQuestion {
	out := make([]domain.LikertQuestion, len(b.likert))
	copy(out, b.likert)
	return out
}

// LikertIDs returns the set of valid phase-1 question ids.
func (b *Bank) LikertIDs() map[int]struct{} {
	out := make(map[int]struct{}, len(b.likert))
	for _, q := range b.likert {
		out[q.ID] = struct{}{}
	}
	return out
}

// StageQuestions returns the ordered phase-2 set of a stage.
func (b *Bank) StageQuestions(stage domain.Stage) ([]domain.StageQuestion, bool) {
	qs, ok := b.byStage[stage]
	if !ok {
		return nil, false
	}
	out := make([]domain.StageQuestion, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out, true
}

// HasStageQuestion reports whether id belongs to the stage's question set.
func (b *Bank) HasStageQuestion(stage domain.Stage, id string) bool {
	_, ok := b.ids[stage][id]
	return ok
}
