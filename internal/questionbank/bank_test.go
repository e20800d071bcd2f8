package questionbank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

func TestDefault_Embedded(t *testing.T) {
	t.Parallel()

	bank, err := Default()
	require.NoError(t, err)

	likert := bank.Likert()
	require.Len(t, likert, LikertCount)
	assert.Equal(t, 1, likert[0].ID)
	assert.Equal(t, "Logical & Analytical Thinking", likert[0].Dimension)
	assert.Equal(t, "Social Orientation", likert[9].Dimension)

	wantCounts := map[domain.Stage]int{
		domain.StageClass10:      15,
		domain.StageClass12:      16,
		domain.StageCollege:      18,
		domain.StageProfessional: 18,
		domain.StageHiddenTalent: 4,
	}
	for st, n := range wantCounts {
		qs, ok := bank.StageQuestions(st)
		require.True(t, ok, st)
		assert.Len(t, qs, n, st)
	}

	qs, _ := bank.StageQuestions(domain.StageClass10)
	assert.Equal(t, "10_1", qs[0].ID)
	assert.Equal(t, domain.QuestionChoice, qs[0].Type)
	assert.Equal(t, []string{"Mathematics", "Science", "Social Science", "Languages"}, qs[0].Options)
	assert.Equal(t, "Subject Understanding", qs[0].Category)
	assert.Equal(t, domain.QuestionText, qs[14].Type)
}

func TestDefault_Once(t *testing.T) {
	t.Parallel()

	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestBank_ReturnsCopies(t *testing.T) {
	t.Parallel()

	bank, err := Default()
	require.NoError(t, err)

	likert := bank.Likert()
	likert[0].Text = "mutated"
	assert.NotEqual(t, "mutated", bank.Likert()[0].Text)

	qs, _ := bank.StageQuestions(domain.StageClass10)
	qs[0].Options[0] = "mutated"
	qs2, _ := bank.StageQuestions(domain.StageClass10)
	assert.Equal(t, "Mathematics", qs2[0].Options[0])
}

func TestBank_Lookups(t *testing.T) {
	t.Parallel()

	bank, err := Default()
	require.NoError(t, err)

	assert.True(t, bank.HasStageQuestion(domain.StageCollege, "C_1"))
	assert.False(t, bank.HasStageQuestion(domain.StageCollege, "P_1"))
	assert.False(t, bank.HasStageQuestion("", "C_1"))

	_, ok := bank.StageQuestions("")
	assert.False(t, ok)

	ids := bank.LikertIDs()
	assert.Len(t, ids, LikertCount)
	_, ok = ids[10]
	assert.True(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"not_yaml", "likert: [unclosed"},
		{"too_few_likert", "likert:\n  - id: 1\n    text: a\n"},
		{"unknown_stage", validLikert + "stages:\n  - stage: Retired\n    questions: []\n"},
		{"missing_stages", validLikert + "stages: []\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateQuestion(domain.StageQuestion{ID: "a", Text: "t", Type: domain.QuestionText}))
	assert.NoError(t, validateQuestion(domain.StageQuestion{ID: "a", Text: "t", Type: domain.QuestionMultiSelect, Options: []string{"x"}}))
	assert.Error(t, validateQuestion(domain.StageQuestion{ID: "a", Text: "t", Type: domain.QuestionChoice}))
	assert.Error(t, validateQuestion(domain.StageQuestion{ID: "a", Text: "t", Type: "slider"}))
	assert.Error(t, validateQuestion(domain.StageQuestion{Text: "t", Type: domain.QuestionText}))
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(p, embedded, 0o600))

	bank, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, bank.Likert(), LikertCount)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.NotNil(t, def)
}

const validLikert = `likert:
  - {id: 1, text: a, dimension: d}
  - {id: 2, text: a, dimension: d}
  - {id: 3, text: a, dimension: d}
  - {id: 4, text: a, dimension: d}
  - {id: 5, text: a, dimension: d}
  - {id: 6, text: a, dimension: d}
  - {id: 7, text: a, dimension: d}
  - {id: 8, text: a, dimension: d}
  - {id: 9, text: a, dimension: d}
  - {id: 10, text: a, dimension: d}
`
