package ai

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := ParseJSON(s)
	require.NoError(t, err)
	return v
}

func assertWellFormed(t *testing.T, a domain.CareerAnalysis) {
	t.Helper()
	require.NotEmpty(t, a.CareerCards)
	assert.LessOrEqual(t, len(a.CareerCards), MaxCareerCards)
	for _, c := range a.CareerCards {
		assert.Contains(t, []domain.Demand{domain.DemandHigh, domain.DemandMedium, domain.DemandEmerging}, c.Demand)
		assert.NotNil(t, c.Reasons)
		assert.NotNil(t, c.Gaps)
	}
	assert.NotNil(t, a.TalentProfile.TopStrengths)
	assert.NotEmpty(t, a.TalentProfile.WorkingNature)
	for _, l := range []domain.RoadmapLevel{a.Roadmap.Beginner, a.Roadmap.Intermediate, a.Roadmap.Advanced} {
		assert.NotEmpty(t, l.Focus)
		assert.NotNil(t, l.Activities)
	}
	assert.NotEmpty(t, a.Guidance.BestRole)
	assert.NotEmpty(t, a.Guidance.Reason)
	assert.NotEmpty(t, a.Guidance.Actions)
}

func TestSanitize_Total(t *testing.T) {
	t.Parallel()

	inputs := map[string]any{
		"nil":           nil,
		"bool":          true,
		"number":        json.Number("42"),
		"string":        "hello",
		"array":         []any{1.0, "x"},
		"empty_object":  map[string]any{},
		"wrong_types":   mustParse(t, `{"talentProfile":[],"careerCards":{},"roadmap":"x","guidance":7}`),
		"nested_nulls":  mustParse(t, `{"talentProfile":null,"careerCards":[null],"roadmap":{"beginner":null},"guidance":{"actions":null}}`),
		"array_of_junk": mustParse(t, `{"careerCards":[1,"two",true,[]]}`),
	}

	for name, in := range inputs {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var got domain.CareerAnalysis
			assert.NotPanics(t, func() { got = Sanitize(in) })
			assertWellFormed(t, got)
		})
	}
}

func TestSanitize_EmptyObject(t *testing.T) {
	t.Parallel()

	a, rep := SanitizeWithReport(map[string]any{})

	assert.Equal(t, []domain.CareerCard{PlaceholderCard()}, a.CareerCards)
	assert.Equal(t, []string{}, a.TalentProfile.TopStrengths)
	assert.Equal(t, DefaultWorkingNature, a.TalentProfile.WorkingNature)
	assert.Equal(t, DefaultBeginnerFocus, a.Roadmap.Beginner.Focus)
	assert.Equal(t, DefaultIntermediateFocus, a.Roadmap.Intermediate.Focus)
	assert.Equal(t, DefaultAdvancedFocus, a.Roadmap.Advanced.Focus)
	assert.Empty(t, a.Roadmap.Beginner.Activities)
	assert.Equal(t, "General Analysis", a.Guidance.BestRole)
	assert.Equal(t, DefaultReason, a.Guidance.Reason)
	assert.Equal(t, FallbackActions(), a.Guidance.Actions)

	assert.True(t, rep.PlaceholderCard)
	assert.True(t, rep.FallbackActions)
	assert.Zero(t, rep.DroppedCards)
}

func TestSanitize_CardBound(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{"careerCards":[
		{"title":"A"},{"title":"B"},{"title":"C"},{"title":"D"},{"title":"E"},{"title":"F"}
	]}`)
	a, rep := SanitizeWithReport(in)

	require.Len(t, a.CareerCards, MaxCareerCards)
	titles := []string{}
	for _, c := range a.CareerCards {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, titles)
	assert.Equal(t, 2, rep.DroppedCards)
	assert.False(t, rep.PlaceholderCard)
	assert.Equal(t, "A", a.Guidance.BestRole)
}

func TestSanitize_CardFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		card string
		want domain.CareerCard
	}{
		{
			name: "all_present",
			card: `{"title":"Data Scientist","demand":"High","fitScore":92,"salary":"12 LPA","growth":"Lead","reasons":["math"],"gaps":["SQL"]}`,
			want: domain.CareerCard{Title: "Data Scientist", Demand: domain.DemandHigh, FitScore: 92, Salary: "12 LPA", Growth: "Lead", Reasons: []string{"math"}, Gaps: []string{"SQL"}},
		},
		{
			name: "all_missing",
			card: `{}`,
			want: domain.CareerCard{Title: DefaultCardTitle, Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "not_an_object",
			card: `"Engineer"`,
			want: domain.CareerCard{Title: DefaultCardTitle, Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "demand_case_mismatch",
			card: `{"title":"X","demand":"high"}`,
			want: domain.CareerCard{Title: "X", Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "demand_unknown",
			card: `{"title":"X","demand":"Very High"}`,
			want: domain.CareerCard{Title: "X", Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "blank_strings_default",
			card: `{"title":"   ","salary":"","growth":"\n"}`,
			want: domain.CareerCard{Title: DefaultCardTitle, Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "numbers_coerced_to_strings",
			card: `{"title":404,"salary":1200000,"reasons":[1,"two",null],"gaps":"not a list"}`,
			want: domain.CareerCard{Title: "404", Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: "1200000", Growth: DefaultGrowth, Reasons: []string{"1", "two", ""}, Gaps: []string{}},
		},
		{
			name: "fitscore_string_defaults",
			card: `{"title":"X","fitScore":"90"}`,
			want: domain.CareerCard{Title: "X", Demand: domain.DemandMedium, FitScore: DefaultFitScore, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "fitscore_rounded_not_clamped",
			card: `{"title":"X","fitScore":140.6}`,
			want: domain.CareerCard{Title: "X", Demand: domain.DemandMedium, FitScore: 141, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
		{
			name: "fitscore_negative",
			card: `{"title":"X","fitScore":-3}`,
			want: domain.CareerCard{Title: "X", Demand: domain.DemandMedium, FitScore: -3, Salary: DefaultSalary, Growth: DefaultGrowth, Reasons: []string{}, Gaps: []string{}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := Sanitize(mustParse(t, `{"careerCards":[`+tt.card+`]}`))
			require.Len(t, a.CareerCards, 1)
			assert.Equal(t, tt.want, a.CareerCards[0])
		})
	}
}

func TestSanitize_FitScoreSaturates(t *testing.T) {
	t.Parallel()

	a := Sanitize(mustParse(t, `{"careerCards":[{"fitScore":1e400},{"fitScore":-1e30}]}`))
	assert.Equal(t, math.MaxInt, a.CareerCards[0].FitScore)
	assert.Equal(t, math.MinInt, a.CareerCards[1].FitScore)
}

func TestSanitize_ProfileAndGuidance(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{
		"talentProfile":{"topStrengths":["Logic"," ",null,"Empathy"],"workingNature":"Analytical Builder"},
		"careerCards":[{"title":"Engineer"}],
		"guidance":{"bestRole":"","reason":"Strong logic","actions":["", "Build projects", 7]}
	}`)
	a := Sanitize(in)

	assert.Equal(t, []string{"Logic", "Empathy"}, a.TalentProfile.TopStrengths)
	assert.Equal(t, "Analytical Builder", a.TalentProfile.WorkingNature)
	assert.Equal(t, "Engineer", a.Guidance.BestRole)
	assert.Equal(t, "Strong logic", a.Guidance.Reason)
	assert.Equal(t, []string{"Build projects", "7"}, a.Guidance.Actions)
}

func TestSanitize_Roadmap(t *testing.T) {
	t.Parallel()

	in := mustParse(t, `{"roadmap":{
		"beginner":{"focus":"Basics","activities":[{"task":"Learn Python","resources":"Coursera","time":"2 months"},{},"junk"]},
		"intermediate":{"activities":"none"},
		"advanced":[]
	}}`)
	a := Sanitize(in)

	assert.Equal(t, "Basics", a.Roadmap.Beginner.Focus)
	assert.Equal(t, []domain.RoadmapActivity{
		{Task: "Learn Python", Resources: "Coursera", Time: "2 months"},
		{Task: DefaultTask, Resources: DefaultResources, Time: DefaultTime},
		{Task: DefaultTask, Resources: DefaultResources, Time: DefaultTime},
	}, a.Roadmap.Beginner.Activities)
	assert.Equal(t, DefaultIntermediateFocus, a.Roadmap.Intermediate.Focus)
	assert.Equal(t, []domain.RoadmapActivity{}, a.Roadmap.Intermediate.Activities)
	assert.Equal(t, DefaultAdvancedFocus, a.Roadmap.Advanced.Focus)
}

func TestSanitize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`{}`,
		`null`,
		`{"careerCards":[{"title":" A ","fitScore":77.5,"demand":"Emerging","reasons":[null,3]}],"talentProfile":{"topStrengths":[""]}}`,
		`{"careerCards":[1,2,3,4,5],"roadmap":{"beginner":{"activities":[{}]}},"guidance":{"actions":[]}}`,
	}

	for _, in := range inputs {
		first := Sanitize(mustParse(t, in))
		b, err := json.Marshal(first)
		require.NoError(t, err)
		second := Sanitize(mustParse(t, string(b)))
		assert.Equal(t, first, second, in)
	}
}

func TestSanitize_WellFormedPassesThrough(t *testing.T) {
	t.Parallel()

	want := domain.CareerAnalysis{
		TalentProfile: domain.TalentProfile{TopStrengths: []string{"Logic"}, WorkingNature: "Builder"},
		CareerCards: []domain.CareerCard{{
			Title: "Engineer", Demand: domain.DemandHigh, FitScore: 90, Salary: "10 LPA", Growth: "Architect",
			Reasons: []string{"r"}, Gaps: []string{"g"},
		}},
		Roadmap: domain.Roadmap{
			Beginner:     domain.RoadmapLevel{Focus: "B", Activities: []domain.RoadmapActivity{{Task: "t", Resources: "r", Time: "1w"}}},
			Intermediate: domain.RoadmapLevel{Focus: "I", Activities: []domain.RoadmapActivity{}},
			Advanced:     domain.RoadmapLevel{Focus: "A", Activities: []domain.RoadmapActivity{}},
		},
		Guidance: domain.Guidance{BestRole: "Engineer", Reason: "fit", Actions: []string{"go"}},
	}
	b, err := json.Marshal(want)
	require.NoError(t, err)

	got, rep := SanitizeWithReport(mustParse(t, string(b)))
	assert.Equal(t, want, got)
	assert.Equal(t, Report{}, rep)
}
