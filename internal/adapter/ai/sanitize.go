package ai

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

// MaxCareerCards bounds the number of cards kept from the model.
const MaxCareerCards = 4

// Field defaults applied when the model output is missing or malformed.
const (
	DefaultWorkingNature = "Balanced Professional"
	DefaultCardTitle     = "Recommended Role"
	DefaultFitScore      = 75
	DefaultSalary        = "Market Standard"
	DefaultGrowth        = "Growth path available"
	DefaultTask          = "Explore this topic"
	DefaultResources     = "Online Search / Books"
	DefaultTime          = "Flexible"
	DefaultBestRole      = "Best Fit Role"
	DefaultReason        = "Based on your overall profile analysis."

	DefaultBeginnerFocus     = "Foundational Knowledge"
	DefaultIntermediateFocus = "Practical Application"
	DefaultAdvancedFocus     = "Expert Mastery"
)

// PlaceholderCard is substituted when the model produced no usable cards.
func PlaceholderCard() domain.CareerCard {
	return domain.CareerCard{
		Title:    "General Analysis",
		Demand:   domain.DemandMedium,
		FitScore: 0,
		Salary:   "Varies",
		Growth:   "Please retake assessment with more details.",
		Reasons:  []string{"Insufficient data to recommend specific roles."},
		Gaps:     []string{"General Aptitude"},
	}
}

// FallbackActions is substituted when the model produced no guidance actions.
func FallbackActions() []string {
	return []string{"Review your profile strengths", "Research the recommended roles", "Prepare a learning plan"}
}

// Report describes what the sanitizer had to substitute.
type Report struct {
	// Defaulted counts scalar fields that fell back to their default.
	Defaulted       int
	DroppedCards    int
	PlaceholderCard bool
	FallbackActions bool
}

// Sanitize normalizes any decoded JSON value into a valid CareerAnalysis.
// It never fails.
func Sanitize(v any) domain.CareerAnalysis {
	a, _ := SanitizeWithReport(v)
	return a
}

// SanitizeWithReport is Sanitize plus a summary of the substitutions made.
func SanitizeWithReport(v any) (domain.CareerAnalysis, Report) {
	s := &sanitizer{}
	root := asObject(v)

	tp := asObject(root["talentProfile"])
	profile := domain.TalentProfile{
		TopStrengths:  s.strings(tp["topStrengths"], true),
		WorkingNature: s.str(tp["workingNature"], DefaultWorkingNature),
	}

	cards := s.cards(root["careerCards"])

	rm := asObject(root["roadmap"])
	roadmap := domain.Roadmap{
		Beginner:     s.level(rm["beginner"], DefaultBeginnerFocus),
		Intermediate: s.level(rm["intermediate"], DefaultIntermediateFocus),
		Advanced:     s.level(rm["advanced"], DefaultAdvancedFocus),
	}

	// bestRole reads the sanitized cards, so it must run after s.cards.
	g := asObject(root["guidance"])
	bestRoleDefault := DefaultBestRole
	if cards[0].Title != "" {
		bestRoleDefault = cards[0].Title
	}
	guidance := domain.Guidance{
		BestRole: s.str(g["bestRole"], bestRoleDefault),
		Reason:   s.str(g["reason"], DefaultReason),
		Actions:  s.strings(g["actions"], true),
	}
	if len(guidance.Actions) == 0 {
		guidance.Actions = FallbackActions()
		s.report.FallbackActions = true
	}

	return domain.CareerAnalysis{
		TalentProfile: profile,
		CareerCards:   cards,
		Roadmap:       roadmap,
		Guidance:      guidance,
	}, s.report
}

type sanitizer struct {
	report Report
}

func (s *sanitizer) cards(v any) []domain.CareerCard {
	raw := asArray(v)
	n := len(raw)
	if n > MaxCareerCards {
		s.report.DroppedCards = n - MaxCareerCards
		n = MaxCareerCards
	}
	if n == 0 {
		s.report.PlaceholderCard = true
		return []domain.CareerCard{PlaceholderCard()}
	}
	out := make([]domain.CareerCard, 0, n)
	for _, rc := range raw[:n] {
		c := asObject(rc)
		out = append(out, domain.CareerCard{
			Title:    s.str(c["title"], DefaultCardTitle),
			Demand:   s.demand(c["demand"]),
			FitScore: s.fitScore(c["fitScore"]),
			Salary:   s.str(c["salary"], DefaultSalary),
			Growth:   s.str(c["growth"], DefaultGrowth),
			Reasons:  s.strings(c["reasons"], false),
			Gaps:     s.strings(c["gaps"], false),
		})
	}
	return out
}

func (s *sanitizer) level(v any, defaultFocus string) domain.RoadmapLevel {
	l := asObject(v)
	raw := asArray(l["activities"])
	acts := make([]domain.RoadmapActivity, 0, len(raw))
	for _, ra := range raw {
		a := asObject(ra)
		acts = append(acts, domain.RoadmapActivity{
			Task:      s.str(a["task"], DefaultTask),
			Resources: s.str(a["resources"], DefaultResources),
			Time:      s.str(a["time"], DefaultTime),
		})
	}
	return domain.RoadmapLevel{
		Focus:      s.str(l["focus"], defaultFocus),
		Activities: acts,
	}
}

// str coerces strings and numbers to a trimmed string; anything else, or a
// blank result, yields def.
func (s *sanitizer) str(v any, def string) string {
	out, ok := coerceString(v)
	if !ok || out == "" {
		if def != "" {
			s.report.Defaulted++
		}
		return def
	}
	return out
}

// strings always returns a non-nil slice. Items that cannot be coerced become
// "" unless dropBlank is set, in which case blanks are filtered out.
func (s *sanitizer) strings(v any, dropBlank bool) []string {
	raw := asArray(v)
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		str, _ := coerceString(item)
		if dropBlank && str == "" {
			continue
		}
		out = append(out, str)
	}
	return out
}

func (s *sanitizer) demand(v any) domain.Demand {
	if str, ok := v.(string); ok {
		switch d := domain.Demand(str); d {
		case domain.DemandHigh, domain.DemandMedium, domain.DemandEmerging:
			return d
		}
	}
	s.report.Defaulted++
	return domain.DemandMedium
}

// fitScore accepts any JSON number, rounded to the nearest integer, and does
// not clamp to 0-100.
func (s *sanitizer) fitScore(v any) int {
	f, ok := asNumber(v)
	if !ok {
		s.report.Defaulted++
		return DefaultFitScore
	}
	return roundToInt(f)
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asArray(v any) []any {
	a, _ := v.([]any)
	return a
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return float64(i), true
		}
		f, err := t.Float64()
		if err != nil && !math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case float64:
		return t, !math.IsNaN(t)
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}

// roundToInt saturates at the int range so absurd magnitudes stay numeric.
func roundToInt(f float64) int {
	r := math.Round(f)
	switch {
	case r >= float64(math.MaxInt):
		return math.MaxInt
	case r <= float64(math.MinInt):
		return math.MinInt
	default:
		return int(r)
	}
}
