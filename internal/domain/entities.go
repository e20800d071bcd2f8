package domain

import (
	"context"
	"errors"
	"strings"
)

// Error taxonomy for the API surface (sentinels). Analysis failures use
// AnalysisError, see errors.go.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrInternal        = errors.New("internal error")
)

// Stage is the life/career stage that selects the phase-2 question set.
// The zero value means the stage has not been chosen yet.
type Stage string

const (
	StageClass10      Stage = "Class 10 Student"
	StageClass12      Stage = "Class 12 Student"
	StageCollege      Stage = "College Student"
	StageProfessional Stage = "Working Professional"
	StageHiddenTalent Stage = "Hidden Talent Discovery"
)

// Stages lists every stage in presentation order.
var Stages = []Stage{StageClass10, StageClass12, StageCollege, StageProfessional, StageHiddenTalent}

var stageSlugs = map[Stage]string{
	StageClass10:      "class10",
	StageClass12:      "class12",
	StageCollege:      "college",
	StageProfessional: "professional",
	StageHiddenTalent: "hidden_talent",
}

// Valid reports whether s is one of the fixed stages.
func (s Stage) Valid() bool {
	_, ok := stageSlugs[s]
	return ok
}

// Slug returns the URL-friendly identifier of the stage, or "" when unset.
func (s Stage) Slug() string { return stageSlugs[s] }

// ParseStage accepts either the display value or the slug (case-insensitive).
func ParseStage(v string) (Stage, bool) {
	v = strings.TrimSpace(v)
	for st, slug := range stageSlugs {
		if strings.EqualFold(v, string(st)) || strings.EqualFold(v, slug) {
			return st, true
		}
	}
	return "", false
}

// Likert bounds for phase-1 answers.
const (
	MinLikertScore = 1
	MaxLikertScore = 5
)

// LikertAnswer is one phase-1 answer.
type LikertAnswer struct {
	QuestionID int `json:"questionId"`
	Score      int `json:"score"`
}

// UserContext is the snapshot of a completed assessment.
// Invariants: StageAnswers is only meaningful once Stage is set, and its keys
// are a subset of that stage's question ids.
type UserContext struct {
	Stage        Stage             `json:"stage"`
	Answers      []LikertAnswer    `json:"answers"`
	StageAnswers map[string]string `json:"stageSpecificAnswers"`
}

// QuestionType enumerates phase-2 input kinds.
type QuestionType string

const (
	QuestionChoice      QuestionType = "choice"
	QuestionText        QuestionType = "text"
	QuestionMultiSelect QuestionType = "multi_select"
)

// LikertQuestion is a generic phase-1 statement scored 1-5.
type LikertQuestion struct {
	ID        int    `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Dimension string `json:"dimension" yaml:"dimension"`
}

// StageQuestion is a phase-2 descriptor.
type StageQuestion struct {
	ID       string       `json:"id" yaml:"id"`
	Text     string       `json:"text" yaml:"text"`
	Type     QuestionType `json:"type" yaml:"type"`
	Options  []string     `json:"options,omitempty" yaml:"options,omitempty"`
	Category string       `json:"category,omitempty" yaml:"category,omitempty"`
}

// Demand is the market demand bucket of a career card.
type Demand string

const (
	DemandHigh     Demand = "High"
	DemandMedium   Demand = "Medium"
	DemandEmerging Demand = "Emerging"
)

// CareerAnalysis is the always-valid report shape.
type CareerAnalysis struct {
	TalentProfile TalentProfile `json:"talentProfile"`
	CareerCards   []CareerCard  `json:"careerCards"`
	Roadmap       Roadmap       `json:"roadmap"`
	Guidance      Guidance      `json:"guidance"`
}

type TalentProfile struct {
	TopStrengths  []string `json:"topStrengths"`
	WorkingNature string   `json:"workingNature"`
}

// CareerCard is one recommended role, stream or degree.
// FitScore is nominally 0-100 but is not clamped.
type CareerCard struct {
	Title    string   `json:"title"`
	Demand   Demand   `json:"demand"`
	FitScore int      `json:"fitScore"`
	Salary   string   `json:"salary"`
	Growth   string   `json:"growth"`
	Reasons  []string `json:"reasons"`
	Gaps     []string `json:"gaps"`
}

type Roadmap struct {
	Beginner     RoadmapLevel `json:"beginner"`
	Intermediate RoadmapLevel `json:"intermediate"`
	Advanced     RoadmapLevel `json:"advanced"`
}

type RoadmapLevel struct {
	Focus      string            `json:"focus"`
	Activities []RoadmapActivity `json:"activities"`
}

type RoadmapActivity struct {
	Task      string `json:"task"`
	Resources string `json:"resources"`
	Time      string `json:"time"`
}

type Guidance struct {
	BestRole string   `json:"bestRole"`
	Reason   string   `json:"reason"`
	Actions  []string `json:"actions"`
}

//go:generate mockery --name=AIClient --with-expecter --filename=aiclient_mock.go

// AIClient (port) is the external model: one prompt in, raw text out.
type AIClient interface {
	// HasCredential reports whether the provider credential is configured.
	// It must not perform network activity.
	HasCredential() bool
	// GenerateJSON performs exactly one request and returns the raw text payload.
	GenerateJSON(ctx Context, systemPrompt, userPrompt string) (string, error)
	// Provider and Model identify the backend for logs and metrics.
	Provider() string
	Model() string
}

// QuestionBank (port) is the read-only question table.
type QuestionBank interface {
	Likert() []LikertQuestion
	StageQuestions(stage Stage) ([]StageQuestion, bool)
}

// Context is an alias to keep adapters decoupled from the concrete import.
type Context = context.Context
