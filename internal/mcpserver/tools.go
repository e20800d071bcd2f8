package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
	"github.com/Dinesh-rish/Career-Insight/pkg/textx"
)

// Questions is the read side of the question bank used by the tools.
type Questions interface {
	domain.QuestionBank
	HasStageQuestion(stage domain.Stage, id string) bool
}

// Analyzer runs one career analysis.
type Analyzer interface {
	Analyze(ctx domain.Context, uc domain.UserContext) (domain.CareerAnalysis, error)
}

// ListStagesTool handles the list_stages MCP tool.
type ListStagesTool struct {
	bank Questions
}

// NewListStagesTool creates a ListStagesTool.
func NewListStagesTool(bank Questions) *ListStagesTool {
	return &ListStagesTool{bank: bank}
}

// Definition returns the MCP tool definition for list_stages.
func (t *ListStagesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_stages",
		mcp.WithDescription(
			"List the assessment stages. Each stage has its own set of context questions "+
				"that are asked after the 10 Likert questions.",
		),
	)
}

// Handle processes the list_stages tool call.
func (t *ListStagesTool) Handle(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	sb.WriteString("## Stages\n\n")
	for _, st := range domain.Stages {
		qs, _ := t.bank.StageQuestions(st)
		sb.WriteString(fmt.Sprintf("- **%s** (`%s`): %d questions\n", st, st.Slug(), len(qs)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// GetQuestionsTool handles the get_questions MCP tool.
type GetQuestionsTool struct {
	bank Questions
}

// NewGetQuestionsTool creates a GetQuestionsTool.
func NewGetQuestionsTool(bank Questions) *GetQuestionsTool {
	return &GetQuestionsTool{bank: bank}
}

// Definition returns the MCP tool definition for get_questions.
func (t *GetQuestionsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_questions",
		mcp.WithDescription(
			"Get assessment questions as JSON. Without a stage, returns the 10 Likert "+
				"statements scored 1-5. With a stage, returns that stage's context questions.",
		),
		mcp.WithString("stage",
			mcp.Description("Stage slug or name, e.g. 'class10' or 'Working Professional'"),
		),
	)
}

// Handle processes the get_questions tool call.
func (t *GetQuestionsTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := strings.TrimSpace(req.GetString("stage", ""))
	if raw == "" {
		return jsonResult(t.bank.Likert())
	}
	stage, ok := domain.ParseStage(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown stage %q, use list_stages", raw)), nil
	}
	qs, _ := t.bank.StageQuestions(stage)
	return jsonResult(qs)
}

// AnalyzeCareerTool handles the analyze_career MCP tool.
type AnalyzeCareerTool struct {
	bank     Questions
	analyzer Analyzer
}

// NewAnalyzeCareerTool creates an AnalyzeCareerTool.
func NewAnalyzeCareerTool(bank Questions, analyzer Analyzer) *AnalyzeCareerTool {
	return &AnalyzeCareerTool{bank: bank, analyzer: analyzer}
}

// Definition returns the MCP tool definition for analyze_career.
func (t *AnalyzeCareerTool) Definition() mcp.Tool {
	return mcp.NewTool("analyze_career",
		mcp.WithDescription(
			"Run a career analysis for a completed assessment. Makes one model call and "+
				"returns the talent profile, four career cards, a roadmap and guidance as JSON.",
		),
		mcp.WithString("stage",
			mcp.Required(),
			mcp.Description("Stage slug or name, see list_stages"),
		),
		mcp.WithString("likert_scores",
			mcp.Description("Comma-separated scores 1-5 in question order, e.g. '5,4,3,2,1,3,4,5,2,3'"),
		),
		mcp.WithString("stage_answers",
			mcp.Description(`JSON object of stage question id to answer, e.g. {"10_1":"Maths"}`),
		),
	)
}

// Handle processes the analyze_career tool call.
func (t *AnalyzeCareerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("stage", "")
	stage, ok := domain.ParseStage(raw)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown stage %q, use list_stages", raw)), nil
	}

	answers, err := parseLikert(req.GetString("likert_scores", ""), t.bank.Likert())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	stageAnswers, err := t.parseStageAnswers(stage, req.GetString("stage_answers", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := t.analyzer.Analyze(ctx, domain.UserContext{Stage: stage, Answers: answers, StageAnswers: stageAnswers})
	if err != nil {
		var aerr *domain.AnalysisError
		if errors.As(err, &aerr) {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %s", aerr.Kind, aerr.Message)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(analysis)
}

// parseLikert maps positional scores onto the bank's question ids.
func parseLikert(s string, questions []domain.LikertQuestion) ([]domain.LikertAnswer, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > len(questions) {
		return nil, fmt.Errorf("likert_scores: got %d scores, there are only %d questions", len(parts), len(questions))
	}
	out := make([]domain.LikertAnswer, 0, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < domain.MinLikertScore || n > domain.MaxLikertScore {
			return nil, fmt.Errorf("likert_scores: position %d must be an integer 1-5, got %q", i+1, strings.TrimSpace(p))
		}
		out = append(out, domain.LikertAnswer{QuestionID: questions[i].ID, Score: n})
	}
	return out, nil
}

func (t *AnalyzeCareerTool) parseStageAnswers(stage domain.Stage, s string) (map[string]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return map[string]string{}, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("stage_answers: must be a JSON object of strings: %v", err)
	}
	var unknown []string
	for k := range m {
		if !t.bank.HasStageQuestion(stage, k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("stage_answers: unknown question ids for %s: %s", stage, strings.Join(unknown, ", "))
	}
	return textx.StripControlMap(m), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
