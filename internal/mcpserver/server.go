// Package mcpserver exposes the question bank and career analysis as MCP
// tools, so assistants can run an assessment over stdio.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every tool registered.
func New(bank Questions, analyzer Analyzer) *server.MCPServer {
	s := server.NewMCPServer(
		"career-insight",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	listStages := NewListStagesTool(bank)
	s.AddTool(listStages.Definition(), listStages.Handle)

	getQuestions := NewGetQuestionsTool(bank)
	s.AddTool(getQuestions.Definition(), getQuestions.Handle)

	analyze := NewAnalyzeCareerTool(bank, analyzer)
	s.AddTool(analyze.Definition(), analyze.Handle)

	return s
}

const instructions = `Career Insight runs a two-phase career assessment.
1. Call get_questions with no stage and ask the user the 10 statements, scored 1-5.
2. Call list_stages, let the user pick one, then get_questions for that stage.
3. Call analyze_career with the stage, the scores in order, and the stage answers.`
