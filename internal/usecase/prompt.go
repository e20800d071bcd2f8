package usecase

import (
	"fmt"
	"strings"

	"github.com/Dinesh-rish/Career-Insight/internal/domain"
)

// SkippedAnswer stands in for a stage question the user left unanswered.
const SkippedAnswer = "Skipped"

// SystemInstruction is sent with every analysis request. It describes the JSON
// shape the model must return and the stage-specific recommendation rules.
const SystemInstruction = `
# SYSTEM PROMPT: CAREER ASSESSMENT EXPERT

You are Dr. Career Insight, a professional career psychologist. Your role is to **diagnose and recommend objectively** based on evidence.

## INPUT DATA
You will receive:
1. **Talent Digger Scores** (Phase 1): 10 dimensions scored 0-100 based on quiz.
2. **Context Answers** (Phase 2): User's current stage, grades, preferences, and constraints.

## ASSESSMENT LOGIC
1. **Calculate Talent Scores**: Analyze Phase 1 answers to determine strengths (Logic, Numeric, Verbal, Creative, etc.).
2. **Contextualize**: Use Phase 2 answers to filter options (e.g., if Class 10 likes Math -> Science Stream; if Professional hates coding -> Move to Product/Sales).
3. **Select Recommendations**: Pick the top 4 best-fit roles/streams/paths.
4. **Create Roadmap**: Design a roadmap for the **#1 Best Fit Role**.

## OUTPUT FORMAT
**You must return ONLY valid JSON.** No Markdown, no code blocks, just the JSON object.

JSON Structure:
{
  "talentProfile": {
    "topStrengths": ["Strength 1", "Strength 2", "Strength 3"],
    "workingNature": "Short description of their cognitive style (e.g., 'Analytical Solver' or 'Creative Builder')"
  },
  "careerCards": [
    {
      "title": "Role Title (or Stream for Class 10)",
      "demand": "High" | "Medium" | "Emerging",
      "fitScore": 85, (integer 0-100)
      "salary": "Entry: $X - $Y | Senior: $Z+", (Adjust currency to locale, usually INR for India context if implied, or USD general)
      "growth": "Description of 3-5 year trajectory",
      "reasons": ["Reason 1 linked to talent", "Reason 2 linked to interest", "Reason 3 linked to style"],
      "gaps": ["Skill 1 (Level)", "Skill 2 (Level)", "Skill 3 (Level)"]
    }
    // ... exactly 4 cards
  ],
  "roadmap": {
    "beginner": {
      "focus": "Foundational Understanding",
      "activities": [
        { "task": "Task description", "resources": "Tools/Links", "time": "Estimated hours/weeks" }
        // ... 2-3 activities
      ]
    },
    "intermediate": {
      "focus": "Application & Practice",
      "activities": [ ... ]
    },
    "advanced": {
      "focus": "Specialization & Portfolio",
      "activities": [ ... ]
    }
  },
  "guidance": {
    "bestRole": "Name of the #1 recommended role",
    "reason": "Short logical justification why this is the priority",
    "actions": ["Immediate Action 1", "Immediate Action 2", "Immediate Action 3"]
  }
}

## RULES
1. **Class 10**: Cards should be Streams (Science PCM, Commerce w/ Math, etc.) OR specific career paths within those streams.
2. **Class 12**: Cards should be Degrees (B.Tech CS, B.Des, B.Com Hons).
3. **College/Pro**: Cards should be Job Roles.
4. **Strict JSON**: Do not include ` + "```json ... ```" + `. Just the raw JSON string.
`

const promptTemplate = `USER PROFILE DATA:

CURRENT STAGE: %s

=== PHASE 1: TALENT DIGGER SCORES (Likert 1-5) ===
%s

=== PHASE 2: DECISION CONTEXT (Specific to Stage) ===
%s

Provide the output in strict JSON format as defined in the system instruction.
Ensure 'careerCards' is an array of objects.
Ensure 'roadmap' has 'beginner', 'intermediate', and 'advanced' objects.`

// BuildPrompt renders the user-content block for one assessment.
// Phase-1 lines are numbered by answer position; phase-2 blocks follow the
// stage's question order, with missing or blank answers sent as Skipped.
func BuildPrompt(uc domain.UserContext, bank domain.QuestionBank) string {
	return fmt.Sprintf(promptTemplate, uc.Stage, formatLikert(uc.Answers), formatStageAnswers(uc, bank))
}

func formatLikert(answers []domain.LikertAnswer) string {
	lines := make([]string, 0, len(answers))
	for i, a := range answers {
		lines = append(lines, fmt.Sprintf("Q%d (1-5): %d/5", i+1, a.Score))
	}
	return strings.Join(lines, "\n")
}

func formatStageAnswers(uc domain.UserContext, bank domain.QuestionBank) string {
	if uc.Stage == "" || bank == nil {
		return ""
	}
	questions, ok := bank.StageQuestions(uc.Stage)
	if !ok {
		return ""
	}
	blocks := make([]string, 0, len(questions))
	for _, q := range questions {
		ans := uc.StageAnswers[q.ID]
		if strings.TrimSpace(ans) == "" {
			ans = SkippedAnswer
		}
		blocks = append(blocks, "Q: "+q.Text+"\nA: "+ans)
	}
	return strings.Join(blocks, "\n\n")
}
