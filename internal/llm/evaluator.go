package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const evaluatorSystemPrompt = `You are a minimalist weekly planning coach. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const userPromptTemplate = `Read this 7-day outlook of pending tasks and output EXACTLY this format (no markdown, no code blocks):

LOAD: [ 2-4 word summary of the week's shape ]

📈 PEAK DAY: Which day carries the most pending work and why it matters.
🌱 AREAS: One sentence on ongoing responsibilities (AREAS) across the week.
➜  One specific rebalancing move for the busiest day.

Data Format:
- PROJ = pending tasks linked to a project
- AREAS = pending ongoing-responsibility tasks without a project

Active projects (%d): %s

Next 7 days:
%s
Rules:
- Use the exact emoji prefixes shown (📈, 🌱, ➜)
- Keep each line under 70 characters
- Refer to days by weekday name
- If a line has nothing to say, omit it
- Output plain text only, no markdown formatting`

// PulseDay is the LLM-facing view of one pulse day.
type PulseDay struct {
	Date     string
	Weekday  string
	Projects int
	Areas    int
	Pending  []string
}

// Evaluator asks an LLM for a short reading of the weekly pulse.
type Evaluator struct {
	client Client
}

// NewEvaluator creates a new Evaluator with the given LLM client.
func NewEvaluator(client Client) *Evaluator {
	return &Evaluator{client: client}
}

// EvaluatePulse sends the upcoming days to the LLM and returns its reading.
func (e *Evaluator) EvaluatePulse(ctx context.Context, days []PulseDay, activeProjects []string) (string, error) {
	if e.client == nil {
		return "", errors.New("no LLM client configured")
	}
	prompt := BuildPulsePrompt(days, activeProjects)
	return e.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: evaluatorSystemPrompt},
		{Role: RoleUser, Content: prompt},
	})
}

// BuildPulsePrompt renders the user prompt for a pulse reading.
func BuildPulsePrompt(days []PulseDay, activeProjects []string) string {
	projects := "none"
	if len(activeProjects) > 0 {
		projects = strings.Join(activeProjects, ", ")
	}
	return fmt.Sprintf(userPromptTemplate, len(activeProjects), projects, formatPulseDays(days))
}

func formatPulseDays(days []PulseDay) string {
	var sb strings.Builder
	for _, d := range days {
		fmt.Fprintf(&sb, "%s %s  PROJ %d  AREAS %d\n", d.Weekday, d.Date, d.Projects, d.Areas)
		for _, title := range d.Pending {
			fmt.Fprintf(&sb, "  - %s\n", title)
		}
	}
	return sb.String()
}
