// Package prompt renders an audit snapshot into the messages sent to the
// generative backend. Output depends only on the input.
package prompt

import (
	"fmt"
	"strings"

	"ethicsaudit/internal/assessment/scoring"
	"ethicsaudit/internal/report/models"
)

const (
	notProvided = "Not provided"
	noNotes     = "No notes recorded"
	dateLayout  = "January 2, 2006"
)

// Build renders snap into a system and user prompt.
func Build(snap models.Snapshot, title, description, customInstructions string) models.Prompt {
	var b strings.Builder
	audit := snap.Audit

	fmt.Fprintf(&b, "Please generate a comprehensive AI ethics audit report for %s with the title: %q\n\n", audit.Organization, title)
	fmt.Fprintf(&b, "Report Description: %s\n\n", orDefault(description, notProvided))
	if s := strings.TrimSpace(customInstructions); s != "" {
		fmt.Fprintf(&b, "Additional Instructions: %s\n\n", s)
	}

	b.WriteString("Organization Overview:\n")
	fmt.Fprintf(&b, "- Overall Ethics Score: %d%%\n\n", audit.OverallScore)
	b.WriteString("Overall Maturity Assessment:\n")
	b.WriteString(scoring.BandFor(audit.OverallScore).Description())
	b.WriteString("\n\nThis score represents the organization's overall AI ethics maturity level across all assessed categories.\n")
	b.WriteString("Key areas contributing to this score include transparency, privacy, inclusivity, accountability, sustainability, and compliance.\n\n")

	b.WriteString("## Governance and Monitoring Framework\n")
	fmt.Fprintf(&b, "- Ethical Framework: %s\n", orDefault(audit.EthicalFramework, notProvided))
	fmt.Fprintf(&b, "- Risks and Challenges: %s\n", orDefault(audit.RisksAndChallenges, notProvided))
	fmt.Fprintf(&b, "- Mitigation Strategies: %s\n", orDefault(audit.MitigationStrategies, notProvided))
	fmt.Fprintf(&b, "- Continuous Monitoring Approach: %s\n\n", orDefault(audit.ContinuousMonitoring, notProvided))

	b.WriteString("Assessment Results:\n")
	if len(snap.Categories) == 0 {
		b.WriteString("No categories have been assessed yet.\n")
	}
	for _, c := range snap.Categories {
		fmt.Fprintf(&b, "\n### %s (Score: %d%%)\n", c.Title, c.Score)
		b.WriteString(scoring.BandFor(c.Score).Description())
		b.WriteString("\n\nIndividual Question Responses:\n")
		for _, r := range c.Responses {
			fmt.Fprintf(&b, "- %s\n  Score: %d/5 (%s)\n", r.Question, r.Value, scoring.LikertLabel(r.Value))
		}
	}

	if len(snap.Interviews) > 0 {
		b.WriteString("\n## Staff Interviews Summary\n")
		for _, iv := range snap.Interviews {
			fmt.Fprintf(&b, "- %s (%s)\n", iv.StaffName, orDefault(iv.Position, notProvided))
			if iv.Interviewed() {
				fmt.Fprintf(&b, "  Status: Interviewed on %s\n", iv.InterviewDate.UTC().Format(dateLayout))
			} else {
				b.WriteString("  Status: Not interviewed\n")
			}
			fmt.Fprintf(&b, "  Key Insights: %s\n", orDefault(iv.Notes, noNotes))
		}
	}

	if len(snap.RACI) > 0 {
		b.WriteString("\n## RACI Matrix Overview\n")
		for _, e := range snap.RACI {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", e.Role, e.Responsibility, e.AssignmentType.Label())
		}
	}

	b.WriteString("\n")
	b.WriteString(instructions)
	writeLegend(&b)

	return models.Prompt{System: SystemPrompt, User: b.String()}
}

const instructions = `Please analyze this data and generate a detailed report following the structure outlined in your system prompt. Focus on:
1. Integrating insights from all assessment components
2. Highlighting patterns across different data sources
3. Providing actionable recommendations based on the complete assessment
4. Identifying key themes from staff interviews
5. Clarifying roles and responsibilities from the RACI matrix
6. Evaluating the effectiveness of current governance measures
`

func writeLegend(b *strings.Builder) {
	b.WriteString("\nWhen analyzing scores:\n")
	b.WriteString("- Individual question scores are on a scale of 1-5, where:\n")
	for v := scoring.MinValue; v <= scoring.MaxValue; v++ {
		label, _, _ := strings.Cut(scoring.LikertLabel(v), " - ")
		fmt.Fprintf(b, "  %d = %s\n", v, label)
	}
	b.WriteString("\n- Category scores are percentages (0-100%) indicating overall maturity in that area:\n")
	for _, band := range scoring.Bands {
		fmt.Fprintf(b, "  %d-%d%% = %s\n", band.Min, band.Max, band.Band.Label())
	}
	b.WriteString("\nPlease provide specific recommendations for improvement based on these scoring levels.")
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}
