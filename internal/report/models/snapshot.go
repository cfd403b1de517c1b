package models

import (
	"slices"
	"strings"

	assessment "ethicsaudit/internal/assessment/models"
)

// ResponseSnapshot is one answered question with its text.
type ResponseSnapshot struct {
	QuestionID string
	Question   string
	Value      int
}

// CategorySnapshot is one scored category and its answers ordered by
// question id.
type CategorySnapshot struct {
	Name      string
	Title     string
	Score     int
	Responses []ResponseSnapshot
}

// Snapshot is the audit state a report is generated from.
type Snapshot struct {
	Audit      assessment.Audit
	Categories []CategorySnapshot
	Interviews []assessment.Interview
	RACI       []assessment.RACIEntry
}

// NewSnapshot groups responses under their stored category. Only categories
// with a stored score row appear, in catalog order.
func NewSnapshot(
	audit assessment.Audit,
	categories []assessment.Category,
	responses []assessment.Response,
	interviews []assessment.Interview,
	raci []assessment.RACIEntry,
) Snapshot {
	byCategory := make(map[string][]ResponseSnapshot)
	for _, r := range responses {
		byCategory[r.Category] = append(byCategory[r.Category], ResponseSnapshot{
			QuestionID: r.QuestionID,
			Question:   assessment.QuestionText(r.QuestionID),
			Value:      r.Value,
		})
	}

	snap := Snapshot{
		Audit:      audit,
		Categories: make([]CategorySnapshot, 0, len(categories)),
		Interviews: slices.Clone(interviews),
		RACI:       slices.Clone(raci),
	}
	for _, c := range categories {
		title := c.Name
		if cat, ok := assessment.LookupCategory(c.Name); ok {
			title = cat.Title
		}
		rs := byCategory[c.Name]
		slices.SortFunc(rs, func(a, b ResponseSnapshot) int {
			return strings.Compare(a.QuestionID, b.QuestionID)
		})
		snap.Categories = append(snap.Categories, CategorySnapshot{
			Name:      c.Name,
			Title:     title,
			Score:     c.Score,
			Responses: rs,
		})
	}
	slices.SortStableFunc(snap.Categories, func(a, b CategorySnapshot) int {
		if d := assessment.CategoryIndex(a.Name) - assessment.CategoryIndex(b.Name); d != 0 {
			return d
		}
		return strings.Compare(a.Name, b.Name)
	})
	return snap
}
