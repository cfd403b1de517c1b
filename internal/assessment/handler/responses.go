package handler

import (
	"ethicsaudit/internal/assessment/models"
	"ethicsaudit/internal/assessment/scoring"
)

// CategoryResponse is one catalog category with its current score.
type CategoryResponse struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
	Band      string `json:"band"`
	BandLabel string `json:"bandLabel"`
}

// AuditStateResponse is the body returned after every audit write.
type AuditStateResponse struct {
	Audit       models.Audit       `json:"audit"`
	OverallBand string             `json:"overallBand"`
	Categories  []CategoryResponse `json:"categories"`
	Responses   []models.Response  `json:"responses"`
}

// FromState renders every catalog category, scored or not, in catalog order.
func FromState(state *models.AuditState) AuditStateResponse {
	resp := AuditStateResponse{
		Audit:       state.Audit,
		OverallBand: scoring.BandFor(state.Audit.OverallScore).String(),
		Categories:  make([]CategoryResponse, 0, len(models.Catalog)),
		Responses:   state.Responses,
	}
	if resp.Responses == nil {
		resp.Responses = []models.Response{}
	}
	for _, c := range models.Catalog {
		score := state.CategoryScore(c.Name)
		band := scoring.BandFor(score)
		resp.Categories = append(resp.Categories, CategoryResponse{
			Name:      c.Name,
			Title:     c.Title,
			Score:     score,
			Band:      band.String(),
			BandLabel: band.Label(),
		})
	}
	return resp
}

// CatalogQuestion is one question of the fixed questionnaire.
type CatalogQuestion struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CatalogCategory is one category of the fixed questionnaire.
type CatalogCategory struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Questions []CatalogQuestion `json:"questions"`
}

// CatalogResponse is the body of GET /api/catalog.
type CatalogResponse struct {
	Categories []CatalogCategory `json:"categories"`
	Scale      []ScaleLabel      `json:"scale"`
}

// ScaleLabel names one Likert value.
type ScaleLabel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

func catalogResponse() CatalogResponse {
	resp := CatalogResponse{}
	for _, c := range models.Catalog {
		cat := CatalogCategory{Name: c.Name, Title: c.Title}
		for _, q := range c.Questions {
			cat.Questions = append(cat.Questions, CatalogQuestion{ID: q.ID, Text: q.Text})
		}
		resp.Categories = append(resp.Categories, cat)
	}
	for v := scoring.MinValue; v <= scoring.MaxValue; v++ {
		resp.Scale = append(resp.Scale, ScaleLabel{Value: v, Label: scoring.LikertLabel(v)})
	}
	return resp
}
