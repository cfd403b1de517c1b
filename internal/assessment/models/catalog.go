package models

// Category names of the fixed questionnaire.
const (
	CategoryTransparency   = "transparency"
	CategoryPrivacy        = "privacy"
	CategoryInclusivity    = "inclusivity"
	CategoryAccountability = "accountability"
	CategorySustainability = "sustainability"
	CategoryCompliance     = "complianceAndGovernance"
)

// Question is one Likert item of the questionnaire.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CatalogCategory groups the questions of one ethical dimension.
type CatalogCategory struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Catalog is the fixed questionnaire in presentation order.
var Catalog = []CatalogCategory{
	{
		Name:  CategoryTransparency,
		Title: "Transparency & Communication",
		Questions: []Question{
			{ID: "transparency-1", Text: "Does the system provide clear explanations of how it makes decisions?"},
			{ID: "transparency-2", Text: "Are users informed about what data is collected and how it's used?"},
			{ID: "transparency-3", Text: "Is there clear communication about the AI system's capabilities and limitations?"},
			{ID: "transparency-4", Text: "Are algorithmic processes documented and explainable to users?"},
		},
	},
	{
		Name:  CategoryPrivacy,
		Title: "Privacy & Data Governance",
		Questions: []Question{
			{ID: "privacy-1", Text: "Is data collection limited to stated purposes only?"},
			{ID: "privacy-2", Text: "Are there robust measures to protect user data?"},
			{ID: "privacy-3", Text: "Can users access, modify, or delete their personal data?"},
			{ID: "privacy-4", Text: "Is data handling compliant with privacy regulations?"},
		},
	},
	{
		Name:  CategoryInclusivity,
		Title: "Inclusivity & Fairness",
		Questions: []Question{
			{ID: "inclusivity-1", Text: "Is the AI system tested across diverse user groups?"},
			{ID: "inclusivity-2", Text: "Are accessibility features built into the system?"},
			{ID: "inclusivity-3", Text: "Is there regular testing for bias against underrepresented groups?"},
			{ID: "inclusivity-4", Text: "Does the system accommodate different languages and cultural contexts?"},
		},
	},
	{
		Name:  CategoryAccountability,
		Title: "Accountability & Responsibility",
		Questions: []Question{
			{ID: "accountability-1", Text: "Are there clear lines of responsibility for AI decisions?"},
			{ID: "accountability-2", Text: "Is there a comprehensive audit trail for AI actions?"},
			{ID: "accountability-3", Text: "Are there mechanisms for users to challenge AI decisions?"},
			{ID: "accountability-4", Text: "Is there a clear process for handling AI-related incidents?"},
		},
	},
	{
		Name:  CategorySustainability,
		Title: "Sustainability & Impact",
		Questions: []Question{
			{ID: "sustainability-1", Text: "Is the economic impact of the AI system assessed?"},
			{ID: "sustainability-2", Text: "Are social consequences evaluated and monitored?"},
			{ID: "sustainability-3", Text: "Is energy efficiency considered in system design?"},
			{ID: "sustainability-4", Text: "Are there measures to reduce environmental impact?"},
		},
	},
	{
		Name:  CategoryCompliance,
		Title: "Compliance & Governance",
		Questions: []Question{
			{ID: "compliance-1", Text: "Does the system comply with relevant AI regulations?"},
			{ID: "compliance-2", Text: "Is there a documented ethical governance framework?"},
			{ID: "compliance-3", Text: "Are compliance records maintained and updated?"},
			{ID: "compliance-4", Text: "Is there regular review of compliance requirements?"},
		},
	},
}

// CategoryNames returns the catalog category names in presentation order.
func CategoryNames() []string {
	names := make([]string, len(Catalog))
	for i, c := range Catalog {
		names[i] = c.Name
	}
	return names
}

// LookupCategory returns the catalog entry for name.
func LookupCategory(name string) (CatalogCategory, bool) {
	for _, c := range Catalog {
		if c.Name == name {
			return c, true
		}
	}
	return CatalogCategory{}, false
}

// CategoryIndex returns the presentation position of name, or len(Catalog)
// for names outside the catalog so they sort last.
func CategoryIndex(name string) int {
	for i, c := range Catalog {
		if c.Name == name {
			return i
		}
	}
	return len(Catalog)
}

// QuestionText returns the text of a catalog question. Unknown ids fall back
// to "Question <id>".
func QuestionText(questionID string) string {
	for _, c := range Catalog {
		for _, q := range c.Questions {
			if q.ID == questionID {
				return q.Text
			}
		}
	}
	return "Question " + questionID
}
