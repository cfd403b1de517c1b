package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditStatus is the lifecycle status of an audit.
type AuditStatus string

const (
	AuditStatusDraft      AuditStatus = "draft"
	AuditStatusInProgress AuditStatus = "in_progress"
	AuditStatusCompleted  AuditStatus = "completed"
	AuditStatusArchived   AuditStatus = "archived"
)

// IsValid reports whether s is a known status.
func (s AuditStatus) IsValid() bool {
	switch s {
	case AuditStatusDraft, AuditStatusInProgress, AuditStatusCompleted, AuditStatusArchived:
		return true
	}
	return false
}

// Audit is the header record of one ethics audit. OverallScore is derived and
// only written by the response path; 0 means either unscored or scored zero.
type Audit struct {
	ID                   uuid.UUID   `json:"id"`
	UserID               uuid.UUID   `json:"userId"`
	Name                 string      `json:"name"`
	Organization         string      `json:"organization"`
	Description          string      `json:"description"`
	Status               AuditStatus `json:"status"`
	OverallScore         int         `json:"overallScore"`
	EthicalFramework     string      `json:"ethicalFramework"`
	RisksAndChallenges   string      `json:"risksAndChallenges"`
	MitigationStrategies string      `json:"mitigationStrategies"`
	ContinuousMonitoring string      `json:"continuousMonitoring"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// IsOwnedBy reports whether userID created the audit.
func (a *Audit) IsOwnedBy(userID uuid.UUID) bool {
	return a != nil && userID != uuid.Nil && a.UserID == userID
}

// Category is the derived score row of one category within an audit.
type Category struct {
	AuditID   uuid.UUID `json:"auditId"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Response is one Likert answer. (AuditID, QuestionID) is unique and the
// category of a question never changes once recorded.
type Response struct {
	AuditID    uuid.UUID `json:"auditId"`
	QuestionID string    `json:"questionId"`
	Category   string    `json:"category"`
	Value      int       `json:"value"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Interview is a stakeholder interview log entry. A nil InterviewDate means
// the person has not been interviewed yet.
type Interview struct {
	ID            uuid.UUID  `json:"id"`
	AuditID       uuid.UUID  `json:"auditId"`
	StaffName     string     `json:"staffName"`
	Position      string     `json:"position"`
	InterviewDate *time.Time `json:"interviewDate,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Interviewed reports whether the interview took place.
func (i Interview) Interviewed() bool {
	return i.InterviewDate != nil
}

// AssignmentType is a RACI letter. The empty value means unassigned.
type AssignmentType string

const (
	AssignmentResponsible AssignmentType = "R"
	AssignmentAccountable AssignmentType = "A"
	AssignmentConsulted   AssignmentType = "C"
	AssignmentInformed    AssignmentType = "I"
	AssignmentUnset       AssignmentType = ""
)

// ParseAssignmentType normalizes a RACI letter. ok is false for unknown values.
func ParseAssignmentType(s string) (AssignmentType, bool) {
	t := AssignmentType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case AssignmentResponsible, AssignmentAccountable, AssignmentConsulted, AssignmentInformed, AssignmentUnset:
		return t, true
	}
	return AssignmentUnset, false
}

// Label expands the letter.
func (t AssignmentType) Label() string {
	switch t {
	case AssignmentResponsible:
		return "Responsible"
	case AssignmentAccountable:
		return "Accountable"
	case AssignmentConsulted:
		return "Consulted"
	case AssignmentInformed:
		return "Informed"
	default:
		return "Unassigned"
	}
}

// RACIEntry assigns one role to one responsibility. (AuditID, Role,
// Responsibility) is unique.
type RACIEntry struct {
	ID             uuid.UUID      `json:"id"`
	AuditID        uuid.UUID      `json:"auditId"`
	Role           string         `json:"role"`
	Responsibility string         `json:"responsibility"`
	AssignmentType AssignmentType `json:"assignmentType"`
}

// AuditFields is the set of directly editable audit fields persisted by the
// debounced save path.
type AuditFields struct {
	Name                 string      `json:"name"`
	Organization         string      `json:"organization"`
	Description          string      `json:"description"`
	Status               AuditStatus `json:"status"`
	EthicalFramework     string      `json:"ethicalFramework"`
	RisksAndChallenges   string      `json:"risksAndChallenges"`
	MitigationStrategies string      `json:"mitigationStrategies"`
	ContinuousMonitoring string      `json:"continuousMonitoring"`
}

// Apply copies the editable fields onto a.
func (f AuditFields) Apply(a *Audit) {
	a.Name = f.Name
	a.Organization = f.Organization
	a.Description = f.Description
	a.Status = f.Status
	a.EthicalFramework = f.EthicalFramework
	a.RisksAndChallenges = f.RisksAndChallenges
	a.MitigationStrategies = f.MitigationStrategies
	a.ContinuousMonitoring = f.ContinuousMonitoring
}

// AuditState is the authoritative client-visible state of one audit after a
// write: categories in catalog order and responses ordered by question id.
type AuditState struct {
	Audit      Audit      `json:"audit"`
	Categories []Category `json:"categories"`
	Responses  []Response `json:"responses"`
}

// CategoryScore returns the stored score for name, or 0.
func (s *AuditState) CategoryScore(name string) int {
	for _, c := range s.Categories {
		if c.Name == name {
			return c.Score
		}
	}
	return 0
}

// ResponseValue returns the stored value for questionID, or 0.
func (s *AuditState) ResponseValue(questionID string) int {
	for _, r := range s.Responses {
		if r.QuestionID == questionID {
			return r.Value
		}
	}
	return 0
}
