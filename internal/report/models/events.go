package models

// Phase is a state of the report generation state machine.
type Phase string

const (
	PhaseInitializing Phase = "initializing"
	PhaseFetching     Phase = "fetching"
	PhaseProcessing   Phase = "processing"
	PhaseGenerating   Phase = "generating"
	PhaseSaving       Phase = "saving"
)

// StatusComplete marks the terminal success event.
const StatusComplete = "complete"

// EventKind classifies a ProgressEvent by the fields it carries.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindStatus
	KindContent
	KindComplete
	KindError
)

func (k EventKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindContent:
		return "content"
	case KindComplete:
		return "complete"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ProgressEvent is the payload of one stream frame. Exactly one shape is
// populated: a phase update, a content fragment, completion or an error.
type ProgressEvent struct {
	Phase    Phase  `json:"phase,omitempty"`
	Message  string `json:"message,omitempty"`
	Progress int    `json:"progress,omitempty"`
	Text     string `json:"text,omitempty"`
	Status   string `json:"status,omitempty"`
	ReportID string `json:"reportId,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
	Details  string `json:"details,omitempty"`
}

// Kind reports which shape e has. Error wins over everything else.
func (e ProgressEvent) Kind() EventKind {
	switch {
	case e.Error != "":
		return KindError
	case e.Status == StatusComplete:
		return KindComplete
	case e.Text != "":
		return KindContent
	case e.Phase != "":
		return KindStatus
	default:
		return KindUnknown
	}
}

func PhaseEvent(phase Phase, message string, progress int) ProgressEvent {
	return ProgressEvent{Phase: phase, Message: message, Progress: progress}
}

func ContentEvent(text string, progress int) ProgressEvent {
	return ProgressEvent{
		Phase:    PhaseGenerating,
		Text:     text,
		Progress: progress,
		Message:  "Generating report content...",
	}
}

func CompleteEvent(reportID string) ProgressEvent {
	return ProgressEvent{
		Status:   StatusComplete,
		ReportID: reportID,
		Message:  "Report generation completed successfully",
		Progress: 100,
	}
}

// ErrorEvent carries a human message, a machine code and optional details.
func ErrorEvent(code, message, details string) ProgressEvent {
	return ProgressEvent{Error: message, Code: code, Details: details}
}
