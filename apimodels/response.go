package apimodels

import "time"

const (
	LinkStatusSuccess = "success"
	LinkStatusError   = "error"
)

// ThinkingStep is one synthesized, human-readable entry describing a phase
// of the agent's reasoning. Steps are immutable once appended; step numbers
// are 1-based and contiguous.
type ThinkingStep struct {
	StepNumber  int       `json:"step_number"`
	StepName    string    `json:"step_name"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	Timestamp   time.Time `json:"timestamp"`
}

// LinkSummary is the fetched-and-condensed content summary (or failure
// record) for one cited URL.
type LinkSummary struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

type AnalysisResponse struct {
	// CaseName is derived from the analysis timestamp, not user input
	CaseName     string    `json:"case_name"`
	AnalysisDate time.Time `json:"analysis_date"`

	ThinkingSteps []ThinkingStep `json:"thinking_steps"`

	// The final legal analysis text
	FinalAnswer string `json:"final_answer"`

	// Sectioned-document rendering of FinalAnswer; populated only by the
	// formatted endpoint variant
	FormattedAnalysis string `json:"formatted_analysis,omitempty"`

	// All cited URLs, deduplicated in first-seen order
	References []string `json:"references"`

	// One entry per reference, positionally aligned with References
	LinkSummaries []LinkSummary `json:"link_summaries"`

	// URLs whose summaries fetched successfully
	SuccessfulReferences []string `json:"successful_references"`

	TotalSteps int `json:"total_steps"`

	// Wall-clock processing duration in seconds
	ProcessingTime float64 `json:"processing_time"`
}

// StreamEvent is one server-sent event on the streaming analysis endpoint.
type StreamEvent struct {
	Type        string    `json:"type"` // start | step_start | step_complete | complete | error
	Message     string    `json:"message,omitempty"`
	StepNumber  int       `json:"step_number,omitempty"`
	StepName    string    `json:"step_name,omitempty"`
	Description string    `json:"description,omitempty"`
	Details     string    `json:"details,omitempty"`
	Timestamp   time.Time `json:"timestamp"`

	// Result carries the full response on the terminal "complete" event
	Result *AnalysisResponse `json:"result,omitempty"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
