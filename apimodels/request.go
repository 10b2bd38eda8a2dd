package apimodels

type CaseRequest struct {
	// CaseDescription is the natural language description of the legal case
	CaseDescription string `json:"case_description"`

	// UserID is an opaque caller identifier, reserved for multi-tenant use;
	// accepted but not interpreted
	UserID string `json:"user_id,omitempty"`
}
