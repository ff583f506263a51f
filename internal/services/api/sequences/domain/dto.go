package domain

// CreateRequest is the transport shape for sequence creation
type CreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	Steps       []Step `json:"steps"`
}

// StartRequest targets a sequence at a batch of leads
type StartRequest struct {
	SequenceID string   `json:"sequenceId" validate:"required"`
	LeadIDs    []string `json:"leadIds" validate:"required,min=1"`
}

// StartSummary reports what one start call fanned out
type StartSummary struct {
	SequenceID string `json:"sequenceId"`
	Channel    string `json:"channel"`
	StepOrder  int    `json:"stepOrder"`
	Started    int    `json:"started"`
}
