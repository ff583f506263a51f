package domain

// CreateRequest is the transport shape for list creation
type CreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// MembershipRequest carries lead ids to add to or remove from a list
type MembershipRequest struct {
	LeadIDs []string `json:"leadIds" validate:"required,min=1"`
}
