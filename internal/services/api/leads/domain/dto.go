package domain

// SearchRequest is the transport shape for lead search
type SearchRequest struct {
	Keyword       string   `json:"keyword"`
	Title         string   `json:"title"`
	Department    string   `json:"department"`
	Seniority     string   `json:"seniority"`
	Company       string   `json:"company"`
	Domain        string   `json:"domain"`
	Location      string   `json:"location"`
	TechIncludes  []string `json:"techIncludes"`
	Page          int      `json:"page" validate:"omitempty,min=1"`
	PageSize      int      `json:"pageSize" validate:"omitempty,min=1,max=200"`
	ForceProvider bool     `json:"forceProvider"`
}

// Criteria converts the request into the canonical criteria shape
func (r SearchRequest) Criteria() SearchCriteria {
	return SearchCriteria{
		Keyword:       r.Keyword,
		Title:         r.Title,
		Department:    r.Department,
		Seniority:     r.Seniority,
		CompanyName:   r.Company,
		CompanyDomain: r.Domain,
		Location:      r.Location,
		TechStack:     r.TechIncludes,
		Page:          r.Page,
		PageSize:      r.PageSize,
		ForceProvider: r.ForceProvider,
	}.Clamped()
}

// UpsertLeadsRequest carries a batch of leads to reconcile
type UpsertLeadsRequest struct {
	Leads []Lead `json:"leads" validate:"required,min=1"`
}

// UpsertResponse reports the ids written by a reconcile batch
type UpsertResponse struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}
