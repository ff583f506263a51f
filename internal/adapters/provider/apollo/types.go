package apollo

// wire shapes for the Apollo search API

type searchRequest struct {
	Query        *string  `json:"query,omitempty"`
	Title        *string  `json:"title,omitempty"`
	Department   *string  `json:"department,omitempty"`
	Seniority    *string  `json:"seniority,omitempty"`
	Company      *string  `json:"company,omitempty"`
	Domain       *string  `json:"domain,omitempty"`
	Location     *string  `json:"location,omitempty"`
	TechIncludes []string `json:"tech_includes,omitempty"`
	Page         int      `json:"page"`
	PageSize     int      `json:"page_size"`
}

type peopleResponse struct {
	Total   int64          `json:"total"`
	Results []personRecord `json:"results"`
}

type companiesResponse struct {
	Total     int64           `json:"total"`
	Companies []companyRecord `json:"companies"`
}

type personRecord struct {
	ID          string        `json:"id"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Title       string        `json:"title"`
	Department  string        `json:"department"`
	Seniority   string        `json:"seniority"`
	LinkedinURL string        `json:"linkedin_url"`
	Location    string        `json:"location"`
	Skills      []string      `json:"skills"`
	Emails      []emailEntry  `json:"emails"`
	Phones      []phoneEntry  `json:"phones"`
	Socials     socialEntry   `json:"socials"`
	Company     companyRecord `json:"company"`
}

type emailEntry struct {
	Type     string `json:"type"`
	Address  string `json:"address"`
	Verified bool   `json:"verified"`
}

type phoneEntry struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type socialEntry struct {
	Twitter string `json:"twitter"`
	Github  string `json:"github"`
}

type companyRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Industry    string   `json:"industry"`
	Size        string   `json:"size"`
	RevenueUSD  *float64 `json:"revenue_usd"`
	HQLocation  string   `json:"hq_location"`
	TechStack   []string `json:"tech_stack"`
	LinkedinURL string   `json:"linkedin_url"`
}
