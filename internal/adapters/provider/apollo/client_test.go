package apollo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prospector/internal/services/api/leads/domain"
)

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url, APIKey: "test-key"})
}

func TestSearchMapsPeople(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/people/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(peopleResponse{
			Total: 1,
			Results: []personRecord{{
				ID:        "ap-1",
				FirstName: "Ada",
				LastName:  "Lovelace",
				Title:     "VP Engineering",
				Emails: []emailEntry{
					{Type: "personal", Address: "ada@home.example"},
					{Type: "work", Address: "ada@acme.example", Verified: true},
				},
				Phones: []phoneEntry{
					{Type: "mobile", Number: "+1-555-0100"},
					{Type: "direct", Number: "+1-555-0101"},
				},
				Socials: socialEntry{Github: "https://github.com/ada"},
				Company: companyRecord{Name: "Acme", Domain: "acme.example"},
			}},
		})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).Search(context.Background(), domain.SearchCriteria{Title: "VP"})

	if got.Source != ProviderName {
		t.Fatalf("source = %q, want %q", got.Source, ProviderName)
	}
	if got.FromCache {
		t.Fatal("provider page must not be marked as cached")
	}
	if got.Total != 1 || len(got.Items) != 1 {
		t.Fatalf("total=%d items=%d", got.Total, len(got.Items))
	}

	l := got.Items[0]
	if l.Contact.WorkEmail != "ada@acme.example" {
		t.Errorf("work email = %q", l.Contact.WorkEmail)
	}
	if l.Contact.PersonalEmail != "ada@home.example" {
		t.Errorf("personal email = %q", l.Contact.PersonalEmail)
	}
	if !l.Contact.EmailVerified {
		t.Error("verified work email should mark the contact verified")
	}
	if l.Contact.DirectPhone != "+1-555-0101" || l.Contact.MobilePhone != "+1-555-0100" {
		t.Errorf("phones = %q / %q", l.Contact.DirectPhone, l.Contact.MobilePhone)
	}
	if l.Contact.GithubURL != "https://github.com/ada" {
		t.Errorf("github = %q", l.Contact.GithubURL)
	}
	if l.ProviderRefs[ProviderName] != "ap-1" {
		t.Errorf("provider refs = %v", l.ProviderRefs)
	}
	if l.Source != ProviderName {
		t.Errorf("lead source = %q", l.Source)
	}
	if l.Company.Domain != "acme.example" {
		t.Errorf("company domain = %q", l.Company.Domain)
	}

	// blank filters must be absent from the wire body, not empty strings
	for _, k := range []string{"query", "department", "company", "domain", "location"} {
		if _, ok := gotBody[k]; ok {
			t.Errorf("blank filter %q was sent", k)
		}
	}
	if gotBody["title"] != "VP" {
		t.Errorf("title sent = %v", gotBody["title"])
	}
	if gotBody["page"] != float64(domain.DefaultPage) || gotBody["page_size"] != float64(domain.DefaultPageSize) {
		t.Errorf("paging sent = %v / %v", gotBody["page"], gotBody["page_size"])
	}
}

func TestSearchClampsPageSize(t *testing.T) {
	var gotBody searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(peopleResponse{})
	}))
	defer srv.Close()

	newTestClient(srv.URL).Search(context.Background(), domain.SearchCriteria{Page: -3, PageSize: 5000})

	if gotBody.Page != 1 {
		t.Errorf("page = %d, want 1", gotBody.Page)
	}
	if gotBody.PageSize != maxPageSize {
		t.Errorf("pageSize = %d, want %d", gotBody.PageSize, maxPageSize)
	}
}

func TestSearchAbsorbsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).Search(context.Background(), domain.SearchCriteria{Keyword: "cto"})

	if len(got.Items) != 0 || got.Total != 0 {
		t.Fatalf("expected empty page, got items=%d total=%d", len(got.Items), got.Total)
	}
	if got.Source != ProviderName {
		t.Fatalf("empty page source = %q, want %q", got.Source, ProviderName)
	}
}

func TestSearchAbsorbsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	got := newTestClient(srv.URL).SearchCompanies(context.Background(), domain.SearchCriteria{})

	if len(got.Items) != 0 || got.Source != ProviderName {
		t.Fatalf("expected empty tagged page, got items=%d source=%q", len(got.Items), got.Source)
	}
}

func TestSearchCompaniesMapsRecords(t *testing.T) {
	rev := 12_500_000.0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/companies/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(companiesResponse{
			Total: 1,
			Companies: []companyRecord{{
				ID:         "org-9",
				Name:       "Acme",
				Domain:     "acme.example",
				Industry:   "SaaS",
				RevenueUSD: &rev,
				TechStack:  []string{"go", "postgres"},
			}},
		})
	}))
	defer srv.Close()

	got := newTestClient(srv.URL).SearchCompanies(context.Background(), domain.SearchCriteria{CompanyName: "Acme"})

	if len(got.Items) != 1 {
		t.Fatalf("items = %d", len(got.Items))
	}
	c := got.Items[0]
	if c.Name != "Acme" || c.Domain != "acme.example" {
		t.Errorf("company = %q / %q", c.Name, c.Domain)
	}
	if c.RevenueUSD == nil || *c.RevenueUSD != rev {
		t.Errorf("revenue = %v", c.RevenueUSD)
	}
	if c.Source != ProviderName {
		t.Errorf("company source = %q", c.Source)
	}
	if _, ok := c.ProviderPayloads[ProviderName]; !ok {
		t.Error("raw provider payload missing")
	}
}
