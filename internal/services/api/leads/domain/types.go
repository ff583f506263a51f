// Package domain holds the unified lead shapes shared by storage, providers, and transport
package domain

import (
	"encoding/json"
	"time"
)

// Person is the people side of a lead
type Person struct {
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Title      string   `json:"title"`
	Department string   `json:"department"`
	Seniority  string   `json:"seniority"`
	ProfileURL string   `json:"profileUrl"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills,omitempty"`
}

// CompanySnapshot is the lightweight org view embedded in a lead
type CompanySnapshot struct {
	Name       string   `json:"name"`
	Domain     string   `json:"domain"`
	Industry   string   `json:"industry"`
	Size       string   `json:"size"`
	RevenueUSD *float64 `json:"revenueUsd,omitempty"`
	HQLocation string   `json:"hqLocation"`
	TechStack  []string `json:"techStack,omitempty"`
	ProfileURL string   `json:"profileUrl"`
}

// ContactChannels are the reachable addresses for a lead
type ContactChannels struct {
	WorkEmail     string `json:"workEmail"`
	PersonalEmail string `json:"personalEmail"`
	DirectPhone   string `json:"directPhone"`
	MobilePhone   string `json:"mobilePhone"`
	CompanyPhone  string `json:"companyPhone"`
	TwitterURL    string `json:"twitterUrl"`
	GithubURL     string `json:"githubUrl"`
	EmailVerified bool   `json:"emailVerified"`
}

// Lead is the unified person+company+contact prospect record
// ID is assigned on first persistence and never reassigned
type Lead struct {
	ID      string          `json:"id"`
	Person  Person          `json:"person"`
	Company CompanySnapshot `json:"company"`
	Contact ContactChannels `json:"contact"`

	// provenance
	Source       string            `json:"source"`
	FirstSeen    time.Time         `json:"firstSeen"`
	LastUpdated  time.Time         `json:"lastUpdated"`
	Enriched     bool              `json:"enriched"`
	ProviderRefs map[string]string `json:"providerRefs,omitempty"`
}

// Company is a full org record independent of any one lead
// Domain is the natural dedup key: at most one document per non-empty domain
type Company struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Domain     string   `json:"domain"`
	Industry   string   `json:"industry"`
	Size       string   `json:"size"`
	RevenueUSD *float64 `json:"revenueUsd,omitempty"`
	HQLocation string   `json:"hqLocation"`
	TechStack  []string `json:"techStack,omitempty"`
	ProfileURL string   `json:"profileUrl"`

	// raw provider payloads kept for audit and enrichment reference
	ProviderPayloads map[string]json.RawMessage `json:"providerPayloads,omitempty"`

	Source      string    `json:"source"`
	FirstSeen   time.Time `json:"firstSeen"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// pagination defaults shared by storage and providers
const (
	DefaultPage     = 1
	DefaultPageSize = 25
)

// SearchCriteria is the canonical query shape consumed by both storage and providers
type SearchCriteria struct {
	Keyword       string
	Title         string
	Department    string
	Seniority     string
	CompanyName   string
	CompanyDomain string
	Location      string
	TechStack     []string

	Page          int
	PageSize      int
	ForceProvider bool
}

// Clamped returns a copy with page and pageSize raised to the shared defaults
func (c SearchCriteria) Clamped() SearchCriteria {
	if c.Page < 1 {
		c.Page = DefaultPage
	}
	if c.PageSize < 1 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// Paged is one page of items plus paging metadata and provenance
type Paged[T any] struct {
	Items     []T    `json:"items"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
	Total     int64  `json:"total"`
	FromCache bool   `json:"fromCache"`
	Source    string `json:"source"`
}

// Empty builds a zero-item page tagged with source, never from cache
func Empty[T any](c SearchCriteria, source string) Paged[T] {
	return Paged[T]{
		Items:     []T{},
		Page:      c.Page,
		PageSize:  c.PageSize,
		Total:     0,
		FromCache: false,
		Source:    source,
	}
}
