// Package apollo wraps the Apollo people/company search API as a lead provider
//
// Every transport failure, non-success status, or decode error degrades to an
// empty page tagged with this adapter's name; errors never propagate upward
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"prospector/internal/platform/config"
	"prospector/internal/platform/logger"
	pstr "prospector/internal/platform/strings"
	"prospector/internal/services/api/leads/domain"
)

// ProviderName tags every result and provider reference written by this adapter
const ProviderName = "Apollo"

const (
	defaultTimeout = 10 * time.Second
	defaultUA      = "prospector-api"

	maxPageSize = 100
)

// Options configures the Client
type Options struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// FromConfig reads adapter options from a PROVIDER_APOLLO_ scoped config view
func FromConfig(cfg config.Conf) Options {
	return Options{
		BaseURL: cfg.MustString("BASE_URL"),
		APIKey:  cfg.MustString("API_KEY"),
		Timeout: cfg.MayDuration("TIMEOUT", defaultTimeout),
	}
}

// Client is a stateless Apollo search client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

var _ domain.Provider = (*Client)(nil)

// New creates a Client with sane defaults
func New(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("apollo"),
	}
}

// Name returns the adapter name used for source tagging
func (c *Client) Name() string { return ProviderName }

// Search queries Apollo for people matching the criteria
func (c *Client) Search(ctx context.Context, crit domain.SearchCriteria) domain.Paged[domain.Lead] {
	crit = clamp(crit)

	var resp peopleResponse
	if !c.post(ctx, "/v1/people/search", buildRequest(crit), &resp) {
		return domain.Empty[domain.Lead](crit, ProviderName)
	}

	items := make([]domain.Lead, 0, len(resp.Results))
	for _, rec := range resp.Results {
		items = append(items, mapLead(rec))
	}
	return domain.Paged[domain.Lead]{
		Items:     items,
		Page:      crit.Page,
		PageSize:  crit.PageSize,
		Total:     resp.Total,
		FromCache: false,
		Source:    ProviderName,
	}
}

// SearchCompanies queries Apollo for organizations matching the criteria
func (c *Client) SearchCompanies(ctx context.Context, crit domain.SearchCriteria) domain.Paged[domain.Company] {
	crit = clamp(crit)

	var resp companiesResponse
	if !c.post(ctx, "/v1/companies/search", buildRequest(crit), &resp) {
		return domain.Empty[domain.Company](crit, ProviderName)
	}

	items := make([]domain.Company, 0, len(resp.Companies))
	for _, rec := range resp.Companies {
		items = append(items, mapCompany(rec))
	}
	return domain.Paged[domain.Company]{
		Items:     items,
		Page:      crit.Page,
		PageSize:  crit.PageSize,
		Total:     resp.Total,
		FromCache: false,
		Source:    ProviderName,
	}
}

// post issues one request and decodes into out; false means "treat as empty"
func (c *Client) post(ctx context.Context, path string, body searchRequest, out any) bool {
	payload, err := json.Marshal(body)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("apollo request encode failed")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("apollo request build failed")
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("X-Api-Key", c.opts.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("apollo call failed")
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("apollo non-success status")
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("apollo response decode failed")
		return false
	}
	return true
}

// clamp bounds pagination to what the API accepts
func clamp(c domain.SearchCriteria) domain.SearchCriteria {
	c = c.Clamped()
	if c.PageSize > maxPageSize {
		c.PageSize = maxPageSize
	}
	return c
}

// buildRequest maps criteria to the wire shape, dropping blank filters entirely
func buildRequest(c domain.SearchCriteria) searchRequest {
	return searchRequest{
		Query:        pstr.BlankToNil(c.Keyword),
		Title:        pstr.BlankToNil(c.Title),
		Department:   pstr.BlankToNil(c.Department),
		Seniority:    pstr.BlankToNil(c.Seniority),
		Company:      pstr.BlankToNil(c.CompanyName),
		Domain:       pstr.BlankToNil(c.CompanyDomain),
		Location:     pstr.BlankToNil(c.Location),
		TechIncludes: c.TechStack,
		Page:         c.Page,
		PageSize:     c.PageSize,
	}
}
