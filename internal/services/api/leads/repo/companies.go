package repo

import (
	"context"
	"encoding/json"
	"time"

	"prospector/internal/core/normalize"
	perr "prospector/internal/platform/errors"
	ptime "prospector/internal/platform/time"
	"prospector/internal/services/api/leads/domain"

	"github.com/google/uuid"
)

const companyCols = `id, name, domain, industry, size, revenue_usd, hq_location, tech_stack, profile_url,
provider_payloads, source, first_seen, last_updated`

// UpsertCompany reconciles one company keyed solely on its domain
// a blank domain always inserts a fresh document since it cannot match anything
func (r *queries) UpsertCompany(ctx context.Context, c domain.Company, now time.Time) (string, error) {
	dom := normalize.Domain(c.Domain)

	payloads, err := json.Marshal(orEmptyPayloads(c.ProviderPayloads))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDB, "encode provider payloads")
	}

	lastUpdated := ptime.Or(c.LastUpdated, now)

	var matchedID string
	if dom != "" {
		if err := r.q.QueryRow(ctx, `select id from companies where domain = $1`, dom).Scan(&matchedID); err != nil {
			matchedID = ""
		}
	}

	tech := c.TechStack
	if tech == nil {
		tech = []string{}
	}

	if matchedID != "" {
		const update = `
update companies
set name = $2, industry = $3, size = $4, revenue_usd = $5, hq_location = $6,
    tech_stack = $7, profile_url = $8,
    provider_payloads = coalesce(provider_payloads, '{}'::jsonb) || $9,
    source = $10, last_updated = $11
where id = $1
`
		_, err := r.q.Exec(ctx, update, matchedID, c.Name, c.Industry, c.Size, c.RevenueUSD,
			c.HQLocation, tech, c.ProfileURL, payloads, c.Source, lastUpdated)
		if err != nil {
			return "", perr.FromPostgres(err, "update company")
		}
		return matchedID, nil
	}

	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	firstSeen := ptime.Or(c.FirstSeen, now)

	const insert = `
insert into companies (id, name, domain, industry, size, revenue_usd, hq_location,
                       tech_stack, profile_url, provider_payloads, source, first_seen, last_updated)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`
	_, err = r.q.Exec(ctx, insert, id, c.Name, dom, c.Industry, c.Size, c.RevenueUSD,
		c.HQLocation, tech, c.ProfileURL, payloads, c.Source, firstSeen, lastUpdated)
	if err != nil {
		return "", perr.FromPostgres(err, "insert company")
	}
	return id, nil
}

// PageCompanies returns one export batch ordered by company name
func (r *queries) PageCompanies(ctx context.Context, page, pageSize int) ([]domain.Company, int64, error) {
	const sql = `
select ` + companyCols + `, count(*) over() as total
from companies
order by name asc, id asc
limit $1 offset $2
`
	rows, err := r.q.Query(ctx, sql, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []domain.Company
		total int64
	)
	for rows.Next() {
		var (
			c        domain.Company
			payloads []byte
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.Industry, &c.Size, &c.RevenueUSD,
			&c.HQLocation, &c.TechStack, &c.ProfileURL, &payloads, &c.Source, &c.FirstSeen, &c.LastUpdated, &total); err != nil {
			return nil, 0, err
		}
		if len(payloads) > 0 {
			if err := json.Unmarshal(payloads, &c.ProviderPayloads); err != nil {
				return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode provider payloads")
			}
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func orEmptyPayloads(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return map[string]json.RawMessage{}
	}
	return m
}
