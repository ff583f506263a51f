// Package repo provides postgres access for leads and companies
package repo

import (
	"context"
	"encoding/json"
	"time"

	"prospector/internal/core/identity"
	"prospector/internal/core/normalize"
	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/store"
	ptime "prospector/internal/platform/time"
	"prospector/internal/services/api/leads/domain"

	"github.com/google/uuid"
)

// Repo is the persistence surface for the leads module
type Repo interface {
	Search(ctx context.Context, c domain.SearchCriteria) (domain.Paged[domain.Lead], error)
	GetByID(ctx context.Context, id string) (domain.Lead, error)
	UpsertLead(ctx context.Context, key identity.Key, lead domain.Lead, now time.Time) (string, error)
	PageLeads(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error)

	UpsertCompany(ctx context.Context, c domain.Company, now time.Time) (string, error)
	PageCompanies(ctx context.Context, page, pageSize int) ([]domain.Company, int64, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const leadCols = `id, person, company, contact, provider_refs, source, enriched, first_seen, last_updated`

func scanLead(r repokit.Row) (domain.Lead, error) {
	var (
		l        domain.Lead
		person   []byte
		company  []byte
		contact  []byte
		provRefs []byte
	)
	if err := r.Scan(&l.ID, &person, &company, &contact, &provRefs, &l.Source, &l.Enriched, &l.FirstSeen, &l.LastUpdated); err != nil {
		return l, err
	}
	if err := json.Unmarshal(person, &l.Person); err != nil {
		return l, perr.Wrap(err, perr.ErrorCodeDB, "decode person")
	}
	if err := json.Unmarshal(company, &l.Company); err != nil {
		return l, perr.Wrap(err, perr.ErrorCodeDB, "decode company")
	}
	if err := json.Unmarshal(contact, &l.Contact); err != nil {
		return l, perr.Wrap(err, perr.ErrorCodeDB, "decode contact")
	}
	if len(provRefs) > 0 {
		if err := json.Unmarshal(provRefs, &l.ProviderRefs); err != nil {
			return l, perr.Wrap(err, perr.ErrorCodeDB, "decode provider refs")
		}
	}
	return l, nil
}

func marshalLead(l domain.Lead) (person, company, contact, provRefs []byte, err error) {
	if person, err = json.Marshal(l.Person); err != nil {
		return
	}
	if company, err = json.Marshal(l.Company); err != nil {
		return
	}
	if contact, err = json.Marshal(l.Contact); err != nil {
		return
	}
	refs := l.ProviderRefs
	if refs == nil {
		refs = map[string]string{}
	}
	provRefs, err = json.Marshal(refs)
	return
}

// Search runs a filtered paged read over stored leads
func (r *queries) Search(ctx context.Context, c domain.SearchCriteria) (domain.Paged[domain.Lead], error) {
	c = c.Clamped()

	const sql = `
select ` + leadCols + `, count(*) over() as total
from leads
where ($1 = '' or concat_ws(' ',
        person->>'firstName', person->>'lastName', person->>'title',
        company->>'name', company->>'domain') ilike '%' || $1 || '%')
and ($2 = '' or person->>'title' ilike '%' || $2 || '%')
and ($3 = '' or person->>'department' ilike '%' || $3 || '%')
and ($4 = '' or person->>'seniority' ilike '%' || $4 || '%')
and ($5 = '' or company->>'name' ilike '%' || $5 || '%')
and ($6 = '' or company_domain = $6)
and ($7 = '' or person->>'location' ilike '%' || $7 || '%')
and (cardinality($8::text[]) = 0 or (company->'techStack') @> to_jsonb($8::text[]))
order by last_updated desc
limit $9 offset $10
`
	tech := c.TechStack
	if tech == nil {
		tech = []string{}
	}
	rows, err := r.q.Query(ctx, sql,
		normalize.Keyword(c.Keyword),
		c.Title, c.Department, c.Seniority, c.CompanyName,
		normalize.Domain(c.CompanyDomain), c.Location, tech,
		c.PageSize, (c.Page-1)*c.PageSize,
	)
	if err != nil {
		return domain.Paged[domain.Lead]{}, err
	}
	defer rows.Close()

	out := domain.Paged[domain.Lead]{
		Items:     []domain.Lead{},
		Page:      c.Page,
		PageSize:  c.PageSize,
		FromCache: true,
		Source:    "DB",
	}
	for rows.Next() {
		var (
			l        domain.Lead
			person   []byte
			company  []byte
			contact  []byte
			provRefs []byte
		)
		if err := rows.Scan(&l.ID, &person, &company, &contact, &provRefs,
			&l.Source, &l.Enriched, &l.FirstSeen, &l.LastUpdated, &out.Total); err != nil {
			return domain.Paged[domain.Lead]{}, err
		}
		if err := json.Unmarshal(person, &l.Person); err != nil {
			return domain.Paged[domain.Lead]{}, perr.Wrap(err, perr.ErrorCodeDB, "decode person")
		}
		if err := json.Unmarshal(company, &l.Company); err != nil {
			return domain.Paged[domain.Lead]{}, perr.Wrap(err, perr.ErrorCodeDB, "decode company")
		}
		if err := json.Unmarshal(contact, &l.Contact); err != nil {
			return domain.Paged[domain.Lead]{}, perr.Wrap(err, perr.ErrorCodeDB, "decode contact")
		}
		if len(provRefs) > 0 {
			if err := json.Unmarshal(provRefs, &l.ProviderRefs); err != nil {
				return domain.Paged[domain.Lead]{}, perr.Wrap(err, perr.ErrorCodeDB, "decode provider refs")
			}
		}
		out.Items = append(out.Items, l)
	}
	return out, rows.Err()
}

// GetByID fetches one lead or ErrNotFound
func (r *queries) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	const sql = `select ` + leadCols + ` from leads where id = $1`
	return store.One(ctx, r.q, scanLead, sql, id)
}

// UpsertLead reconciles one lead against the resolved identity key
// first_seen is written only on insert; last_updated refreshes on every write
func (r *queries) UpsertLead(ctx context.Context, key identity.Key, lead domain.Lead, now time.Time) (string, error) {
	matchedID, err := r.findLeadID(ctx, key)
	if err != nil && !perr.IsCode(err, perr.ErrorCodeNotFound) {
		return "", err
	}

	person, company, contact, provRefs, err := marshalLead(lead)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDB, "encode lead")
	}

	lastUpdated := ptime.Or(lead.LastUpdated, now)

	workEmail := normalize.Email(lead.Contact.WorkEmail)
	profileURL := lead.Person.ProfileURL
	companyDomain := normalize.Domain(lead.Company.Domain)

	if matchedID != "" {
		const update = `
update leads
set person = $2, company = $3, contact = $4, provider_refs = $5,
    source = $6, enriched = $7, last_updated = $8,
    work_email = $9, profile_url = $10, company_domain = $11
where id = $1
`
		_, err := r.q.Exec(ctx, update, matchedID, person, company, contact, provRefs,
			lead.Source, lead.Enriched, lastUpdated, workEmail, profileURL, companyDomain)
		if err != nil {
			return "", perr.FromPostgres(err, "update lead")
		}
		return matchedID, nil
	}

	id := lead.ID
	if id == "" {
		id = uuid.NewString()
	}
	firstSeen := ptime.Or(lead.FirstSeen, now)

	const insert = `
insert into leads (id, person, company, contact, provider_refs, source, enriched,
                   first_seen, last_updated, work_email, profile_url, company_domain)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`
	_, err = r.q.Exec(ctx, insert, id, person, company, contact, provRefs,
		lead.Source, lead.Enriched, firstSeen, lastUpdated, workEmail, profileURL, companyDomain)
	if err != nil {
		return "", perr.FromPostgres(err, "insert lead")
	}
	return id, nil
}

// findLeadID resolves an existing document id for the identity key
func (r *queries) findLeadID(ctx context.Context, key identity.Key) (string, error) {
	var (
		sql  string
		args []any
	)
	switch key.Kind {
	case identity.KindID:
		sql, args = `select id from leads where id = $1`, []any{key.ID}
	case identity.KindWorkEmail:
		sql, args = `select id from leads where work_email = $1 order by last_updated desc limit 1`,
			[]any{key.WorkEmail}
	default:
		sql, args = `select id from leads where profile_url = $1 and company_domain = $2 order by last_updated desc limit 1`,
			[]any{key.ProfileURL, key.CompanyDomain}
	}
	var id string
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		// pgx returns ErrNoRows; treat any scan miss as not found so the caller inserts
		return "", perr.ErrNotFound
	}
	return id, nil
}

// PageLeads returns one export batch, most recently updated first
func (r *queries) PageLeads(ctx context.Context, page, pageSize int) ([]domain.Lead, int64, error) {
	const sql = `
select ` + leadCols + `, count(*) over() as total
from leads
order by last_updated desc, id asc
limit $1 offset $2
`
	rows, err := r.q.Query(ctx, sql, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []domain.Lead
		total int64
	)
	for rows.Next() {
		var (
			l        domain.Lead
			person   []byte
			company  []byte
			contact  []byte
			provRefs []byte
		)
		if err := rows.Scan(&l.ID, &person, &company, &contact, &provRefs,
			&l.Source, &l.Enriched, &l.FirstSeen, &l.LastUpdated, &total); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(person, &l.Person); err != nil {
			return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode person")
		}
		if err := json.Unmarshal(company, &l.Company); err != nil {
			return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode company")
		}
		if err := json.Unmarshal(contact, &l.Contact); err != nil {
			return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode contact")
		}
		if len(provRefs) > 0 {
			if err := json.Unmarshal(provRefs, &l.ProviderRefs); err != nil {
				return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode provider refs")
			}
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}
