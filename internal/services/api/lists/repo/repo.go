// Package repo provides postgres access for prospect lists
package repo

import (
	"context"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/store"
	"prospector/internal/services/api/lists/domain"
)

// Repo is the persistence surface for the lists module
type Repo interface {
	Insert(ctx context.Context, l domain.ProspectList) error
	GetByID(ctx context.Context, id string) (domain.ProspectList, error)
	Page(ctx context.Context, page, pageSize int) ([]domain.ProspectList, int64, error)
	SetLeadIDs(ctx context.Context, id string, leadIDs []string) error
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

const listCols = `id, name, description, lead_ids, created_at`

func scanList(r repokit.Row) (domain.ProspectList, error) {
	var l domain.ProspectList
	if err := r.Scan(&l.ID, &l.Name, &l.Description, &l.LeadIDs, &l.CreatedAt); err != nil {
		return l, err
	}
	return l, nil
}

// Insert stores one list; ids are assigned by the service
func (r *queries) Insert(ctx context.Context, l domain.ProspectList) error {
	ids := l.LeadIDs
	if ids == nil {
		ids = []string{}
	}
	const sql = `
insert into prospect_lists (id, name, description, lead_ids, created_at)
values ($1, $2, $3, $4, $5)
`
	if _, err := r.q.Exec(ctx, sql, l.ID, l.Name, l.Description, ids, l.CreatedAt); err != nil {
		return perr.FromPostgres(err, "insert list")
	}
	return nil
}

// GetByID fetches one list or ErrNotFound
func (r *queries) GetByID(ctx context.Context, id string) (domain.ProspectList, error) {
	const sql = `select ` + listCols + ` from prospect_lists where id = $1`
	return store.One(ctx, r.q, scanList, sql, id)
}

// Page returns lists newest first
func (r *queries) Page(ctx context.Context, page, pageSize int) ([]domain.ProspectList, int64, error) {
	const sql = `
select ` + listCols + `, count(*) over() as total
from prospect_lists
order by created_at desc, id asc
limit $1 offset $2
`
	rows, err := r.q.Query(ctx, sql, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []domain.ProspectList
		total int64
	)
	for rows.Next() {
		var l domain.ProspectList
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.LeadIDs, &l.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

// SetLeadIDs overwrites the membership array for one list
func (r *queries) SetLeadIDs(ctx context.Context, id string, leadIDs []string) error {
	if leadIDs == nil {
		leadIDs = []string{}
	}
	const sql = `update prospect_lists set lead_ids = $2 where id = $1`
	tag, err := r.q.Exec(ctx, sql, id, leadIDs)
	if err != nil {
		return perr.FromPostgres(err, "update list membership")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("list %s", id)
	}
	return nil
}
