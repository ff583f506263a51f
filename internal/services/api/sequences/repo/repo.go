// Package repo provides postgres access for sequences
package repo

import (
	"context"
	"encoding/json"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/store"
	"prospector/internal/services/api/sequences/domain"
)

// Repo is the persistence surface for the sequences module
type Repo interface {
	Insert(ctx context.Context, s domain.Sequence) error
	GetByID(ctx context.Context, id string) (domain.Sequence, error)
	Page(ctx context.Context, page, pageSize int) ([]domain.Sequence, int64, error)
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

const seqCols = `id, name, description, active, steps, created_at`

func scanSequence(r repokit.Row) (domain.Sequence, error) {
	var (
		s     domain.Sequence
		steps []byte
	)
	if err := r.Scan(&s.ID, &s.Name, &s.Description, &s.Active, &steps, &s.CreatedAt); err != nil {
		return s, err
	}
	if err := json.Unmarshal(steps, &s.Steps); err != nil {
		return s, perr.Wrap(err, perr.ErrorCodeDB, "decode steps")
	}
	return s, nil
}

// Insert stores one sequence; ids are assigned by the service
func (r *queries) Insert(ctx context.Context, s domain.Sequence) error {
	steps, err := json.Marshal(s.Steps)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "encode steps")
	}
	const sql = `
insert into sequences (id, name, description, active, steps, created_at)
values ($1, $2, $3, $4, $5, $6)
`
	if _, err := r.q.Exec(ctx, sql, s.ID, s.Name, s.Description, s.Active, steps, s.CreatedAt); err != nil {
		return perr.FromPostgres(err, "insert sequence")
	}
	return nil
}

// GetByID fetches one sequence or ErrNotFound
func (r *queries) GetByID(ctx context.Context, id string) (domain.Sequence, error) {
	const sql = `select ` + seqCols + ` from sequences where id = $1`
	return store.One(ctx, r.q, scanSequence, sql, id)
}

// Page returns sequences newest first
func (r *queries) Page(ctx context.Context, page, pageSize int) ([]domain.Sequence, int64, error) {
	const sql = `
select ` + seqCols + `, count(*) over() as total
from sequences
order by created_at desc, id asc
limit $1 offset $2
`
	rows, err := r.q.Query(ctx, sql, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		out   []domain.Sequence
		total int64
	)
	for rows.Next() {
		var (
			s     domain.Sequence
			steps []byte
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Active, &steps, &s.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(steps, &s.Steps); err != nil {
			return nil, 0, perr.Wrap(err, perr.ErrorCodeDB, "decode steps")
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}
