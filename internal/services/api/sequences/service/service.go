// Package service implements sequence management and first-step fan-out
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
	pstr "prospector/internal/platform/strings"
	"prospector/internal/services/api/sequences/domain"
	"prospector/internal/services/api/sequences/repo"

	"github.com/google/uuid"
)

// Service defines the sequences service contract
type Service interface {
	Create(ctx context.Context, in domain.CreateRequest) (domain.Sequence, error)
	GetByID(ctx context.Context, id string) (domain.Sequence, error)
	Page(ctx context.Context, page, pageSize int) ([]domain.Sequence, int64, error)
	Start(ctx context.Context, sequenceID string, leadIDs []string) (domain.StartSummary, error)
}

// Svc implements the sequences service
type Svc struct {
	Repo repo.Repo
	Logs repo.Logs
	log  logger.Logger
	now  func() time.Time
}

// New constructs a sequences service
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo], logs repo.Logs) *Svc {
	if db == nil {
		panic("sequences.Service requires a non nil Queryer")
	}
	if binder == nil {
		panic("sequences.Service requires a non nil Repo binder")
	}
	if logs == nil {
		panic("sequences.Service requires a non nil engagement log writer")
	}
	return &Svc{
		Repo: binder.Bind(db),
		Logs: logs,
		log:  *logger.Named("sequences"),
		now:  time.Now,
	}
}

// Create normalizes steps at write time and stores the sequence
// channel falls back to "email", non-positive waits become the 48h default,
// and steps are sorted by order with ties keeping their original position
func (s *Svc) Create(ctx context.Context, in domain.CreateRequest) (domain.Sequence, error) {
	if pstr.Blank(in.Name) {
		return domain.Sequence{}, perr.Validationf("sequence name is required")
	}

	steps := make([]domain.Step, 0, len(in.Steps))
	for _, st := range in.Steps {
		steps = append(steps, st.Normalized())
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })

	seq := domain.Sequence{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		Steps:       steps,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Insert(ctx, seq); err != nil {
		return domain.Sequence{}, err
	}
	return seq, nil
}

// GetByID fetches one sequence by id
func (s *Svc) GetByID(ctx context.Context, id string) (domain.Sequence, error) {
	if pstr.Blank(id) {
		return domain.Sequence{}, perr.InvalidArgf("sequence id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// Page returns sequences newest first
func (s *Svc) Page(ctx context.Context, page, pageSize int) ([]domain.Sequence, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 25
	}
	items, total, err := s.Repo.Page(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []domain.Sequence{}
	}
	return items, total, nil
}

// Start fans the first step out to every target lead synchronously
// one engagement log per lead, all sharing a single batch timestamp;
// steps 2..N are not scheduled here
func (s *Svc) Start(ctx context.Context, sequenceID string, leadIDs []string) (domain.StartSummary, error) {
	if pstr.Blank(sequenceID) {
		return domain.StartSummary{}, perr.InvalidArgf("sequence id is required")
	}
	if len(leadIDs) == 0 {
		return domain.StartSummary{}, perr.Validationf("lead ids are required")
	}

	seq, err := s.Repo.GetByID(ctx, sequenceID)
	if err != nil {
		return domain.StartSummary{}, err
	}
	step, ok := seq.FirstStep()
	if !ok {
		return domain.StartSummary{}, perr.Validationf("sequence %q has no steps", seq.Name)
	}

	channel := domain.NormalizeChannel(step.Type)
	subject := fmt.Sprintf("%s / step %d", seq.Name, step.Order)
	preview := pstr.Truncate(step.Template, domain.BodyPreviewMax)
	now := s.now().UTC()

	logs := make([]domain.EngagementLog, 0, len(leadIDs))
	for _, leadID := range leadIDs {
		logs = append(logs, domain.EngagementLog{
			ID:          uuid.NewString(),
			LeadID:      leadID,
			Channel:     channel,
			Direction:   "out",
			OccurredAt:  now,
			Subject:     subject,
			BodyPreview: preview,
			Status:      "sent",
			ProviderRef: seq.ID, // ties the touch back to its originating sequence
		})
	}
	if err := s.Logs.Append(ctx, logs); err != nil {
		return domain.StartSummary{}, err
	}

	s.log.Info().
		Str("sequence_id", seq.ID).
		Str("channel", channel).
		Int("leads", len(logs)).
		Msg("sequence started")

	return domain.StartSummary{
		SequenceID: seq.ID,
		Channel:    channel,
		StepOrder:  step.Order,
		Started:    len(logs),
	}, nil
}
