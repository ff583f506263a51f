package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"prospector/internal/core/identity"
	"prospector/internal/modkit/repokit"
	"prospector/internal/platform/testkit"
	"prospector/internal/services/api/leads/domain"
	"prospector/internal/services/api/leads/repo"
)

// stubTx satisfies repokit.TxRunner without a database
type stubTx struct{}

func (stubTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	panic("not used")
}
func (stubTx) Query(context.Context, string, ...any) (repokit.Rows, error) { panic("not used") }
func (stubTx) QueryRow(context.Context, string, ...any) repokit.Row       { panic("not used") }
func (stubTx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	return fn(stubTx{})
}

// memRepo is an in-memory Repo capturing reconcile calls
type memRepo struct {
	stored    []domain.Lead
	searches  int
	upserts   []identity.Key
	upsertNow []time.Time
	failNext  bool
	byKey     map[string]string // match key -> assigned id
	nextID    int
}

func newMemRepo() *memRepo { return &memRepo{byKey: map[string]string{}} }

func (m *memRepo) Search(_ context.Context, c domain.SearchCriteria) (domain.Paged[domain.Lead], error) {
	m.searches++
	return domain.Paged[domain.Lead]{
		Items:     m.stored,
		Page:      c.Page,
		PageSize:  c.PageSize,
		Total:     int64(len(m.stored)),
		FromCache: true,
		Source:    "DB",
	}, nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (domain.Lead, error) {
	for _, l := range m.stored {
		if l.ID == id {
			return l, nil
		}
	}
	return domain.Lead{}, errors.New("not found")
}

func (m *memRepo) UpsertLead(_ context.Context, key identity.Key, _ domain.Lead, now time.Time) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", errors.New("boom")
	}
	m.upserts = append(m.upserts, key)
	m.upsertNow = append(m.upsertNow, now)

	mk := key.Kind.String() + "|" + key.ID + key.WorkEmail + key.ProfileURL + key.CompanyDomain
	if id, ok := m.byKey[mk]; ok {
		return id, nil
	}
	m.nextID++
	id := string(rune('a' + m.nextID - 1))
	m.byKey[mk] = id
	return id, nil
}

func (m *memRepo) PageLeads(context.Context, int, int) ([]domain.Lead, int64, error) {
	return m.stored, int64(len(m.stored)), nil
}

func (m *memRepo) UpsertCompany(_ context.Context, c domain.Company, _ time.Time) (string, error) {
	if m.failNext {
		m.failNext = false
		return "", errors.New("boom")
	}
	return "co-" + c.Domain, nil
}

func (m *memRepo) PageCompanies(context.Context, int, int) ([]domain.Company, int64, error) {
	return nil, 0, nil
}

var _ repo.Repo = (*memRepo)(nil)

func newTestSvc(t *testing.T, r *memRepo, providers ...domain.Provider) *Svc {
	t.Helper()
	router, err := NewRouter(providers, FirstMatch{})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return r })
	return New(stubTx{}, binder, router)
}

func TestNewRequiresDependencies(t *testing.T) {
	mem := newMemRepo()
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	router, err := NewRouter([]domain.Provider{&stubProvider{name: "Apollo"}}, FirstMatch{})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	testkit.MustPanic(t, func() { New(nil, binder, router) })
	testkit.MustPanic(t, func() { New(stubTx{}, nil, router) })
	testkit.MustPanic(t, func() { New(stubTx{}, binder, nil) })
	testkit.MustNotPanic(t, func() { New(stubTx{}, binder, router) })
}

func TestSearchStorageHitNeverConsultsProvider(t *testing.T) {
	mem := newMemRepo()
	mem.stored = []domain.Lead{lead("stored-1")}
	p := &stubProvider{name: "Apollo", leads: []domain.Lead{lead("prov-1")}}
	svc := newTestSvc(t, mem, p)

	res, err := svc.Search(context.Background(), domain.SearchCriteria{Keyword: "cto"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !res.FromCache || res.Source != "DB" {
		t.Fatalf("expected DB cache hit, got fromCache=%v source=%q", res.FromCache, res.Source)
	}
	if p.calls != 0 {
		t.Fatalf("provider called %d times on a storage hit, want 0", p.calls)
	}
}

func TestSearchFallsBackAndPersists(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo", leads: []domain.Lead{
		{Contact: domain.ContactChannels{WorkEmail: "jane@acme.com"}},
	}}
	svc := newTestSvc(t, mem, p)

	res, err := svc.Search(context.Background(), domain.SearchCriteria{Keyword: "cto"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.FromCache || res.Source != "Apollo" {
		t.Fatalf("expected provider result, got fromCache=%v source=%q", res.FromCache, res.Source)
	}
	if len(mem.upserts) != 1 {
		t.Fatalf("persisted %d leads, want 1", len(mem.upserts))
	}
	if mem.upserts[0].Kind != identity.KindWorkEmail {
		t.Fatalf("persisted with key %v, want work_email", mem.upserts[0].Kind)
	}
}

func TestSearchForceProviderSkipsStorage(t *testing.T) {
	mem := newMemRepo()
	mem.stored = []domain.Lead{lead("stored-1")}
	p := &stubProvider{name: "Apollo", leads: []domain.Lead{lead("prov-1")}}
	svc := newTestSvc(t, mem, p)

	res, err := svc.Search(context.Background(), domain.SearchCriteria{ForceProvider: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if mem.searches != 0 {
		t.Fatalf("storage searched %d times with forceProvider, want 0", mem.searches)
	}
	if res.Source != "Apollo" {
		t.Fatalf("source = %q", res.Source)
	}
}

func TestSearchBothEmptyKeepsProviderSource(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	res, err := svc.Search(context.Background(), domain.SearchCriteria{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Items) != 0 || res.FromCache || res.Source != "Apollo" {
		t.Fatalf("unexpected empty result: %+v", res)
	}
}

func TestUpsertLeadsSameIdentityReturnsSameID(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	l := domain.Lead{Contact: domain.ContactChannels{WorkEmail: "jane@acme.com"}}
	ids, err := svc.UpsertLeads(context.Background(), []domain.Lead{l, l})
	if err != nil {
		t.Fatalf("UpsertLeads: %v", err)
	}
	if len(ids) != 2 || ids[0] != ids[1] {
		t.Fatalf("ids = %v, want two identical", ids)
	}
}

func TestUpsertLeadsIDBeatsEmail(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	a := domain.Lead{ID: "id-1", Contact: domain.ContactChannels{WorkEmail: "same@acme.com"}}
	b := domain.Lead{ID: "id-2", Contact: domain.ContactChannels{WorkEmail: "same@acme.com"}}
	ids, err := svc.UpsertLeads(context.Background(), []domain.Lead{a, b})
	if err != nil {
		t.Fatalf("UpsertLeads: %v", err)
	}
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("ids = %v, want two distinct documents", ids)
	}
	for _, k := range mem.upserts {
		if k.Kind != identity.KindID {
			t.Fatalf("matched by %v, want id", k.Kind)
		}
	}
}

func TestUpsertLeadsPartialFailureContinues(t *testing.T) {
	mem := newMemRepo()
	mem.failNext = true
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	batch := []domain.Lead{
		{Contact: domain.ContactChannels{WorkEmail: "a@acme.com"}},
		{Contact: domain.ContactChannels{WorkEmail: "b@acme.com"}},
	}
	ids, err := svc.UpsertLeads(context.Background(), batch)
	if err != nil {
		t.Fatalf("UpsertLeads: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("ids = %v, want one surviving write", ids)
	}
}

func TestUpsertLeadsSharesOneTimestampPerBatch(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)
	fixed := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	batch := []domain.Lead{
		{Contact: domain.ContactChannels{WorkEmail: "a@acme.com"}},
		{Contact: domain.ContactChannels{WorkEmail: "b@acme.com"}},
	}
	if _, err := svc.UpsertLeads(context.Background(), batch); err != nil {
		t.Fatalf("UpsertLeads: %v", err)
	}
	for _, now := range mem.upsertNow {
		if !now.Equal(fixed) {
			t.Fatalf("batch timestamp = %v, want shared %v", now, fixed)
		}
	}
}

func TestUpsertLeadsEmptyBatchRejected(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	if _, err := svc.UpsertLeads(context.Background(), nil); err == nil {
		t.Fatal("expected validation error for empty batch")
	}
}

func TestGetByIDRequiresID(t *testing.T) {
	mem := newMemRepo()
	p := &stubProvider{name: "Apollo"}
	svc := newTestSvc(t, mem, p)

	if _, err := svc.GetByID(context.Background(), ""); err == nil {
		t.Fatal("expected error for blank id")
	}
}
