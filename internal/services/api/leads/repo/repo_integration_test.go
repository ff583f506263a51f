//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"prospector/internal/core/identity"
	"prospector/internal/modkit/repokit"
	"prospector/internal/platform/store"
	"prospector/internal/services/api/leads/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const schema = `
create table leads (
	id             text primary key,
	person         jsonb not null,
	company        jsonb not null,
	contact        jsonb not null,
	provider_refs  jsonb not null default '{}'::jsonb,
	source         text not null default '',
	enriched       boolean not null default false,
	first_seen     timestamptz not null,
	last_updated   timestamptz not null,
	work_email     text not null default '',
	profile_url    text not null default '',
	company_domain text not null default ''
);
create index leads_work_email_idx on leads (work_email) where work_email <> '';
create index leads_fingerprint_idx on leads (profile_url, company_domain);

create table companies (
	id                text primary key,
	name              text not null default '',
	domain            text not null default '',
	industry          text not null default '',
	size              text not null default '',
	revenue_usd       double precision,
	hq_location       text not null default '',
	tech_stack        text[] not null default '{}',
	profile_url       text not null default '',
	provider_payloads jsonb not null default '{}'::jsonb,
	source            text not null default '',
	first_seen        timestamptz not null,
	last_updated      timestamptz not null
);
create unique index companies_domain_key on companies (domain) where domain <> '';
`

func newTestRepo(t *testing.T) (Repo, *store.Store) {
	t.Helper()
	dsn, stop := startPostgres(t)
	t.Cleanup(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	t.Cleanup(cancel)

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	})
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if p, ok := st.PG.(store.Pinger); ok {
		repokit.MustPing(ctx, "postgres", p)
	}

	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("bootstrap schema: %v", err)
	}
	return NewPG().Bind(st.PG), st
}

func lead(email string) domain.Lead {
	return domain.Lead{
		Person:  domain.Person{FirstName: "Ada", LastName: "Lovelace", Title: "VP Engineering"},
		Company: domain.CompanySnapshot{Name: "Acme", Domain: "acme.example", TechStack: []string{"go", "postgres"}},
		Contact: domain.ContactChannels{WorkEmail: email},
		Source:  "Apollo",
	}
}

func TestUpsertLeadIdempotentOnWorkEmail(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	l := lead("ada@acme.example")
	key := identity.Resolve(l.ID, l.Contact.WorkEmail, l.Person.ProfileURL, l.Company.Domain)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	id1, err := r.UpsertLead(ctx, key, l, t0)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	l.Person.Title = "CTO"
	t1 := t0.Add(time.Hour)
	id2, err := r.UpsertLead(ctx, key, l, t1)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("same work email produced two documents: %s vs %s", id1, id2)
	}

	got, err := r.GetByID(ctx, id1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Person.Title != "CTO" {
		t.Errorf("merge did not overwrite person: %q", got.Person.Title)
	}
	if !got.FirstSeen.Equal(t0) {
		t.Errorf("first_seen moved: %v, want %v", got.FirstSeen, t0)
	}
	if !got.LastUpdated.Equal(t1) {
		t.Errorf("last_updated = %v, want %v", got.LastUpdated, t1)
	}
}

func TestUpsertLeadIDBeatsEmail(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	a := lead("shared@acme.example")
	a.ID = "lead-a"
	b := lead("shared@acme.example")
	b.ID = "lead-b"

	idA, err := r.UpsertLead(ctx, identity.Resolve(a.ID, a.Contact.WorkEmail, "", ""), a, now)
	if err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	idB, err := r.UpsertLead(ctx, identity.Resolve(b.ID, b.Contact.WorkEmail, "", ""), b, now)
	if err != nil {
		t.Fatalf("upsert b: %v", err)
	}
	if idA == idB {
		t.Fatal("distinct ids with the same email must stay two documents")
	}
}

func TestSearchFiltersAndTechContainment(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	l := lead("ada@acme.example")
	key := identity.Resolve("", l.Contact.WorkEmail, "", "")
	if _, err := r.UpsertLead(ctx, key, l, now); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := r.Search(ctx, domain.SearchCriteria{CompanyDomain: "https://www.acme.example/about"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got.Total != 1 || len(got.Items) != 1 {
		t.Fatalf("domain filter should normalize and match: total=%d", got.Total)
	}
	if !got.FromCache || got.Source != "DB" {
		t.Fatalf("stored page provenance = fromCache %v source %q", got.FromCache, got.Source)
	}

	got, err = r.Search(ctx, domain.SearchCriteria{TechStack: []string{"go"}})
	if err != nil {
		t.Fatalf("tech search: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("tech containment should match, total=%d", got.Total)
	}

	got, err = r.Search(ctx, domain.SearchCriteria{TechStack: []string{"go", "kafka"}})
	if err != nil {
		t.Fatalf("tech search: %v", err)
	}
	if got.Total != 0 {
		t.Fatalf("missing tech tag must not match, total=%d", got.Total)
	}

	// free-text keyword reaches the company domain too
	got, err = r.Search(ctx, domain.SearchCriteria{Keyword: "acme.example"})
	if err != nil {
		t.Fatalf("keyword search: %v", err)
	}
	if got.Total != 1 {
		t.Fatalf("keyword should match on company domain, total=%d", got.Total)
	}
}

func TestPageLeadsNewestUpdatedFirst(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	t0 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	old := lead("old@acme.example")
	if _, err := r.UpsertLead(ctx, identity.Resolve("", old.Contact.WorkEmail, "", ""), old, t0); err != nil {
		t.Fatalf("seed old: %v", err)
	}
	fresh := lead("fresh@acme.example")
	if _, err := r.UpsertLead(ctx, identity.Resolve("", fresh.Contact.WorkEmail, "", ""), fresh, t0.Add(time.Hour)); err != nil {
		t.Fatalf("seed fresh: %v", err)
	}

	items, total, err := r.PageLeads(ctx, 1, 10)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("page total=%d len=%d", total, len(items))
	}
	if items[0].Contact.WorkEmail != "fresh@acme.example" {
		t.Fatalf("most recently updated lead must come first, got %q", items[0].Contact.WorkEmail)
	}
}

func TestUpsertCompanyKeyedOnDomain(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	c := domain.Company{Name: "Acme", Domain: "acme.example", Industry: "SaaS", Source: "Apollo"}
	id1, err := r.UpsertCompany(ctx, c, now)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	c.Industry = "DevTools"
	id2, err := r.UpsertCompany(ctx, c, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("same domain produced two documents: %s vs %s", id1, id2)
	}

	items, total, err := r.PageCompanies(ctx, 1, 10)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if total != 1 || items[0].Industry != "DevTools" {
		t.Fatalf("merge result total=%d industry=%q", total, items[0].Industry)
	}
	if items[0].Source != "Apollo" {
		t.Fatalf("company source did not round-trip, got %q", items[0].Source)
	}

	// blank domains never match each other
	if _, err := r.UpsertCompany(ctx, domain.Company{Name: "Zeta"}, now); err != nil {
		t.Fatalf("blank domain insert: %v", err)
	}
	if _, err := r.UpsertCompany(ctx, domain.Company{Name: "Beta"}, now); err != nil {
		t.Fatalf("blank domain insert: %v", err)
	}
	items, total, err = r.PageCompanies(ctx, 1, 10)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if total != 3 {
		t.Fatalf("blank-domain companies must insert fresh documents, total=%d", total)
	}
	if items[0].Name != "Acme" || items[1].Name != "Beta" || items[2].Name != "Zeta" {
		t.Fatalf("export batch must sort by name, got %q %q %q", items[0].Name, items[1].Name, items[2].Name)
	}
}
