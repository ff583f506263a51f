package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"prospector/internal/modkit/repokit"
	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/testkit"
	"prospector/internal/services/api/sequences/domain"
	"prospector/internal/services/api/sequences/repo"
)

// stubQ satisfies repokit.Queryer; the memory repo never touches it
type stubQ struct{}

func (stubQ) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	panic("not used")
}
func (stubQ) Query(context.Context, string, ...any) (repokit.Rows, error) { panic("not used") }
func (stubQ) QueryRow(context.Context, string, ...any) repokit.Row       { panic("not used") }

type memRepo struct {
	stored map[string]domain.Sequence
}

func (m *memRepo) Insert(_ context.Context, s domain.Sequence) error {
	if m.stored == nil {
		m.stored = map[string]domain.Sequence{}
	}
	m.stored[s.ID] = s
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (domain.Sequence, error) {
	s, ok := m.stored[id]
	if !ok {
		return domain.Sequence{}, perr.NotFoundf("sequence %s", id)
	}
	return s, nil
}

func (m *memRepo) Page(context.Context, int, int) ([]domain.Sequence, int64, error) {
	return nil, 0, nil
}

type memLogs struct {
	appended []domain.EngagementLog
	fail     error
}

func (m *memLogs) Append(_ context.Context, logs []domain.EngagementLog) error {
	if m.fail != nil {
		return m.fail
	}
	m.appended = append(m.appended, logs...)
	return nil
}

func newTestSvc(t *testing.T) (*Svc, *memRepo, *memLogs) {
	t.Helper()
	mem := &memRepo{}
	logs := &memLogs{}
	svc := New(stubQ{}, repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem }), logs)
	return svc, mem, logs
}

func seed(t *testing.T, mem *memRepo, steps ...domain.Step) string {
	t.Helper()
	seq := domain.Sequence{ID: "seq-1", Name: "Q3 outreach", Steps: steps}
	if err := mem.Insert(context.Background(), seq); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return seq.ID
}

func TestNewRequiresDependencies(t *testing.T) {
	mem := &memRepo{}
	binder := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	logs := &memLogs{}

	testkit.MustPanic(t, func() { New(nil, binder, logs) })
	testkit.MustPanic(t, func() { New(stubQ{}, nil, logs) })
	testkit.MustPanic(t, func() { New(stubQ{}, binder, nil) })
	testkit.MustNotPanic(t, func() { New(stubQ{}, binder, logs) })
}

func TestCreateNormalizesSteps(t *testing.T) {
	svc, mem, _ := newTestSvc(t)

	got, err := svc.Create(context.Background(), domain.CreateRequest{
		Name: "warmup",
		Steps: []domain.Step{
			{Order: 2, Type: "SMS", WaitHours: -4, Template: "hi"},
			{Order: 1, Type: "call", WaitHours: 0, Template: "intro"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == "" {
		t.Fatal("created sequence has no id")
	}
	if len(got.Steps) != 2 || got.Steps[0].Order != 1 {
		t.Fatalf("steps not sorted by order: %+v", got.Steps)
	}
	if got.Steps[1].Type != "email" {
		t.Errorf("unknown channel should normalize to email, got %q", got.Steps[1].Type)
	}
	if got.Steps[0].WaitHours != domain.DefaultWaitHours || got.Steps[1].WaitHours != domain.DefaultWaitHours {
		t.Errorf("non-positive waits should default to %d: %+v", domain.DefaultWaitHours, got.Steps)
	}
	if _, ok := mem.stored[got.ID]; !ok {
		t.Error("sequence was not persisted")
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _, _ := newTestSvc(t)
	if _, err := svc.Create(context.Background(), domain.CreateRequest{Name: "  "}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

func TestStartUsesLowestOrderStep(t *testing.T) {
	svc, mem, logs := newTestSvc(t)
	id := seed(t, mem,
		domain.Step{Order: 3, Type: "task", Template: "later"},
		domain.Step{Order: 1, Type: "call", Template: "ring first"},
	)

	got, err := svc.Start(context.Background(), id, []string{"l1", "l2", "l3"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got.StepOrder != 1 || got.Channel != "call" {
		t.Fatalf("first step = order %d channel %q", got.StepOrder, got.Channel)
	}
	if got.Started != 3 || len(logs.appended) != 3 {
		t.Fatalf("started=%d appended=%d", got.Started, len(logs.appended))
	}
	for _, l := range logs.appended {
		if l.Direction != "out" || l.Status != "sent" {
			t.Errorf("log = %+v", l)
		}
		if l.BodyPreview != "ring first" {
			t.Errorf("preview = %q", l.BodyPreview)
		}
		if l.ProviderRef != id {
			t.Errorf("log must carry the sequence id as provider ref, got %q", l.ProviderRef)
		}
	}
}

func TestStartTieKeepsOriginalPosition(t *testing.T) {
	svc, mem, _ := newTestSvc(t)
	id := seed(t, mem,
		domain.Step{Order: 1, Type: "call", Template: "a"},
		domain.Step{Order: 1, Type: "task", Template: "b"},
	)

	got, err := svc.Start(context.Background(), id, []string{"l1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got.Channel != "call" {
		t.Fatalf("tie must keep the earliest listed step, got channel %q", got.Channel)
	}
}

func TestStartSharesOneTimestampAcrossBatch(t *testing.T) {
	svc, mem, logs := newTestSvc(t)
	id := seed(t, mem, domain.Step{Order: 1, Type: "email", Template: "hello"})

	fixed := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	ticks := 0
	svc.now = func() time.Time {
		ticks++
		return fixed.Add(time.Duration(ticks) * time.Second)
	}

	if _, err := svc.Start(context.Background(), id, []string{"l1", "l2"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if logs.appended[0].OccurredAt != logs.appended[1].OccurredAt {
		t.Fatalf("batch timestamps differ: %v vs %v",
			logs.appended[0].OccurredAt, logs.appended[1].OccurredAt)
	}
}

func TestStartNormalizesUnknownChannel(t *testing.T) {
	svc, mem, logs := newTestSvc(t)
	id := seed(t, mem, domain.Step{Order: 1, Type: "SMS", Template: "ping"})

	got, err := svc.Start(context.Background(), id, []string{"l1"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if got.Channel != "email" || logs.appended[0].Channel != "email" {
		t.Fatalf("channel = %q / %q, want email", got.Channel, logs.appended[0].Channel)
	}
}

func TestStartAcceptsCasedAndPaddedChannels(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Call", "call"},
		{" task ", "task"},
		{"EMAIL", "email"},
	}
	for _, tc := range cases {
		svc, mem, logs := newTestSvc(t)
		id := seed(t, mem, domain.Step{Order: 1, Type: tc.label, Template: "ping"})

		got, err := svc.Start(context.Background(), id, []string{"l1"})
		if err != nil {
			t.Fatalf("start %q: %v", tc.label, err)
		}
		if got.Channel != tc.want || logs.appended[0].Channel != tc.want {
			t.Fatalf("label %q: channel = %q / %q, want %q",
				tc.label, got.Channel, logs.appended[0].Channel, tc.want)
		}
	}
}

func TestStartTruncatesBodyPreview(t *testing.T) {
	svc, mem, logs := newTestSvc(t)

	long := strings.Repeat("a", 200)
	exact := strings.Repeat("b", 180)
	id := seed(t, mem, domain.Step{Order: 1, Type: "email", Template: long})
	seed2 := domain.Sequence{ID: "seq-2", Name: "n", Steps: []domain.Step{{Order: 1, Type: "email", Template: exact}}}
	if err := mem.Insert(context.Background(), seed2); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Start(context.Background(), id, []string{"l1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if want := strings.Repeat("a", 180) + "…"; logs.appended[0].BodyPreview != want {
		t.Fatalf("truncated preview = %q", logs.appended[0].BodyPreview)
	}

	if _, err := svc.Start(context.Background(), "seq-2", []string{"l1"}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if logs.appended[1].BodyPreview != exact {
		t.Fatalf("exactly-180 template must pass through untouched, got %d runes",
			len([]rune(logs.appended[1].BodyPreview)))
	}
}

func TestStartFailsOnMissingOrEmptySequence(t *testing.T) {
	svc, mem, _ := newTestSvc(t)

	if _, err := svc.Start(context.Background(), "nope", []string{"l1"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing sequence: err = %v", err)
	}

	id := seed(t, mem) // zero steps
	if _, err := svc.Start(context.Background(), id, []string{"l1"}); err == nil {
		t.Fatal("zero-step sequence must not start")
	} else {
		testkit.MustContain(t, err.Error(), "has no steps")
	}

	if _, err := svc.Start(context.Background(), id, nil); err == nil {
		t.Fatal("empty lead batch must be rejected")
	}
}
