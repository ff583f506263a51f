package service

import (
	"context"
	"testing"

	leadsdomain "prospector/internal/services/api/leads/domain"
)

type stubLeads struct {
	lastPage int
	lastSize int
	total    int64
}

func (s *stubLeads) PageLeads(_ context.Context, page, pageSize int) (leadsdomain.Paged[leadsdomain.Lead], error) {
	s.lastPage, s.lastSize = page, pageSize
	n := pageSize
	if int64(page)*int64(pageSize) > s.total {
		n = int(s.total - int64(page-1)*int64(pageSize))
		if n < 0 {
			n = 0
		}
	}
	return leadsdomain.Paged[leadsdomain.Lead]{
		Items:    make([]leadsdomain.Lead, n),
		Page:     page,
		PageSize: pageSize,
		Total:    s.total,
		Source:   "DB",
	}, nil
}

func (s *stubLeads) PageCompanies(_ context.Context, page, pageSize int) (leadsdomain.Paged[leadsdomain.Company], error) {
	s.lastPage, s.lastSize = page, pageSize
	return leadsdomain.Paged[leadsdomain.Company]{
		Items:    []leadsdomain.Company{},
		Page:     page,
		PageSize: pageSize,
		Total:    s.total,
		Source:   "DB",
	}, nil
}

func (s *stubLeads) Search(context.Context, leadsdomain.SearchCriteria) (leadsdomain.Paged[leadsdomain.Lead], error) {
	panic("not used")
}

func (s *stubLeads) SearchCompanies(context.Context, leadsdomain.SearchCriteria) (leadsdomain.Paged[leadsdomain.Company], error) {
	panic("not used")
}

func (s *stubLeads) GetByID(context.Context, string) (leadsdomain.Lead, error) { panic("not used") }

func (s *stubLeads) UpsertLeads(context.Context, []leadsdomain.Lead) ([]string, error) {
	panic("not used")
}

func (s *stubLeads) UpsertCompanies(context.Context, []leadsdomain.Company) ([]string, error) {
	panic("not used")
}

func TestLeadBatchNextPageHint(t *testing.T) {
	stub := &stubLeads{total: 25}
	svc := New(stub)

	got, err := svc.LeadBatch(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got.NextPage == nil || *got.NextPage != 3 {
		t.Fatalf("total=25 page=2 size=10: nextPage = %v, want 3", got.NextPage)
	}

	stub.total = 20
	got, err = svc.LeadBatch(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got.NextPage != nil {
		t.Fatalf("total=20 page=2 size=10: nextPage = %v, want nil", *got.NextPage)
	}
}

func TestBatchSizeDefaults(t *testing.T) {
	stub := &stubLeads{total: 5}
	svc := New(stub)

	if _, err := svc.LeadBatch(context.Background(), 0, 0); err != nil {
		t.Fatalf("batch: %v", err)
	}
	if stub.lastPage != 1 || stub.lastSize != DefaultBatchSize {
		t.Fatalf("page=%d size=%d, want 1/%d", stub.lastPage, stub.lastSize, DefaultBatchSize)
	}
}

func TestCompanyBatchKeepsSource(t *testing.T) {
	stub := &stubLeads{total: 0}
	svc := New(stub)

	got, err := svc.CompanyBatch(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if got.Source != "DB" || got.NextPage != nil || len(got.Items) != 0 {
		t.Fatalf("batch = %+v", got)
	}
}
