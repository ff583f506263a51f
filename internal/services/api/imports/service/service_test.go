package service

import (
	"context"
	"testing"

	leadsdomain "prospector/internal/services/api/leads/domain"
)

type stubLeads struct {
	lastCriteria leadsdomain.SearchCriteria
	leads        leadsdomain.Paged[leadsdomain.Lead]
	companies    leadsdomain.Paged[leadsdomain.Company]
}

func (s *stubLeads) Search(_ context.Context, c leadsdomain.SearchCriteria) (leadsdomain.Paged[leadsdomain.Lead], error) {
	s.lastCriteria = c
	return s.leads, nil
}

func (s *stubLeads) SearchCompanies(_ context.Context, c leadsdomain.SearchCriteria) (leadsdomain.Paged[leadsdomain.Company], error) {
	s.lastCriteria = c
	return s.companies, nil
}

func (s *stubLeads) GetByID(context.Context, string) (leadsdomain.Lead, error) {
	panic("not used")
}

func (s *stubLeads) UpsertLeads(context.Context, []leadsdomain.Lead) ([]string, error) {
	panic("not used")
}

func (s *stubLeads) UpsertCompanies(context.Context, []leadsdomain.Company) ([]string, error) {
	panic("not used")
}

func (s *stubLeads) PageLeads(context.Context, int, int) (leadsdomain.Paged[leadsdomain.Lead], error) {
	panic("not used")
}

func (s *stubLeads) PageCompanies(context.Context, int, int) (leadsdomain.Paged[leadsdomain.Company], error) {
	panic("not used")
}

func TestImportPeopleForcesProvider(t *testing.T) {
	stub := &stubLeads{leads: leadsdomain.Paged[leadsdomain.Lead]{
		Items:  []leadsdomain.Lead{{ID: "l1"}, {ID: "l2"}},
		Source: "Apollo",
	}}
	svc := New(stub)

	got, err := svc.ImportPeople(context.Background(), Request{
		SearchRequest: leadsdomain.SearchRequest{Keyword: "cto"},
		Forced:        true,
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !stub.lastCriteria.ForceProvider {
		t.Error("forced import must set ForceProvider on the criteria")
	}
	if !got.OK || got.Imported != 2 || got.Source != "Apollo" {
		t.Fatalf("result = %+v", got)
	}
}

func TestImportCompaniesPassesThroughSource(t *testing.T) {
	stub := &stubLeads{companies: leadsdomain.Paged[leadsdomain.Company]{
		Items:  []leadsdomain.Company{{Name: "Acme"}},
		Source: "Apollo",
	}}
	svc := New(stub)

	got, err := svc.ImportCompanies(context.Background(), Request{
		SearchRequest: leadsdomain.SearchRequest{Domain: "acme.example"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stub.lastCriteria.ForceProvider {
		t.Error("unforced import must leave ForceProvider unset")
	}
	if got.Imported != 1 || got.Source != "Apollo" {
		t.Fatalf("result = %+v", got)
	}
}
