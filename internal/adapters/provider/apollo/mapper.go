package apollo

import (
	"encoding/json"

	pstr "prospector/internal/platform/strings"
	"prospector/internal/services/api/leads/domain"
)

// mapLead converts one provider person record into the unified lead shape
func mapLead(rec personRecord) domain.Lead {
	l := domain.Lead{
		Person: domain.Person{
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Title:      rec.Title,
			Department: rec.Department,
			Seniority:  rec.Seniority,
			ProfileURL: rec.LinkedinURL,
			Location:   rec.Location,
			Skills:     rec.Skills,
		},
		Company: snapshot(rec.Company),
		Contact: contact(rec),
		Source:  ProviderName,
	}
	if !pstr.Blank(rec.ID) {
		l.ProviderRefs = map[string]string{ProviderName: rec.ID}
	}
	return l
}

// contact picks channels by their declared type
// emailVerified is true iff any work-typed email is marked verified
func contact(rec personRecord) domain.ContactChannels {
	out := domain.ContactChannels{
		TwitterURL: rec.Socials.Twitter,
		GithubURL:  rec.Socials.Github,
	}
	for _, e := range rec.Emails {
		switch e.Type {
		case "work":
			if out.WorkEmail == "" {
				out.WorkEmail = e.Address
			}
			if e.Verified {
				out.EmailVerified = true
			}
		case "personal":
			if out.PersonalEmail == "" {
				out.PersonalEmail = e.Address
			}
		}
	}
	for _, p := range rec.Phones {
		switch p.Type {
		case "direct":
			if out.DirectPhone == "" {
				out.DirectPhone = p.Number
			}
		case "mobile":
			if out.MobilePhone == "" {
				out.MobilePhone = p.Number
			}
		case "company":
			if out.CompanyPhone == "" {
				out.CompanyPhone = p.Number
			}
		}
	}
	return out
}

func snapshot(rec companyRecord) domain.CompanySnapshot {
	return domain.CompanySnapshot{
		Name:       rec.Name,
		Domain:     rec.Domain,
		Industry:   rec.Industry,
		Size:       rec.Size,
		RevenueUSD: rec.RevenueUSD,
		HQLocation: rec.HQLocation,
		TechStack:  rec.TechStack,
		ProfileURL: rec.LinkedinURL,
	}
}

// mapCompany converts one provider org record into the full company shape
// the raw record is kept under this provider's name for audit reference
func mapCompany(rec companyRecord) domain.Company {
	c := domain.Company{
		Name:       rec.Name,
		Domain:     rec.Domain,
		Industry:   rec.Industry,
		Size:       rec.Size,
		RevenueUSD: rec.RevenueUSD,
		HQLocation: rec.HQLocation,
		TechStack:  rec.TechStack,
		ProfileURL: rec.LinkedinURL,
		Source:     ProviderName,
	}
	if raw, err := json.Marshal(rec); err == nil {
		c.ProviderPayloads = map[string]json.RawMessage{ProviderName: raw}
	}
	return c
}
