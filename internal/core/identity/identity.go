// Package identity resolves the match key used to deduplicate leads on upsert
package identity

import (
	"prospector/internal/core/normalize"
	pstr "prospector/internal/platform/strings"
)

// Kind names the identity key a lead resolved to
type Kind uint8

const (
	// KindID matches on the stable opaque lead id
	KindID Kind = iota

	// KindWorkEmail matches on the lead's work email
	KindWorkEmail

	// KindProfile matches on the conjunction of profile URL and company domain
	// both parts may be blank, which is a valid if weak match key
	KindProfile
)

// String returns a short label for logs
func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindWorkEmail:
		return "work_email"
	default:
		return "profile"
	}
}

// Key is the resolved identity of one lead
// exactly one of the three match shapes applies, indicated by Kind
type Key struct {
	Kind Kind

	ID            string
	WorkEmail     string
	ProfileURL    string
	CompanyDomain string
}

// Resolve picks the strongest available identity in strict priority order:
// explicit id, then work email, then profile URL + company domain conjunction.
// The profile key always resolves, so Resolve never fails
func Resolve(id, workEmail, profileURL, companyDomain string) Key {
	if !pstr.Blank(id) {
		return Key{Kind: KindID, ID: id}
	}
	if !pstr.Blank(workEmail) {
		return Key{Kind: KindWorkEmail, WorkEmail: normalize.Email(workEmail)}
	}
	return Key{
		Kind:          KindProfile,
		ProfileURL:    profileURL,
		CompanyDomain: normalize.Domain(companyDomain),
	}
}
