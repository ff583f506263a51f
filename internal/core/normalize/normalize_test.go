package normalize

import "testing"

func TestKeywordFoldsCaseAndWidth(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  Golang   Engineer ", "golang engineer"},
		{"ＳＡＬＥＳ", "sales"},
		{"Café", "cafe"},   // precomposed accent
		{"Café", "cafe"}, // decomposed accent
		{"Zürich", "zurich"},
		{"CTO​", "cto"}, // zero-width space stripped
	}
	for _, tc := range cases {
		if got := Keyword(tc.in); got != tc.want {
			t.Fatalf("Keyword(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEmailLowercasesAndTrims(t *testing.T) {
	if got := Email("  Jane.Doe@Example.COM "); got != "jane.doe@example.com" {
		t.Fatalf("Email = %q", got)
	}
}

func TestDomainCanonicalizes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Example.com", "example.com"},
		{"https://www.example.com/about", "example.com"},
		{"http://example.io/", "example.io"},
		{"  acme.dev  ", "acme.dev"},
	}
	for _, tc := range cases {
		if got := Domain(tc.in); got != tc.want {
			t.Fatalf("Domain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
