package company

import (
	"strings"
	"time"
	"unicode"
)

type Company struct {
	ID        string
	Name      string
	Email     *string
	Address   *string
	Phone     *string
	LogoPath  *string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the company's time zone, falling back to fallback when the
// stored name is blank or unknown.
func (c Company) Location(fallback *time.Location) *time.Location {
	if strings.TrimSpace(c.Timezone) == "" {
		return fallback
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// Code derives the short organization code used as the invoice number prefix:
// the first four uppercase alphanumerics of the name, padded from "ORG" when shorter.
func Code(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(name)) {
		if r <= unicode.MaxASCII && (unicode.IsUpper(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}

	code := b.String()
	switch {
	case code == "":
		return "ORG"
	case len(code) >= 4:
		return code[:4]
	default:
		return code + "ORG"[:4-len(code)]
	}
}
