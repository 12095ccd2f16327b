// Package money holds the decimal helpers shared by payroll and invoicing.
package money

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two places, which is half-up for the
// non-negative amounts handled here.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RateScale is the number of decimals a percentage rate may carry; rates are
// stored as NUMERIC(5,2).
const RateScale = 2

// Percent returns round2(amount × round4(rate / 100)).
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate.Div(hundred).Round(4)))
}

// ValidRate reports whether rate is within [0, 100] with at most RateScale decimals.
func ValidRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && !rate.GreaterThan(hundred) && rate.Exponent() >= -RateScale
}

// Format renders d with two decimals and comma thousands separators, e.g. 1,234.50.
func Format(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Parser turns optional user-supplied numeric strings into decimals.
// Blank input is zero under either policy.
type Parser struct {
	policy config.ParseErrorPolicy
	errs   validator.ValidationErrors
}

func NewParser(policy config.ParseErrorPolicy) *Parser {
	return &Parser{policy: policy}
}

// Optional parses raw for field. Under the zero policy a malformed value is
// logged and becomes zero; under the reject policy it is recorded and reported by Err.
func (p *Parser) Optional(field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		if p.policy == config.ParseErrorReject {
			p.errs.Add(field, fmt.Sprintf("%q is not a valid number", raw))
		} else {
			slog.Warn("Invalid numeric input treated as zero", "field", field, "value", raw)
		}
		return decimal.Zero
	}
	if d.IsNegative() {
		p.errs.Add(field, "must be non-negative")
		return decimal.Zero
	}
	return d
}

// Rate parses an optional percentage. Malformed input follows the policy like
// Optional; a number outside [0, 100] or with more than RateScale decimals is
// always a field error.
func (p *Parser) Rate(field, raw string) decimal.Decimal {
	if _, err := decimal.NewFromString(strings.TrimSpace(raw)); err != nil {
		return p.Optional(field, raw)
	}
	d := p.Optional(field, raw)
	if !ValidRate(d) {
		p.errs.Add(field, fmt.Sprintf("must be between 0 and 100 with at most %d decimals", RateScale))
		return decimal.Zero
	}
	return d
}

// OptionalPtr is Optional for fields that may be omitted entirely.
// It returns nil when raw is nil so callers can tell "absent" from "zero".
func (p *Parser) OptionalPtr(field string, raw *string) *decimal.Decimal {
	if raw == nil {
		return nil
	}
	d := p.Optional(field, *raw)
	return &d
}

// Err reports the collected field errors.
func (p *Parser) Err() error {
	return p.errs.Err()
}

// Input is an optional numeric field that accepts a JSON string, a JSON number
// or null. Parsing is deferred to a Parser so the configured policy applies.
type Input string

func (i *Input) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*i = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Input(s)
	default:
		*i = Input(raw)
	}
	return nil
}

// Ptr converts an optional Input for Parser.OptionalPtr.
func (i *Input) Ptr() *string {
	if i == nil {
		return nil
	}
	s := string(*i)
	return &s
}
