package money

import (
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/bizops-backend-go/internal/config"
	"github.com/cmlabs-hris/bizops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2_HalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9.166666", "9.17"},
		{"1.005", "1.01"},
		{"1.004", "1"},
		{"6000", "6000"},
	}
	for _, c := range cases {
		got := Round2(decimal.RequireFromString(c.in))
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)), "Round2(%s) = %s", c.in, got)
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(250), decimal.NewFromInt(10))
	assert.Equal(t, "25", got.String())

	got = Percent(decimal.RequireFromString("333.33"), decimal.RequireFromString("7.5"))
	assert.Equal(t, "25", got.String())
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"275":         "275.00",
		"1234.5":      "1,234.50",
		"30000":       "30,000.00",
		"1234567.891": "1,234,567.89",
		"-999.999":    "-1,000.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(decimal.RequireFromString(in)), in)
	}
}

func TestParser_ZeroPolicy(t *testing.T) {
	p := NewParser(config.ParseErrorZero)

	assert.True(t, p.Optional("allowances", "150.50").Equal(decimal.RequireFromString("150.50")))
	assert.True(t, p.Optional("bonuses", "abc").IsZero())
	assert.True(t, p.Optional("other_deductions", "  ").IsZero())
	assert.NoError(t, p.Err())
}

func TestParser_RejectPolicy(t *testing.T) {
	p := NewParser(config.ParseErrorReject)

	assert.True(t, p.Optional("bonuses", "12x").IsZero())
	assert.True(t, p.Optional("allowances", "").IsZero())

	err := p.Err()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "bonuses")
	assert.NotContains(t, verrs.ToMap(), "allowances")
}

func TestParser_NegativeAlwaysRejected(t *testing.T) {
	p := NewParser(config.ParseErrorZero)
	p.Optional("insurance_deduction", "-5")
	assert.Error(t, p.Err())
}

func TestParser_OptionalPtr(t *testing.T) {
	p := NewParser(config.ParseErrorZero)
	assert.Nil(t, p.OptionalPtr("allowances", nil))

	raw := "42"
	got := p.OptionalPtr("allowances", &raw)
	require.NotNil(t, got)
	assert.True(t, got.Equal(decimal.NewFromInt(42)))
}

func TestInput_UnmarshalJSON(t *testing.T) {
	var req struct {
		A Input  `json:"a"`
		B Input  `json:"b"`
		C Input  `json:"c"`
		D *Input `json:"d"`
		E *Input `json:"e"`
	}
	err := json.Unmarshal([]byte(`{"a":"150.50","b":42.5,"c":null,"e":"x"}`), &req)
	require.NoError(t, err)

	assert.Equal(t, Input("150.50"), req.A)
	assert.Equal(t, Input("42.5"), req.B)
	assert.Equal(t, Input(""), req.C)
	assert.Nil(t, req.D.Ptr())
	require.NotNil(t, req.E.Ptr())
	assert.Equal(t, "x", *req.E.Ptr())
}

func TestPercent_RoundsRateFractionToFourPlaces(t *testing.T) {
	// 12.345 / 100 = 0.12345 -> 0.1235 before multiplying
	got := Percent(decimal.NewFromInt(1000), decimal.RequireFromString("12.345"))
	assert.Equal(t, "123.5", got.String())
}

func TestParser_Rate(t *testing.T) {
	p := NewParser(config.ParseErrorZero)
	assert.Equal(t, "12.35", p.Rate("tax_rate", "12.35").String())
	assert.True(t, p.Rate("tax_rate", "").IsZero())
	assert.True(t, p.Rate("tax_rate", "n/a").IsZero())
	assert.NoError(t, p.Err())

	for _, raw := range []string{"12.345", "1000", "100.5"} {
		p := NewParser(config.ParseErrorZero)
		assert.True(t, p.Rate("tax_rate", raw).IsZero(), raw)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, p.Err(), &verrs, raw)
		assert.Contains(t, verrs.ToMap(), "tax_rate", raw)
	}
}
