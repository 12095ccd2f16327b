package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	content, err := Render(Layout{
		Title:    "INVOICE",
		Subtitle: "ACME-2025-001",
		Meta:     []SummaryRow{{Label: "Issue date", Value: "2025-03-10"}},
		Blocks:   []Block{{Heading: "Bill to", Lines: []string{"Globex Corp", "billing@globex.test"}}},
		Table: &Table{
			Columns: []Column{{Header: "Description", Width: 100}, {Header: "Amount", Width: 80, Align: AlignRight}},
			Rows:    [][]string{{"Design work", "200.00"}, {"Hosting"}},
		},
		Summary: []SummaryRow{{Label: "Total", Value: "275.00", Bold: true}},
		Footer:  []string{"Thank you for your business."},
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestRender_Minimal(t *testing.T) {
	content, err := Render(Layout{Title: "PAYSLIP"})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestRender_InvalidLogoIsSkipped(t *testing.T) {
	content, err := Render(Layout{Title: "INVOICE", Logo: []byte("not a jpeg")})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
