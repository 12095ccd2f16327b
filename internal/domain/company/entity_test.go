package company

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Acme Architects", "ACME"},
		{"  studio 9 design ", "STUD"},
		{"A&B", "ABOR"},
		{"K", "KORG"},
		{"xyz", "XYZO"},
		{"", "ORG"},
		{"   ", "ORG"},
		{"---", "ORG"},
		{"Ünïcode Ltd", "NCOD"},
		{"42 Build", "42BU"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Code(c.name), "Code(%q)", c.name)
	}
}

func TestCompany_Location(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skip("tzdata not available")
	}

	assert.Equal(t, jakarta, Company{Timezone: "Asia/Jakarta"}.Location(time.UTC))
	assert.Equal(t, time.UTC, Company{}.Location(time.UTC))
	assert.Equal(t, time.UTC, Company{Timezone: "Nowhere/Else"}.Location(time.UTC))
}
