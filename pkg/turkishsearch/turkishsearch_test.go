package turkishsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Sağlık", "saglik"},
		{"mühendislik", "muhendislik"},
		{"KOÇLUK", "kocluk"},
		{"tasarım ve yaratıcılık", "tasarim ve yaraticilik"},
		{"İstanbul", "istanbul"}, // noktalı büyük İ, ToLower'ın i+U+0307 çıktısına düşmemeli
		{"İYİ YAŞAM", "iyi yasam"},
		{"finans", "finans"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, Normalize(tc.in), "girdi: %q", tc.in)
	}
}

func TestSQLFilter(t *testing.T) {
	fragment, args := SQLFilter("users.name", "Sağlık")

	assert.Contains(t, fragment, "translate(lower(users.name)")
	assert.Contains(t, fragment, "LIKE ?")
	assert.Equal(t, []interface{}{"%saglik%"}, args)
}
