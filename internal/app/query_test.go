package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryIsSearchable(t *testing.T) {
	cases := []struct {
		q    string
		want bool
	}{
		{"", false},
		{"ab", false},
		{" a b ", false},
		{"abc", true},
		{"合", false},
		{"合同", true},
		{"a合", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, queryIsSearchable(tc.q), "%q", tc.q)
	}
}
