package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"Souza", `%souza%`},
		{"%", `%\%%`},
		{"A_a", `%a\_a%`},
		{`c:\tmp`, `%c:\\tmp%`},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.term))
		})
	}
}
