package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayAddress(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"two-letter state with zip", "100 Main St, Springfield, MA 01103", "100 Main St, Springfield"},
		{"two-letter state without zip", "100 Main St, Springfield, MA", "100 Main St, Springfield"},
		{"full state name", "12 Elm Ave, Concord, New Hampshire", "12 Elm Ave, Concord"},
		{"full state name with zip", "12 Elm Ave, Concord, New Hampshire 03301", "12 Elm Ave, Concord"},
		{"zip plus four", "45 Oak Rd, Austin, TX 78701-2345", "45 Oak Rd, Austin"},
		{"lower-case state", "45 Oak Rd, Austin, tx 78701", "45 Oak Rd, Austin"},
		{"no suffix", "100 Main St, Springfield", "100 Main St, Springfield"},
		{"city that is not a state", "77 Lake Dr, Portland", "77 Lake Dr, Portland"},
		{"state-named city kept", "9 Pine St, La Grange, TX 78945", "9 Pine St, La Grange"},
		{"empty", "", ""},
		{"surrounding whitespace", "  1 A St, Boston, MA 02108  ", "1 A St, Boston"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayAddress(tt.in))
		})
	}
}
