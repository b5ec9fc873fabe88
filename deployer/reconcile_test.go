package deployer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name    string
		desired map[string]string
		current map[string]string
		want    map[string]*string
	}{
		{
			"equal mappings produce an empty delta",
			map[string]string{"A": "1", "B": "2"},
			map[string]string{"A": "1", "B": "2"},
			map[string]*string{},
		},
		{
			"both empty",
			map[string]string{},
			map[string]string{},
			map[string]*string{},
		},
		{
			"added key",
			map[string]string{"A": "1"},
			map[string]string{},
			map[string]*string{"A": strPtr("1")},
		},
		{
			"modified key",
			map[string]string{"A": "2"},
			map[string]string{"A": "1"},
			map[string]*string{"A": strPtr("2")},
		},
		{
			"removed key maps to nil",
			map[string]string{},
			map[string]string{"A": "1"},
			map[string]*string{"A": nil},
		},
		{
			"modify and remove together",
			map[string]string{"A": "1"},
			map[string]string{"A": "0", "B": "2"},
			map[string]*string{"A": strPtr("1"), "B": nil},
		},
		{
			"unchanged keys never appear",
			map[string]string{"A": "1", "B": "2", "C": "3"},
			map[string]string{"B": "2", "C": "old"},
			map[string]*string{"A": strPtr("1"), "C": strPtr("3")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDelta(tt.desired, tt.current))
		})
	}
}

// Applying a delta to the current state and recomputing must converge
// to an empty delta in one pass.
func TestComputeDeltaConverges(t *testing.T) {
	desired := map[string]string{"A": "1", "C": "3"}
	current := map[string]string{"A": "0", "B": "2"}

	delta := ComputeDelta(desired, current)

	next := map[string]string{}
	for k, v := range current {
		next[k] = v
	}
	for k, v := range delta {
		if v == nil {
			delete(next, k)
		} else {
			next[k] = *v
		}
	}

	assert.Empty(t, ComputeDelta(desired, next))
}
