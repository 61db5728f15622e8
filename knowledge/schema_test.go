package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoutesPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "empty route list",
			payload: `{"explainer_routes": []}`,
			valid:   true,
		},
		{
			name: "routes with relations",
			payload: `{"explainer_routes": [
				{"pattern": "/docs/cells", "related": [
					{"pattern": "/docs/base_stations", "relationship": "hosted_by"}
				]}
			]}`,
			valid: true,
		},
		{
			name:    "related omitted entirely",
			payload: `{"explainer_routes": [{"pattern": "/docs/ric"}]}`,
			valid:   true,
		},
		{
			name:    "missing explainer_routes",
			payload: `{}`,
			valid:   false,
		},
		{
			name:    "routes not an array",
			payload: `{"explainer_routes": {}}`,
			valid:   false,
		},
		{
			name:    "route missing pattern",
			payload: `{"explainer_routes": [{"related": []}]}`,
			valid:   false,
		},
		{
			name:    "relation missing relationship",
			payload: `{"explainer_routes": [{"pattern": "/a", "related": [{"pattern": "/b"}]}]}`,
			valid:   false,
		},
		{
			name:    "not json",
			payload: `routes?`,
			valid:   false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validateRoutesPayload([]byte(test.payload))
			if test.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
