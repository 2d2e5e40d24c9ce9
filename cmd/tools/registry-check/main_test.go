// cmd/tools/registry-check/main_test.go
package main

import (
	"strings"
	"testing"

	"career-compass/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistry_Default(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)
	assert.NoError(t, validateRegistry(reg))
}

func TestValidateRegistry_Rejects(t *testing.T) {
	schema := map[string]interface{}{"type": "object"}
	tests := []struct {
		name    string
		reg     *registry.ActivityRegistry
		wantErr string
	}{
		{"empty", &registry.ActivityRegistry{}, "no activities"},
		{"missing display name", &registry.ActivityRegistry{Activities: []registry.Activity{
			{ID: "a", TaskType: "a", Category: "reports", InputSchema: schema},
		}}, "DisplayName"},
		{"missing schema", &registry.ActivityRegistry{Activities: []registry.Activity{
			{ID: "a", TaskType: "a", DisplayName: "A", Category: "reports"},
		}}, "no inputSchema"},
		{"bad timeout", &registry.ActivityRegistry{Activities: []registry.Activity{
			{ID: "a", TaskType: "a", DisplayName: "A", Category: "reports", InputSchema: schema, Timeout: "soon"},
		}}, "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRegistry(tt.reg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUsage_SingleTrailingNewline(t *testing.T) {
	assert.True(t, strings.HasSuffix(usage, "\n"))
	assert.False(t, strings.HasSuffix(usage, "\n\n"))
	assert.Contains(t, usage, "check-input")
}
