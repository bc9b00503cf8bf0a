package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{"empty backend", Config{DataDir: "/tmp/recipes"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "postgres", DataDir: "/tmp/recipes"}, ErrBackendUnknown},
		{"backend names are case sensitive", Config{Backend: "SQLite"}, ErrBackendUnknown},
		{"sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/recipes"}, nil},
		{"empty data dir is left to the caller", Config{Backend: BackendSQLite}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
