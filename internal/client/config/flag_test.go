package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "Test1 OK", args: []string{"-a", "http://10.0.0.1:9090", "-t", "10", "-d", "/tmp/gd", "-l", "warn"},
			expected: &Config{ServerURL: "http://10.0.0.1:9090", RequestTimeout: 10 * time.Second, DataDir: "/tmp/gd", LogLevel: "warn"}},
		{name: "Test2 unrelated flags ignored", args: []string{"-c", "x.json", "-t", "3", "-verbose"},
			expected: &Config{RequestTimeout: 3 * time.Second}},
		{name: "Test3 incorrect timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(config, tt.expected))
		})
	}
}
