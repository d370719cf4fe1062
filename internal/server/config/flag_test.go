package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", ":9090", "-d", "dsn", "-s", "key", "-t", "10", "-r", "60", "-b", "imgs"}, expectPanic: false,
			expected: &Config{EndpointAddrHTTP: ":9090", DatabaseDSN: "dsn", SecretKey: "key",
				AccessTokenValidityDuration: 10 * time.Minute, RefreshTokenValidityDuration: 60 * time.Minute, S3Bucket: "imgs"}},
		{name: "Test2 incorrect validity duration", args: []string{"cmd", "-a", ":9090", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
