package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"LastSync", "lastsync"},
		{"lastSync", "lastsync"},
		{"last_sync", "lastsync"},
		{"last-sync", "lastsync"},
		{"LAST_SYNC", "lastsync"},
		{"HTTPTimeout", "httptimeout"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIdent(tt.input))
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"CachedValue", []string{"Cached", "Value"}},
		{"cachedValue", []string{"cached", "Value"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"parseURL", []string{"parse", "URL"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"on_put", []string{"on", "put"}},
		{"__x__", []string{"x"}},
		{"ALLCAPS", []string{"ALLCAPS"}},
		{"AbC", []string{"Ab", "C"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Example", "example"},
		{"CacheOnPutExample", "cache_on_put_example"},
		{"HTTPSettings", "http_settings"},
		{"already_snake", "already_snake"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.input))
		})
	}
}
