package server_test

import (
	"testing"

	"pscan/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	tests := []struct {
		name    string
		cfg     server.Config
		address string
		url     string
	}{
		{"Loopback", server.Config{Host: "127.0.0.1", Port: "8765"}, "127.0.0.1:8765", "http://127.0.0.1:8765/"},
		{"All Interfaces", server.Config{Host: "0.0.0.0", Port: "80"}, "0.0.0.0:80", "http://127.0.0.1:80/"},
		{"Empty Host", server.Config{Port: "9000"}, ":9000", "http://127.0.0.1:9000/"},
		{"IPv6", server.Config{Host: "::1", Port: "8765"}, "[::1]:8765", "http://[::1]:8765/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.address, tt.cfg.Address())
			assert.Equal(t, tt.url, tt.cfg.URL())
		})
	}
}
