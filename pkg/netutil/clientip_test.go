package netutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain v4", "203.0.113.7", "203.0.113.7"},
		{"mapped v4", "::ffff:203.0.113.7", "203.0.113.7"},
		{"mapped v4 upper", "::FFFF:10.1.2.3", "10.1.2.3"},
		{"v4 with port", "198.51.100.2:5123", "198.51.100.2"},
		{"v6 with port", "[2001:db8::1]:443", "2001:db8::1"},
		{"v6 zone", "fe80::1%eth0", "fe80::1"},
		{"whitespace", "  192.0.2.1 ", "192.0.2.1"},
		{"garbage", "not-an-ip", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIP(tt.in))
		})
	}
}

func TestClientAddressFallbackChain(t *testing.T) {
	assert.Equal(t, "192.0.2.10", ClientAddress("::ffff:192.0.2.10", "198.51.100.1", "203.0.113.1"))
	assert.Equal(t, "198.51.100.1", ClientAddress("", "198.51.100.1, 10.0.0.1", "203.0.113.1"))
	assert.Equal(t, "203.0.113.1", ClientAddress("", "unknown", "203.0.113.1"))
	assert.Equal(t, "", ClientAddress("", "", ""))
}
