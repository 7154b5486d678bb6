package logx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymizeIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"203.0.113.77:4242", "203.0.113.0"},
		{"203.0.113.77", "203.0.113.0"},
		{"[::1]:8080", "127.0.0.1"},
		{"127.0.0.1:3000", "127.0.0.1"},
		{"[2001:db8:85a3:8d3:1319:8a2e:370:7348]:443", "2001:db8:85a3:8d3::"},
		{"not-an-ip", "unknown_ip"},
		{"", "unknown_ip"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, anonymizeIP(tt.in))
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer

	prod := newLogger(&buf, false)
	prod.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	prod.Info().Str("room_id", "r1").Msg("shown")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "r1", line["room_id"])

	buf.Reset()
	dev := newLogger(&buf, true)
	dev.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestIsWebSocketUpgrade(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	assert.False(t, isWebSocketUpgrade(req))

	req.Header.Set("Upgrade", "WebSocket")
	assert.True(t, isWebSocketUpgrade(req))
}
