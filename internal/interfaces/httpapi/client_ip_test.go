package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "203.0.113.7", "X-Real-IP": "198.51.100.1"}, remote: "10.0.0.1:1234", want: "203.0.113.7"},
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "198.51.100.9"},
		{name: "remote addr fallback", remote: "192.0.2.10:5555", want: "192.0.2.10"},
		{name: "garbage headers skipped", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.11:80", want: "192.0.2.11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := resolveClientIP(req); got != tt.want {
				t.Fatalf("resolveClientIP()=%q want=%q", got, tt.want)
			}
		})
	}
}
