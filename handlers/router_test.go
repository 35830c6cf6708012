package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mernspace-auth/testutil"

	"github.com/stretchr/testify/assert"
)

// remoteAddrsSeen sends one request per forwarded address from the same peer
// and returns the RemoteAddr the inner handler observed for each.
func remoteAddrsSeen(t *testing.T, trustProxy bool, forwarded ...string) []string {
	t.Helper()
	cfg := testutil.NewConfig(t)
	cfg.TrustProxy = trustProxy

	var seen []string
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.RemoteAddr)
	})
	for _, mw := range globalMiddlewares(cfg, testutil.NewLogger()) {
		handler = mw(handler)
	}

	for _, xff := range forwarded {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "9.9.9.9:4242"
		req.Header.Set("X-Forwarded-For", xff)
		req.Header.Set("X-Real-IP", xff)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	return seen
}

func TestGlobalMiddlewares_IgnoreForwardedHeadersByDefault(t *testing.T) {
	seen := remoteAddrsSeen(t, false, "1.1.1.1", "2.2.2.2", "3.3.3.3")
	assert.Equal(t, []string{"9.9.9.9:4242", "9.9.9.9:4242", "9.9.9.9:4242"}, seen)
}

func TestGlobalMiddlewares_TrustedProxy(t *testing.T) {
	seen := remoteAddrsSeen(t, true, "1.1.1.1")
	assert.Equal(t, []string{"1.1.1.1"}, seen)
}
