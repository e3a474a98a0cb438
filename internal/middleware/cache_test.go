package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cruise-booking/internal/config"
)

func newCacheCtx(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/reports/passengers")
	return c
}

func TestCacheKeyFrom_QueryChangesKey(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	a := cacheKeyFrom(cfg, newCacheCtx(t, "/v1/reports/passengers?status=W"))
	b := cacheKeyFrom(cfg, newCacheCtx(t, "/v1/reports/passengers?status=R"))
	assert.NotEqual(t, a, b)
}

func TestCacheKeyFrom_RouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	a := cacheKeyFrom(cfg, newCacheCtx(t, "/v1/reports/passengers?status=W"))
	b := cacheKeyFrom(cfg, newCacheCtx(t, "/v1/reports/passengers?status=R"))
	assert.Equal(t, a, b)
}

func TestEncodeDecodePayload(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"ok":true}`)

	raw, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(raw)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestCaptureWriter_SizeCountsBeyondLimit(t *testing.T) {
	cw := &captureWriter{ResponseWriter: httptest.NewRecorder(), limit: 8}

	_, err := cw.Write([]byte("12345678"))
	require.NoError(t, err)
	_, err = cw.Write([]byte("9"))
	require.NoError(t, err)

	assert.Equal(t, int64(9), cw.size, "size must count every written byte")
	assert.Greater(t, cw.size, cw.limit, "a truncated capture must be detectable")
	assert.Equal(t, "12345678", cw.buf.String())
}

func TestDecodePayload_Truncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 1})
	assert.False(t, ok)
}

func TestBuildRateKey_Strategies(t *testing.T) {
	c := newCacheCtx(t, "/v1/reports/passengers")

	ipKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c)
	routeKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c)
	defKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}, c)

	assert.Contains(t, ipKey, "rl:ip:")
	assert.Contains(t, routeKey, "rl:route:GET /v1/reports/passengers")
	assert.Contains(t, defKey, ":route:")
	assert.Contains(t, defKey, ":ip:")
}
