package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/polygon-api/internal/attr"
	"github.com/sells-group/polygon-api/internal/config"
	"github.com/sells-group/polygon-api/internal/index"
)

// testHandler serves one square polygon with vertices (0,0) (10,0) (10,10)
// (0,10) and attribute {"name":"A"}.
func testHandler(t *testing.T, cfg config.ServerConfig) http.Handler {
	t.Helper()

	poly := geom.NewPolygon(geom.XY)
	require.NoError(t, poly.Push(geom.NewLinearRingFlat(geom.XY,
		[]float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0})))

	rec := attr.NewRecord([]attr.Field{{Name: "name", Value: attr.String("A")}})
	entry, err := index.NewEntry(poly, rec)
	require.NoError(t, err)

	return New(cfg, index.Build([]*index.Entry{entry}))
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestQuery_Match(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	rr := get(t, h, "/query?lat=5&lon=5")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"A"}`, rr.Body.String())
}

func TestQuery_NoMatchReturnsNull(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	rr := get(t, h, "/query?lat=50&lon=50")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "null", strings.TrimSpace(rr.Body.String()))
}

func TestQuery_MissingParamsDefaultToZero(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	// (0,0) is a boundary vertex of the square; the containment policy
	// classifies exterior boundary points as inside.
	rr := get(t, h, "/query")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"A"}`, rr.Body.String())
}

func TestQuery_UnparsableParamsDefaultToZero(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	rr := get(t, h, "/query?lat=abc&lon=")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"A"}`, rr.Body.String())
}

func TestQuery_FieldOrderPreserved(t *testing.T) {
	poly := geom.NewPolygon(geom.XY)
	require.NoError(t, poly.Push(geom.NewLinearRingFlat(geom.XY,
		[]float64{0, 0, 0, 10, 10, 10, 10, 0, 0, 0})))

	rec := attr.NewRecord([]attr.Field{
		{Name: "zeta", Value: attr.String("z")},
		{Name: "alpha", Value: attr.Number(1)},
	})
	entry, err := index.NewEntry(poly, rec)
	require.NoError(t, err)
	h := New(config.ServerConfig{}, index.Build([]*index.Entry{entry}))

	rr := get(t, h, "/query?lat=5&lon=5")

	assert.Equal(t, `{"zeta":"z","alpha":1}`, strings.TrimSpace(rr.Body.String()))
}

func TestHealth(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	rr := get(t, h, "/health")

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRequestID_Echoed(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	rr := get(t, h, "/health")

	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRateLimit_Exceeded(t *testing.T) {
	h := testHandler(t, config.ServerConfig{RateLimitRPS: 1})

	first := get(t, h, "/query?lat=5&lon=5")
	require.Equal(t, http.StatusOK, first.Code)

	second := get(t, h, "/query?lat=5&lon=5")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimit_DisabledAtZero(t *testing.T) {
	h := testHandler(t, config.ServerConfig{})

	for i := 0; i < 20; i++ {
		rr := get(t, h, "/query?lat=5&lon=5")
		require.Equal(t, http.StatusOK, rr.Code)
	}
}
