package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galvani/internal/catalog"
	"galvani/internal/redox"
	"galvani/pkg/models"
)

func TestObserve(t *testing.T) {
	c := NewCollector("galvani")
	e := redox.NewEngine(catalog.Extended())

	res, err := e.Simulate("Zn(s)", "Cu2+(aq)")
	require.NoError(t, err)
	c.Observe("http", "extended", res, nil)

	_, err = e.Simulate("Zn(s)", "Zn2+(aq)")
	require.Error(t, err)
	c.Observe("http", "extended", res, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Resolutions.WithLabelValues("extended", "potential-ranked", "http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Rejections.WithLabelValues("same_element_conflict", "http")))
}

func TestObserveNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() { c.Observe("cli", "daniell", models.Resolution{}, nil) })
}

func TestHandlerAndGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector("galvani")

	r := gin.New()
	r.Use(c.Gin())
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `galvani_http_requests_total{method="GET",route="/ping",status="200"} 1`), body)
}
