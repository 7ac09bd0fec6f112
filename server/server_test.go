package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pbanos/entropic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T, fit bool) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	c, err := entropic.New(nil, entropic.WithMetrics(entropic.NewMetrics(reg)))
	require.NoError(t, err)
	if fit {
		X := [][]interface{}{{"A", 1.0}, {"A", 2.0}, {"B", 1.0}, {"B", 2.0}}
		require.NoError(t, c.Fit(context.Background(), X, []string{"yes", "yes", "no", "no"}))
	}
	return New(c, zaptest.NewLogger(t), reg).Handler()
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPredict(t *testing.T) {
	h := testServer(t, true)
	w := do(h, http.MethodPost, "/predict", `{"rows":[{"feature_0":"A","feature_1":5},{"feature_0":"B"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"predictions":["yes","no"]}`, w.Body.String())
}

func TestPredictProba(t *testing.T) {
	h := testServer(t, true)
	w := do(h, http.MethodPost, "/predict_proba", `{"rows":[{"feature_0":"B"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"classes":["no","yes"],"probabilities":[[1,0]]}`, w.Body.String())
}

func TestPredictErrors(t *testing.T) {
	h := testServer(t, true)

	w := do(h, http.MethodPost, "/predict", `{"rows":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPost, "/predict", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPost, "/predict", `{"rows":[{"feature_0":"C"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "value not observed at fit time")

	w = do(testServer(t, false), http.MethodPost, "/predict", `{"rows":[{"feature_0":"A"}]}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestTreeAndGraph(t *testing.T) {
	h := testServer(t, true)

	w := do(h, http.MethodGet, "/tree", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "┌── feature_0\n"))

	w = do(h, http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	var g struct {
		Nodes []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"nodes"`
		Edges []struct {
			Label string `json:"label"`
		} `json:"edges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)
	assert.Equal(t, "A", g.Edges[0].Label)

	w = do(h, http.MethodGet, "/graph?format=dot", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "digraph {"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := testServer(t, true)
	do(h, http.MethodPost, "/predict", `{"rows":[{"feature_0":"A"}]}`)
	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `entropic_predictions_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "entropic_nodes_grown_total")
}
