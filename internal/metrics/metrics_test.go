package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unbounded-life/pkg/algorithm"
	"unbounded-life/pkg/algorithm/hashlife"
	"unbounded-life/pkg/cellstate"
)

func TestObserver(t *testing.T) {
	m := New()
	m.GenerationComputed(algorithm.KindNaive, time.Millisecond)
	m.GenerationComputed(algorithm.KindNaive, 2*time.Millisecond)
	m.GenerationComputed(algorithm.KindHashLife, time.Millisecond)
	m.Switched(algorithm.KindNaive, algorithm.KindHashLife)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("naive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationsTotal.WithLabelValues("hashlife")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SwitchesTotal.WithLabelValues("naive", "hashlife")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.GenerationSeconds))
}

func TestGauges(t *testing.T) {
	m := New()
	m.ObserveState(cellstate.New(cellstate.Coord{}, cellstate.Coord{X: 1}))
	m.ObserveHashLife(hashlife.Stats{Nodes: 42, Collections: 3})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Emitted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LiveCells))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.HashLifeNodes))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HashLifeCollections))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Switched(algorithm.KindHashLife, algorithm.KindNaive)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `life_algorithm_switches_total{from="hashlife",to="naive"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
