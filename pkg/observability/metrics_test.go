package observability_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/digits/pkg/domain"
	"github.com/aretw0/digits/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnSearch(ctx, &domain.SearchEvent{
		Kind:     domain.KindSolve,
		Duration: 2 * time.Millisecond,
		Stats:    domain.Stats{Expanded: 12},
		Found:    1,
	})
	hooks.OnSearch(ctx, &domain.SearchEvent{
		Kind:     domain.KindSolve,
		CacheHit: true,
		Found:    1,
	})
	hooks.OnSearch(ctx, &domain.SearchEvent{
		Kind:  domain.KindTargets,
		Found: 6,
	})
	hooks.OnCacheError(ctx, &domain.CacheEvent{Op: "load", Err: errors.New("boom")})

	expected := `
# HELP digits_queries_total Queries answered, by kind and cache outcome.
# TYPE digits_queries_total counter
digits_queries_total{cache="hit",kind="solve"} 1
digits_queries_total{cache="miss",kind="solve"} 1
digits_queries_total{cache="miss",kind="targets"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "digits_queries_total")
	require.NoError(t, err)

	expectedFound := `
# HELP digits_results_found_total Solutions (solve) or reachable values (targets) returned.
# TYPE digits_results_found_total counter
digits_results_found_total{kind="solve"} 2
digits_results_found_total{kind="targets"} 6
`
	err = testutil.GatherAndCompare(m.Registry(), strings.NewReader(expectedFound), "digits_results_found_total")
	require.NoError(t, err)

	// Cache hits do not observe expansion.
	count, err := testutil.GatherAndCount(m.Registry(), "digits_search_states_expanded")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(m.Registry(), "digits_cache_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks().OnSearch(context.Background(), &domain.SearchEvent{Kind: domain.KindTargets, Found: 3})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `digits_queries_total{cache="miss",kind="targets"} 1`)
}
