package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storefront/pkg/api"
)

const waitFor = 2 * time.Second

// pageResponse ответ с одним товаром, id которого содержит номер страницы
func pageResponse(params api.SearchParams, totalPages int) *api.SearchResponse {
	return &api.SearchResponse{
		Products: []api.Product{{
			ID:     fmt.Sprintf("p%d-%s", params.Page, params.Search),
			Title:  "Product " + params.Search,
			Price:  1000,
			Images: []string{"https://cdn/1.png"},
		}},
		Total:      totalPages * params.Limit,
		Page:       params.Page,
		Limit:      params.Limit,
		TotalPages: totalPages,
	}
}

func newMockSearcher(totalPages int) *SearcherMock {
	return &SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			return pageResponse(params, totalPages), nil
		},
	}
}

// waitIdle ждет, пока все запросы pipeline завершатся
func waitIdle(t *testing.T, p *Pipeline) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = p.Snapshot()
		return !snap.Loading
	}, waitFor, 5*time.Millisecond)
	return snap
}

func TestPipeline_StartSeedsAndQueries(t *testing.T) {
	mock := newMockSearcher(3)
	p := New(mock, Config{PageSize: 12})
	defer p.Close()

	require.NoError(t, p.Start(context.Background(), url.Values{
		"search":     {"lamp"},
		"categories": {"c1"},
	}))
	snap := waitIdle(t, p)

	require.Len(t, mock.SearchProductsCalls(), 1)
	params := mock.SearchProductsCalls()[0].Params
	assert.Equal(t, "lamp", params.Search)
	assert.Equal(t, []string{"c1"}, params.Categories)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 12, params.Limit)

	require.NoError(t, snap.Err)
	assert.Equal(t, 3, snap.Result.TotalPages)
	assert.Equal(t, 36, snap.Result.TotalCount)
	require.Len(t, snap.Result.Items, 1)
	assert.Equal(t, "Product lamp", snap.Result.Items[0].Name)
	assert.Equal(t, "https://cdn/1.png", snap.Result.Items[0].ImageURL)
	assert.True(t, p.HasActiveFilters())
}

func TestPipeline_FilterChangesResetPage(t *testing.T) {
	p := New(newMockSearcher(10), Config{})
	defer p.Close()

	mutations := []struct {
		apply func() error
		name  string
	}{
		{name: "toggle category", apply: func() error { p.ToggleCategory("c1"); return nil }},
		{name: "price range", apply: func() error { return p.SetPriceRange(price(10), price(20)) }},
		{name: "condition", apply: func() error { return p.SetCondition(ConditionUsed) }},
		{name: "sort", apply: func() error { return p.SetSort(SortPriceDesc) }},
		{name: "commit term", apply: func() error { p.CommitSearchTerm("desk"); return nil }},
		{name: "clear", apply: func() error { p.ClearFilters(); return nil }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			require.NoError(t, p.GoToPage(4))
			assert.Equal(t, 4, p.Snapshot().State.Page)

			require.NoError(t, m.apply())
			assert.Equal(t, 1, p.Snapshot().State.Page)
		})
	}
	waitIdle(t, p)
}

func TestPipeline_ToggleCategoryTwice(t *testing.T) {
	mock := newMockSearcher(1)
	p := New(mock, Config{})
	defer p.Close()

	p.ToggleCategory("c1")
	waitIdle(t, p)
	p.ToggleCategory("c1")
	waitIdle(t, p)

	calls := mock.SearchProductsCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"c1"}, calls[0].Params.Categories)
	assert.Empty(t, calls[1].Params.Categories)
	assert.Empty(t, p.Snapshot().State.CategoryIDs)
}

func TestPipeline_DebouncedTermFiresOnce(t *testing.T) {
	mock := newMockSearcher(1)
	p := New(mock, Config{Debounce: 40 * time.Millisecond})
	defer p.Close()

	for _, term := range []string{"m", "me", "mes", "mesa"} {
		p.SetSearchTerm(term)
		time.Sleep(5 * time.Millisecond)
	}
	assert.Empty(t, mock.SearchProductsCalls(), "no query before the quiet period")

	require.Eventually(t, func() bool { return len(mock.SearchProductsCalls()) == 1 }, waitFor, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	calls := mock.SearchProductsCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "mesa", calls[0].Params.Search)
	assert.Equal(t, 1, calls[0].Params.Page)
	waitIdle(t, p)
}

func TestPipeline_ClearFiltersDropsPendingTerm(t *testing.T) {
	mock := newMockSearcher(1)
	p := New(mock, Config{Debounce: 30 * time.Millisecond})
	defer p.Close()

	p.SetSearchTerm("typed")
	p.ClearFilters()
	time.Sleep(60 * time.Millisecond)
	waitIdle(t, p)

	calls := mock.SearchProductsCalls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Params.Search)
	assert.Equal(t, DefaultState(DefaultPageSize), p.Snapshot().State)
}

// Ответ на страницу 1, пришедший после ответа на страницу 2, не должен его перезаписать
func TestPipeline_StaleResponseDoesNotOverwriteNewer(t *testing.T) {
	release := make(chan struct{})
	mock := &SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			if params.Page == 1 {
				select {
				case <-release:
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
			return pageResponse(params, 5), nil
		},
	}
	p := New(mock, Config{})
	defer p.Close()

	require.NoError(t, p.Start(context.Background(), nil))
	require.NoError(t, p.GoToPage(2))

	require.Eventually(t, func() bool {
		return p.Snapshot().Result.Page == 2
	}, waitFor, 5*time.Millisecond)
	assert.True(t, p.Snapshot().Loading, "page 1 is still in flight")

	close(release)
	snap := waitIdle(t, p)

	assert.Equal(t, 2, snap.Result.Page)
	require.Len(t, snap.Result.Items, 1)
	assert.Equal(t, "p2-", snap.Result.Items[0].ID)
	assert.Len(t, mock.SearchProductsCalls(), 2)
}

func TestPipeline_FailureKeepsPreviousResult(t *testing.T) {
	boom := errors.New("backend down")
	mock := &SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			if params.Search == "boom" {
				return nil, boom
			}
			return pageResponse(params, 2), nil
		},
	}
	p := New(mock, Config{})
	defer p.Close()

	require.NoError(t, p.Start(context.Background(), nil))
	before := waitIdle(t, p)
	require.NoError(t, before.Err)

	p.CommitSearchTerm("boom")
	failed := waitIdle(t, p)
	assert.ErrorIs(t, failed.Err, boom)
	assert.Equal(t, before.Result, failed.Result)
	assert.Equal(t, "boom", failed.State.Term)

	p.CommitSearchTerm("ok")
	recovered := waitIdle(t, p)
	assert.NoError(t, recovered.Err)
	assert.Equal(t, "p1-ok", recovered.Result.Items[0].ID)
}

func TestPipeline_RejectsInvalidInput(t *testing.T) {
	mock := newMockSearcher(1)
	p := New(mock, Config{})
	defer p.Close()

	before := p.Snapshot().State

	assert.Error(t, p.SetSort("cheapest"))
	assert.Error(t, p.SetCondition("BROKEN"))
	assert.Error(t, p.SetPriceRange(price(-1), nil))
	assert.Error(t, p.SetPriceRange(price(50), price(10)))
	assert.Error(t, p.GoToPage(0))

	assert.Equal(t, before, p.Snapshot().State)
	assert.Empty(t, mock.SearchProductsCalls())
}

func TestPipeline_PageNavigation(t *testing.T) {
	var scrolls atomic.Int32
	p := New(newMockSearcher(2), Config{}, WithScroller(ScrollerFunc(func() { scrolls.Add(1) })))
	defer p.Close()

	require.NoError(t, p.Start(context.Background(), nil))
	waitIdle(t, p)

	assert.False(t, p.PreviousPage())

	assert.True(t, p.NextPage())
	assert.Equal(t, 2, waitIdle(t, p).Result.Page)

	assert.False(t, p.NextPage(), "already on the last page")

	assert.True(t, p.PreviousPage())
	assert.Equal(t, 1, waitIdle(t, p).Result.Page)

	assert.Equal(t, int32(2), scrolls.Load())
}

func TestPipeline_Subscribe(t *testing.T) {
	p := New(newMockSearcher(1), Config{})
	defer p.Close()

	updates := make(chan Snapshot, 16)
	unsubscribe := p.Subscribe(func(s Snapshot) { updates <- s })

	p.ToggleCategory("c9")

	var last Snapshot
	require.Eventually(t, func() bool {
		select {
		case last = <-updates:
		default:
		}
		return !last.Loading && len(last.Result.Items) == 1
	}, waitFor, 5*time.Millisecond)
	assert.Equal(t, []string{"c9"}, last.State.CategoryIDs)

	unsubscribe()
	for len(updates) > 0 {
		<-updates
	}
	p.ToggleCategory("c9")
	waitIdle(t, p)
	assert.Empty(t, updates)
}

func TestPipeline_SnapshotSeqGrows(t *testing.T) {
	p := New(newMockSearcher(1), Config{})
	defer p.Close()

	updates := make(chan Snapshot, 16)
	unsubscribe := p.Subscribe(func(s Snapshot) { updates <- s })
	defer unsubscribe()

	first := p.Snapshot()
	p.ToggleCategory("c1")

	// срезы подписчикам нумеруются без повторов, порядок доставки не гарантирован
	seen := map[uint64]bool{}
	var done bool
	require.Eventually(t, func() bool {
		select {
		case s := <-updates:
			assert.False(t, seen[s.Seq], "seq %d", s.Seq)
			assert.Greater(t, s.Seq, first.Seq)
			seen[s.Seq] = true
			done = done || !s.Loading
		default:
		}
		return done
	}, waitFor, time.Millisecond)

	last := waitIdle(t, p)
	assert.Greater(t, last.Seq, first.Seq)
}

func TestPipeline_CloseCancelsInFlight(t *testing.T) {
	mock := &SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	p := New(mock, Config{Debounce: time.Hour})
	require.NoError(t, p.Start(context.Background(), nil))
	p.SetSearchTerm("never")

	p.Close()
	p.Close()

	assert.NoError(t, p.Snapshot().Err)
	assert.ErrorIs(t, p.Start(context.Background(), nil), ErrClosed)
	assert.ErrorIs(t, p.SetSort(SortRecent), ErrClosed)
	assert.ErrorIs(t, p.GoToPage(2), ErrClosed)
}

func TestPipeline_ParentContextCancels(t *testing.T) {
	mock := &SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	p := New(mock, Config{})
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, p.Start(ctx, nil))
	cancel()

	snap := waitIdle(t, p)
	assert.ErrorIs(t, snap.Err, context.Canceled)
}
