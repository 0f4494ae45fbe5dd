package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/storefront/internal/client/iocli"
	"github.com/iudanet/storefront/internal/client/search"
	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

func float(v float64) *float64 { return &v }

func TestSearchOptions_State(t *testing.T) {
	opts := searchOptions{
		Term:       " lamp ",
		Categories: []string{"c1,c2", "c1"},
		Condition:  "like_new",
		Sort:       "PRICE_DESC",
		MinPrice:   float(10),
		Page:       3,
	}
	state, err := opts.state(24)
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c2"}, state.CategoryIDs)
	assert.Equal(t, search.ConditionLikeNew, state.Condition)
	assert.Equal(t, search.SortPriceDesc, state.Sort)
	assert.Equal(t, 3, state.Page)
	assert.Equal(t, 24, state.PageSize)
	assert.Equal(t, "lamp", state.Params().Search)

	_, err = searchOptions{Condition: "broken"}.state(0)
	assert.Error(t, err)
	_, err = searchOptions{MaxPrice: float(-1)}.state(0)
	assert.Error(t, err)

	state, err = searchOptions{Condition: "any"}.state(0)
	require.NoError(t, err)
	assert.Equal(t, search.ConditionAny, state.Condition)
	assert.Equal(t, 1, state.Page)
}

func TestSearchCommand(t *testing.T) {
	searcher := &search.SearcherMock{
		SearchProductsFunc: func(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error) {
			return &api.SearchResponse{Page: params.Page, Limit: params.Limit, Total: 50, TotalPages: 5}, nil
		},
	}
	p := search.New(searcher, search.Config{Debounce: time.Hour})
	defer p.Close()

	c := &Cli{io: &iocli.IOMock{
		PrintlnFunc: func(a ...any) {},
		PrintfFunc:  func(format string, a ...any) {},
	}}

	steps := []struct {
		check func(t *testing.T, s search.State)
		line  string
	}{
		{line: ":cat c1", check: func(t *testing.T, s search.State) { assert.Equal(t, []string{"c1"}, s.CategoryIDs) }},
		{line: ":price 10 -", check: func(t *testing.T, s search.State) {
			require.NotNil(t, s.MinPrice)
			assert.Equal(t, 10.0, *s.MinPrice)
			assert.Nil(t, s.MaxPrice)
		}},
		{line: ":cond used", check: func(t *testing.T, s search.State) { assert.Equal(t, search.ConditionUsed, s.Condition) }},
		{line: ":sort recent", check: func(t *testing.T, s search.State) { assert.Equal(t, search.SortRecent, s.Sort) }},
		{line: ":page 3", check: func(t *testing.T, s search.State) { assert.Equal(t, 3, s.Page) }},
		{line: ":cat c1", check: func(t *testing.T, s search.State) {
			assert.Empty(t, s.CategoryIDs)
			assert.Equal(t, 1, s.Page)
		}},
		{line: ":clear", check: func(t *testing.T, s search.State) { assert.Equal(t, search.DefaultState(0), s) }},
	}
	for _, step := range steps {
		t.Run(step.line, func(t *testing.T) {
			quit, err := c.searchCommand(p, step.line)
			require.NoError(t, err)
			assert.False(t, quit)
			step.check(t, p.Snapshot().State)
		})
	}

	for _, bad := range []string{":cat", ":price 1", ":price x 2", ":cond broken", ":sort cheap", ":page zero", ":page 0", ":nope"} {
		_, err := c.searchCommand(p, bad)
		assert.Error(t, err, bad)
	}

	quit, err := c.searchCommand(p, ":quit")
	require.NoError(t, err)
	assert.True(t, quit)

	// обычный текст уходит в debounce и не меняет term сразу
	_, err = c.searchCommand(p, "lamp")
	require.NoError(t, err)
	assert.Empty(t, p.Snapshot().State.Term)
}

func TestSearchView_DropsOutdatedSnapshots(t *testing.T) {
	var (
		mu  sync.Mutex
		out strings.Builder
	)
	c := &Cli{io: &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			mu.Lock()
			defer mu.Unlock()
			out.WriteString(fmt.Sprintln(a...))
		},
		PrintfFunc: func(format string, a ...any) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(&out, format, a...)
		},
	}}
	view := &searchView{cli: c}
	page := func(n int) models.SearchResult {
		return models.SearchResult{Page: n, TotalPages: 5, TotalCount: 50}
	}

	view.render(search.Snapshot{Seq: 1, Loading: true})
	view.render(search.Snapshot{Seq: 3, Loading: true})
	// ответ первого запроса опоздал: второй еще идет
	view.render(search.Snapshot{Seq: 2, Result: page(1)})
	assert.Empty(t, out.String())

	view.render(search.Snapshot{Seq: 4, Result: page(2)})
	view.render(search.Snapshot{Seq: 4, Result: page(2)})
	assert.Equal(t, 1, strings.Count(out.String(), "Page 2 of 5 (50 results)"))
	assert.NotContains(t, out.String(), "Page 1 of 5")
}
