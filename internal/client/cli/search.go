package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iudanet/storefront/internal/client/search"
	"github.com/iudanet/storefront/internal/models"
)

// searchOptions флаги команды search
type searchOptions struct {
	MinPrice    *float64
	MaxPrice    *float64
	Term        string
	Condition   string
	Sort        string
	Categories  []string
	Page        int
	Interactive bool
}

// state собирает состояние поиска из флагов
func (o searchOptions) state(pageSize int) (search.State, error) {
	s := search.DefaultState(pageSize)
	s.Seed(url.Values{"search": {o.Term}, "categories": o.Categories})

	cond, err := parseCondition(o.Condition)
	if err != nil {
		return s, err
	}
	s.Condition = cond

	if o.Sort != "" {
		key, err := search.ParseSortKey(o.Sort)
		if err != nil {
			return s, err
		}
		s.Sort = key
	}

	if o.MinPrice != nil && *o.MinPrice < 0 || o.MaxPrice != nil && *o.MaxPrice < 0 {
		return s, errors.New("price must not be negative")
	}
	if o.MinPrice != nil && o.MaxPrice != nil && *o.MaxPrice > 0 && *o.MinPrice > *o.MaxPrice {
		return s, errors.New("min price is greater than max price")
	}
	s.MinPrice, s.MaxPrice = o.MinPrice, o.MaxPrice

	if o.Page > 1 {
		s.Page = o.Page
	}
	return s, nil
}

// parseCondition как search.ParseCondition, но принимает "any"
func parseCondition(raw string) (search.Condition, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "any") {
		return search.ConditionAny, nil
	}
	return search.ParseCondition(raw)
}

func (c *Cli) runSearch(ctx context.Context, opts searchOptions) error {
	if opts.Interactive {
		return c.runInteractiveSearch(ctx, opts)
	}

	state, err := opts.state(c.searchCfg.PageSize)
	if err != nil {
		return err
	}

	var (
		categories []models.Category
		result     *models.SearchResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories = c.loadCategories(gctx)
		return nil
	})
	g.Go(func() error {
		var err error
		result, err = c.products.Search(gctx, state.Params())
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.printSearchHeader(state, categories)
	c.printSearchResult(*result)
	return nil
}

// loadCategories список категорий для подписей фильтра. Ошибка не прерывает поиск.
func (c *Cli) loadCategories(ctx context.Context) []models.Category {
	list, err := c.categories.List(ctx)
	if err != nil {
		c.log.Warn("failed to load categories", zap.Error(err))
		return nil
	}
	return list
}

func (c *Cli) printSearchHeader(state search.State, categories []models.Category) {
	if state.Term != "" {
		c.io.Printf("Results for %q\n", state.Term)
	}
	if len(state.CategoryIDs) > 0 {
		names := make([]string, 0, len(state.CategoryIDs))
		for _, id := range state.CategoryIDs {
			names = append(names, categoryName(categories, id))
		}
		c.io.Printf("Categories: %s\n", strings.Join(names, ", "))
	}
}

func categoryName(categories []models.Category, id string) string {
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return id
}

func (c *Cli) printSearchResult(res models.SearchResult) {
	c.printProducts(res.Items)
	if res.TotalPages > 0 {
		c.io.Printf("Page %d of %d (%d results)\n", res.Page, res.TotalPages, res.TotalCount)
	}
}

const searchHelp = `Type text to search. Commands:
  :cat <id>          toggle category
  :price <min> <max> price range, "-" for no bound
  :cond <condition>  any, new, like_new, used
  :sort <key>        relevant, recent, price_asc, price_desc
  :page <n>  :next  :prev
  :clear             reset all filters
  :help  :quit`

// searchView печатает результат каждый раз, когда запросы pipeline завершились.
// Срезы приходят из разных горутин, устаревшие по Seq отбрасываются.
type searchView struct {
	cli     *Cli
	seq     uint64
	mu      sync.Mutex
	loading bool
}

func (v *searchView) render(snap search.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if snap.Seq <= v.seq {
		return
	}
	v.seq = snap.Seq

	wasLoading := v.loading
	v.loading = snap.Loading
	if snap.Loading || !wasLoading {
		return
	}
	if snap.Err != nil {
		msg := UserMessage(snap.Err)
		if msg == "" {
			msg = snap.Err.Error()
		}
		v.cli.io.Printf("Search failed: %s\n", msg)
		return
	}
	v.cli.printSearchResult(snap.Result)
}

func (c *Cli) runInteractiveSearch(ctx context.Context, opts searchOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scroll := search.ScrollerFunc(func() { c.log.Debug("page changed") })
	p := search.New(c.apiClient, c.searchCfg, search.WithScroller(scroll), search.WithLogger(c.log))
	defer p.Close()

	view := &searchView{cli: c}
	unsubscribe := p.Subscribe(view.render)
	defer unsubscribe()

	var categories []models.Category
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories = c.loadCategories(gctx)
		return nil
	})
	g.Go(func() error {
		return p.Start(ctx, url.Values{"search": {opts.Term}, "categories": opts.Categories})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	c.io.Println(searchHelp)
	if len(categories) > 0 {
		c.printCategories(catalogActive(categories))
	}

	for ctx.Err() == nil {
		line, err := c.io.ReadInput("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit, err := c.searchCommand(p, line)
		if err != nil {
			c.io.Printf("Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return nil
}

func catalogActive(categories []models.Category) []models.Category {
	out := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if cat.IsActive {
			out = append(out, cat)
		}
	}
	return out
}

// searchCommand применяет одну строку ввода к pipeline. Возвращает true на :quit.
func (c *Cli) searchCommand(p *search.Pipeline, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		p.SetSearchTerm(line)
		return false, nil
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case ":quit", ":q":
		return true, nil
	case ":help":
		c.io.Println(searchHelp)
	case ":cat":
		if len(args) != 1 {
			return false, errors.New("usage: :cat <id>")
		}
		p.ToggleCategory(args[0])
	case ":price":
		if len(args) != 2 {
			return false, errors.New("usage: :price <min> <max>")
		}
		minPrice, err := parseBound(args[0])
		if err != nil {
			return false, err
		}
		maxPrice, err := parseBound(args[1])
		if err != nil {
			return false, err
		}
		return false, p.SetPriceRange(minPrice, maxPrice)
	case ":cond":
		if len(args) != 1 {
			return false, errors.New("usage: :cond <condition>")
		}
		cond, err := parseCondition(args[0])
		if err != nil {
			return false, err
		}
		return false, p.SetCondition(cond)
	case ":sort":
		if len(args) != 1 {
			return false, errors.New("usage: :sort <key>")
		}
		key, err := search.ParseSortKey(args[0])
		if err != nil {
			return false, err
		}
		return false, p.SetSort(key)
	case ":page":
		if len(args) != 1 {
			return false, errors.New("usage: :page <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, fmt.Errorf("invalid page %q", args[0])
		}
		return false, p.GoToPage(n)
	case ":next":
		if !p.NextPage() {
			c.io.Println("Already on the last page.")
		}
	case ":prev":
		if !p.PreviousPage() {
			c.io.Println("Already on the first page.")
		}
	case ":clear":
		p.ClearFilters()
	default:
		return false, fmt.Errorf("unknown command %s, type :help", cmd)
	}
	return false, nil
}

// parseBound "-" или пусто - без границы
func parseBound(raw string) (*float64, error) {
	if raw == "" || raw == "-" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q", raw)
	}
	return &v, nil
}
