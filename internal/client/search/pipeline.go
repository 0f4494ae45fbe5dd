package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iudanet/storefront/internal/models"
	"github.com/iudanet/storefront/pkg/api"
)

// DefaultDebounce пауза во вводе term перед запросом
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed pipeline уже закрыт
var ErrClosed = errors.New("search pipeline closed")

//go:generate moq -out searcher_mock.go . Searcher

// Searcher выполняет запрос поиска. Реализуется api.Client.
type Searcher interface {
	SearchProducts(ctx context.Context, params api.SearchParams) (*api.SearchResponse, error)
}

// Scroller прокрутка списка результатов наверх при смене страницы
type Scroller interface {
	ScrollToTop()
}

// ScrollerFunc адаптер функции к Scroller
type ScrollerFunc func()

func (f ScrollerFunc) ScrollToTop() { f() }

// Snapshot согласованный срез состояния pipeline.
// Seq растет с каждым срезом: подписчик, получивший срез с меньшим Seq после большего,
// должен его отбросить.
type Snapshot struct {
	Err     error
	Result  models.SearchResult
	State   State
	Seq     uint64
	Loading bool
}

// Config параметры pipeline
type Config struct {
	Debounce time.Duration
	PageSize int
}

// Option настраивает Pipeline
type Option func(*Pipeline)

// WithScroller задает обработчик прокрутки
func WithScroller(s Scroller) Option {
	return func(p *Pipeline) { p.scroller = s }
}

// WithLogger задает logger
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// Pipeline превращает изменения фильтров в запросы поиска.
// Каждый запрос получает порядковый номер, ответ применяется,
// только если он новее последнего примененного.
type Pipeline struct {
	searcher  Searcher
	scroller  Scroller
	ctx       context.Context
	err       error
	log       *zap.Logger
	debouncer *Debouncer
	cancel    context.CancelFunc
	stopAfter func() bool
	subs      map[int]func(Snapshot)
	result    models.SearchResult
	state     State
	wg        sync.WaitGroup
	issued    uint64
	applied   uint64
	seq       uint64
	inFlight  int
	nextSub   int
	pageSize  int
	mu        sync.Mutex
	closed    bool
}

// New создает pipeline. Первый запрос выполняет Start.
func New(searcher Searcher, cfg Config, opts ...Option) *Pipeline {
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		searcher:  searcher,
		scroller:  ScrollerFunc(func() {}),
		log:       zap.NewNop(),
		debouncer: NewDebouncer(cfg.Debounce),
		ctx:       ctx,
		cancel:    cancel,
		subs:      make(map[int]func(Snapshot)),
		pageSize:  cfg.PageSize,
		state:     DefaultState(cfg.PageSize),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("search")
	return p
}

// Start заполняет состояние из параметров навигации и выполняет первый запрос.
// Отмена ctx отменяет запросы pipeline.
func (p *Pipeline) Start(ctx context.Context, seed url.Values) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.stopAfter == nil {
		p.stopAfter = context.AfterFunc(ctx, p.cancel)
	}
	p.state.Seed(seed)
	p.state.Page = 1
	p.mu.Unlock()

	p.query()
	return nil
}

// SetSearchTerm принимает ввод term. Запрос уходит после паузы во вводе.
func (p *Pipeline) SetSearchTerm(raw string) {
	p.debouncer.Trigger(func() {
		p.commitTerm(raw)
	})
}

// CommitSearchTerm применяет term сразу, отменяя отложенный ввод
func (p *Pipeline) CommitSearchTerm(raw string) {
	p.debouncer.Cancel()
	p.commitTerm(raw)
}

func (p *Pipeline) commitTerm(raw string) {
	_ = p.mutate(func(s *State) error {
		s.Term = raw
		return nil
	})
}

// ToggleCategory добавляет категорию в фильтр или убирает ее
func (p *Pipeline) ToggleCategory(id string) {
	_ = p.mutate(func(s *State) error {
		if i := slices.Index(s.CategoryIDs, id); i >= 0 {
			s.CategoryIDs = slices.Delete(s.CategoryIDs, i, i+1)
		} else {
			s.CategoryIDs = append(s.CategoryIDs, id)
		}
		return nil
	})
}

// SetPriceRange задает границы цены. nil снимает границу.
func (p *Pipeline) SetPriceRange(minPrice, maxPrice *float64) error {
	if minPrice != nil && *minPrice < 0 {
		return fmt.Errorf("min price must not be negative")
	}
	if maxPrice != nil && *maxPrice < 0 {
		return fmt.Errorf("max price must not be negative")
	}
	if minPrice != nil && maxPrice != nil && *maxPrice > 0 && *minPrice > *maxPrice {
		return fmt.Errorf("min price %.2f is greater than max price %.2f", *minPrice, *maxPrice)
	}

	return p.mutate(func(s *State) error {
		s.MinPrice = clonePrice(minPrice)
		s.MaxPrice = clonePrice(maxPrice)
		return nil
	})
}

// SetCondition задает фильтр по состоянию товара
func (p *Pipeline) SetCondition(c Condition) error {
	if !c.Valid() {
		return fmt.Errorf("unknown condition %q", c)
	}
	return p.mutate(func(s *State) error {
		s.Condition = c
		return nil
	})
}

// SetSort задает сортировку
func (p *Pipeline) SetSort(key SortKey) error {
	if !key.Valid() {
		return fmt.Errorf("unknown sort key %q", key)
	}
	return p.mutate(func(s *State) error {
		s.Sort = key
		return nil
	})
}

// ClearFilters возвращает все поля к значениям по умолчанию.
// Отложенный ввод term отменяется.
func (p *Pipeline) ClearFilters() {
	p.debouncer.Cancel()
	_ = p.mutate(func(s *State) error {
		*s = DefaultState(p.pageSize)
		return nil
	})
}

// GoToPage переходит на страницу n, остальные фильтры не меняются
func (p *Pipeline) GoToPage(n int) error {
	if n < 1 {
		return fmt.Errorf("page must be >= 1, got %d", n)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.state.Page = n
	p.mu.Unlock()

	p.query()
	p.scroller.ScrollToTop()
	return nil
}

// NextPage переходит на следующую страницу, если она есть
func (p *Pipeline) NextPage() bool {
	p.mu.Lock()
	page, total := p.state.Page, p.result.TotalPages
	p.mu.Unlock()

	if page >= total {
		return false
	}
	return p.GoToPage(page+1) == nil
}

// PreviousPage переходит на предыдущую страницу, если она есть
func (p *Pipeline) PreviousPage() bool {
	p.mu.Lock()
	page := p.state.Page
	p.mu.Unlock()

	if page <= 1 {
		return false
	}
	return p.GoToPage(page-1) == nil
}

// mutate меняет фильтр, сбрасывает страницу и выполняет запрос
func (p *Pipeline) mutate(fn func(*State) error) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	next := p.state.Clone()
	if err := fn(&next); err != nil {
		p.mu.Unlock()
		return err
	}
	next.Page = 1
	p.state = next
	p.mu.Unlock()

	p.query()
	return nil
}

// query отправляет запрос по текущему состоянию в отдельной горутине
func (p *Pipeline) query() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.issued++
	seq := p.issued
	params := p.state.Params()
	p.inFlight++
	p.wg.Add(1)
	p.mu.Unlock()

	p.log.Debug("query issued",
		zap.Uint64("seq", seq),
		zap.String("term", params.Search),
		zap.Strings("categories", params.Categories),
		zap.String("sort", params.SortBy),
		zap.Int("page", params.Page),
	)
	p.publish()

	go func() {
		defer p.wg.Done()
		resp, err := p.searcher.SearchProducts(p.ctx, params)
		p.apply(seq, params, resp, err)
	}()
}

// apply применяет ответ, если он новее последнего примененного
func (p *Pipeline) apply(seq uint64, params api.SearchParams, resp *api.SearchResponse, err error) {
	p.mu.Lock()
	p.inFlight--

	if p.closed && err != nil && errors.Is(err, context.Canceled) {
		p.mu.Unlock()
		return
	}
	if seq <= p.applied {
		p.mu.Unlock()
		p.log.Debug("stale response dropped", zap.Uint64("seq", seq))
		p.publish()
		return
	}
	p.applied = seq

	switch {
	case err != nil:
		// предыдущий результат остается на экране
		p.err = err
	case resp == nil:
		p.err = fmt.Errorf("empty search response")
	default:
		p.err = nil
		p.result = toResult(resp, params)
	}
	failed := p.err
	p.mu.Unlock()

	if failed != nil {
		p.log.Warn("search failed", zap.Uint64("seq", seq), zap.Error(failed))
	}
	p.publish()
}

func toResult(resp *api.SearchResponse, params api.SearchParams) models.SearchResult {
	res := models.SearchResult{
		Items:      api.ToModels(resp.Products),
		TotalCount: resp.Total,
		Page:       resp.Page,
		PageSize:   resp.Limit,
		TotalPages: resp.TotalPages,
	}
	if res.Page < 1 {
		res.Page = params.Page
	}
	if res.PageSize < 1 {
		res.PageSize = params.Limit
	}
	if res.TotalPages < 1 && res.PageSize > 0 {
		res.TotalPages = (res.TotalCount + res.PageSize - 1) / res.PageSize
	}
	return res
}

// Snapshot возвращает копию текущего состояния
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pipeline) snapshotLocked() Snapshot {
	res := p.result
	res.Items = slices.Clone(p.result.Items)
	p.seq++
	return Snapshot{
		Seq:     p.seq,
		State:   p.state.Clone(),
		Result:  res,
		Err:     p.err,
		Loading: p.inFlight > 0,
	}
}

// HasActiveFilters задан ли хоть один фильтр
func (p *Pipeline) HasActiveFilters() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.HasActiveFilters()
}

// Subscribe подписывает fn на изменения. Возвращает функцию отписки.
// fn вызывается вне блокировки, из горутины запроса.
func (p *Pipeline) Subscribe(fn func(Snapshot)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *Pipeline) publish() {
	p.mu.Lock()
	snap := p.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// Close останавливает debounce, отменяет запросы и ждет их горутины.
// Повторный вызов безопасен.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	stopAfter := p.stopAfter
	p.mu.Unlock()

	p.debouncer.Stop()
	p.cancel()
	p.wg.Wait()
	if stopAfter != nil {
		stopAfter()
	}
}

func clonePrice(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
