// Package search собирает состояние фильтров каталога в запросы /products/search
// и хранит последний примененный результат.
package search

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/iudanet/storefront/pkg/api"
)

// DefaultPageSize размер страницы поиска по умолчанию
const DefaultPageSize = 12

// SortKey порядок сортировки результатов
type SortKey string

const (
	SortRelevant  SortKey = "relevant"
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// SortKeys все допустимые ключи сортировки в порядке показа
var SortKeys = []SortKey{SortRelevant, SortRecent, SortPriceAsc, SortPriceDesc}

// Valid проверяет ключ сортировки
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys, k)
}

// Condition фильтр по состоянию товара. Пустое значение - любое состояние.
type Condition string

const (
	ConditionAny     Condition = ""
	ConditionNew     Condition = "NEW"
	ConditionLikeNew Condition = "LIKE_NEW"
	ConditionUsed    Condition = "USED"
)

// Conditions все значения фильтра в порядке показа
var Conditions = []Condition{ConditionAny, ConditionNew, ConditionLikeNew, ConditionUsed}

// Valid проверяет значение фильтра
func (c Condition) Valid() bool {
	return slices.Contains(Conditions, c)
}

// ParseCondition принимает значение без учета регистра
func ParseCondition(s string) (Condition, error) {
	c := Condition(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown condition %q", s)
	}
	return c, nil
}

// ParseSortKey принимает значение без учета регистра
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// State состояние фильтров поиска.
// Page сбрасывается в 1 при изменении любого другого поля.
type State struct {
	MinPrice    *float64
	MaxPrice    *float64
	Term        string
	Condition   Condition
	Sort        SortKey
	CategoryIDs []string
	Page        int
	PageSize    int
}

// DefaultState состояние при входе на экран поиска
func DefaultState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{
		Sort:     SortRelevant,
		Page:     1,
		PageSize: pageSize,
	}
}

// Seed заполняет term и категории из параметров навигации (search, categories)
func (s *State) Seed(params url.Values) {
	if params == nil {
		return
	}
	if term := params.Get("search"); term != "" {
		s.Term = term
	}
	for _, raw := range params["categories"] {
		for _, id := range strings.Split(raw, ",") {
			id = strings.TrimSpace(id)
			if id != "" && !slices.Contains(s.CategoryIDs, id) {
				s.CategoryIDs = append(s.CategoryIDs, id)
			}
		}
	}
}

// HasCategory выбрана ли категория
func (s State) HasCategory(id string) bool {
	return slices.Contains(s.CategoryIDs, id)
}

// HasActiveFilters задан ли хоть один фильтр
func (s State) HasActiveFilters() bool {
	return s.Term != "" ||
		len(s.CategoryIDs) > 0 ||
		s.MinPrice != nil ||
		s.MaxPrice != nil ||
		s.Condition != ConditionAny
}

// Params собирает параметры запроса.
// Отправляются только заданные фильтры, sortBy, page и limit - всегда.
func (s State) Params() api.SearchParams {
	p := api.SearchParams{
		Search:    strings.TrimSpace(s.Term),
		Condition: string(s.Condition),
		SortBy:    string(s.Sort),
		Page:      s.Page,
		Limit:     s.PageSize,
	}
	if len(s.CategoryIDs) > 0 {
		p.Categories = slices.Clone(s.CategoryIDs)
	}
	if s.MinPrice != nil && *s.MinPrice > 0 {
		p.MinPrice = *s.MinPrice
	}
	if s.MaxPrice != nil && *s.MaxPrice > 0 {
		p.MaxPrice = *s.MaxPrice
	}
	if p.SortBy == "" {
		p.SortBy = string(SortRelevant)
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	return p
}

// Clone копирует состояние вместе со срезом и указателями
func (s State) Clone() State {
	out := s
	out.CategoryIDs = slices.Clone(s.CategoryIDs)
	if s.MinPrice != nil {
		v := *s.MinPrice
		out.MinPrice = &v
	}
	if s.MaxPrice != nil {
		v := *s.MaxPrice
		out.MaxPrice = &v
	}
	return out
}
