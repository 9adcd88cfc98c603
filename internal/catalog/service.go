// Package catalog answers the set menu listing query: filter by cuisine,
// sort, paginate, and aggregate per-cuisine facet counts.
package catalog

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/feastlane/feastlane/internal/domain"
)

// SortOption is a client-facing sort choice.
type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SortOptions is the fixed menu of sort choices exposed to clients.
var SortOptions = []SortOption{
	{Value: "price_asc", Label: "Price: Low to High"},
	{Value: "price_desc", Label: "Price: High to Low"},
	{Value: "orders", Label: "Most Popular"},
}

// sortClauses whitelists the orderings a request may pick. Anything else
// falls back to newest first.
var sortClauses = map[string]string{
	"price_asc":  "price_per_person ASC",
	"price_desc": "price_per_person DESC",
	"orders":     "number_of_orders DESC",
}

const defaultSortClause = "created_at DESC"

// CuisineFacet is a sidebar aggregate computed over all active menus.
type CuisineFacet struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	NumberOfOrders int    `json:"number_of_orders"`
	SetMenusCount  int    `json:"set_menus_count"`
}

// ActiveFilters echoes the filter values a page was produced with.
type ActiveFilters struct {
	CuisineSlug string `json:"cuisine_slug"`
	SortBy      string `json:"sort_by"`
	Guests      int    `json:"guests"`
}

// Page is one slice of the filtered, ordered menu set plus its paginator.
type Page struct {
	Data        []domain.SetMenu `json:"data"`
	Total       int64            `json:"total"`
	PerPage     int              `json:"per_page"`
	CurrentPage int              `json:"current_page"`
	LastPage    int              `json:"last_page"`
}

// ListResult is the full composition returned to the API layer.
type ListResult struct {
	Menus   Page
	Facets  []CuisineFacet
	Active  ActiveFilters
	Options []SortOption
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List validates q and returns one page of active menus with facet data
// and the active-filter echo. Facets are always computed over the whole
// active set, unaffected by the cuisine and sort filters.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	page, perPage := q.page(), q.perPage()

	base := s.db.WithContext(ctx).Model(&domain.SetMenu{}).Where("status = ?", true)
	if q.CuisineSlug != "" {
		sub := s.db.Table("cuisine_set_menu").
			Select("cuisine_set_menu.set_menu_id").
			Joins("JOIN cuisines ON cuisines.id = cuisine_set_menu.cuisine_id").
			Where("cuisines.slug = ?", q.CuisineSlug)
		base = base.Where("id IN (?)", sub)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count set menus")
	}

	order, ok := sortClauses[q.SortBy]
	if !ok {
		order = defaultSortClause
	}

	var menus []domain.SetMenu
	if err := base.Order(order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&menus).Error; err != nil {
		return nil, errors.Wrap(err, "query set menus")
	}

	if err := s.attachCuisines(ctx, menus); err != nil {
		return nil, err
	}

	facets, err := s.cuisineFacets(ctx)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Menus: Page{
			Data:        menus,
			Total:       total,
			PerPage:     perPage,
			CurrentPage: page,
			LastPage:    lastPage(total, perPage),
		},
		Facets: facets,
		Active: ActiveFilters{
			CuisineSlug: q.CuisineSlug,
			SortBy:      q.SortBy,
			Guests:      q.guests(),
		},
		Options: SortOptions,
	}, nil
}

func lastPage(total int64, perPage int) int {
	lp := int((total + int64(perPage) - 1) / int64(perPage))
	if lp < 1 {
		lp = 1
	}
	return lp
}

// attachCuisines loads the cuisines of the page's menus with one join
// query and distributes them onto the menu structs.
func (s *Service) attachCuisines(ctx context.Context, menus []domain.SetMenu) error {
	if len(menus) == 0 {
		return nil
	}
	menuIDs := make([]int64, 0, len(menus))
	for i := range menus {
		menus[i].Cuisines = []domain.Cuisine{}
		menuIDs = append(menuIDs, menus[i].ID)
	}

	var rows []struct {
		SetMenuID int64
		domain.Cuisine
	}
	err := s.db.WithContext(ctx).Table("cuisine_set_menu").
		Select("cuisine_set_menu.set_menu_id, cuisines.id, cuisines.name, cuisines.slug").
		Joins("JOIN cuisines ON cuisines.id = cuisine_set_menu.cuisine_id").
		Where("cuisine_set_menu.set_menu_id IN ?", menuIDs).
		Order("cuisines.name ASC").
		Scan(&rows).Error
	if err != nil {
		return errors.Wrap(err, "query menu cuisines")
	}

	byMenu := make(map[int64][]domain.Cuisine, len(menus))
	for _, row := range rows {
		byMenu[row.SetMenuID] = append(byMenu[row.SetMenuID], row.Cuisine)
	}
	for i := range menus {
		if cs, ok := byMenu[menus[i].ID]; ok {
			menus[i].Cuisines = cs
		}
	}
	return nil
}

// cuisineFacets counts active menus and sums their orders per cuisine,
// including cuisines with no active menus, ordered by menu count.
func (s *Service) cuisineFacets(ctx context.Context) ([]CuisineFacet, error) {
	var facets []CuisineFacet
	err := s.db.WithContext(ctx).Table("cuisines").
		Select("cuisines.name, cuisines.slug, "+
			"COUNT(set_menus.id) AS set_menus_count, "+
			"COALESCE(SUM(set_menus.number_of_orders), 0) AS number_of_orders").
		Joins("LEFT JOIN cuisine_set_menu ON cuisine_set_menu.cuisine_id = cuisines.id").
		Joins("LEFT JOIN set_menus ON set_menus.id = cuisine_set_menu.set_menu_id AND set_menus.status = ?", true).
		Group("cuisines.id, cuisines.name, cuisines.slug").
		Order("set_menus_count DESC").
		Scan(&facets).Error
	if err != nil {
		return nil, errors.Wrap(err, "query cuisine facets")
	}
	return facets, nil
}
