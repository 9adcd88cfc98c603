package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feastlane/feastlane/internal/domain"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

var menuSeq int64

func seedMenu(t *testing.T, db *gorm.DB, name string, price float64, orders int, status bool, createdAt time.Time) domain.SetMenu {
	t.Helper()
	menu := domain.SetMenu{
		ID:             atomic.AddInt64(&menuSeq, 1),
		Name:           name,
		PricePerPerson: decimal.NewFromFloat(price),
		Status:         status,
		NumberOfOrders: orders,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	require.NoError(t, db.Create(&menu).Error)
	return menu
}

var cuisineSeq int64

func seedCuisine(t *testing.T, db *gorm.DB, name, slug string, menus ...domain.SetMenu) domain.Cuisine {
	t.Helper()
	cuisine := domain.Cuisine{ID: atomic.AddInt64(&cuisineSeq, 1) + 10000, Name: name, Slug: slug}
	require.NoError(t, db.Create(&cuisine).Error)
	for _, m := range menus {
		link := domain.CuisineSetMenu{SetMenuID: m.ID, CuisineID: cuisine.ID}
		require.NoError(t, db.Omit("SetMenu", "Cuisine").Create(&link).Error)
	}
	return cuisine
}

func intPtr(n int) *int { return &n }

func listNames(result *ListResult) []string {
	names := make([]string, 0, len(result.Menus.Data))
	for _, m := range result.Menus.Data {
		names = append(names, m.Name)
	}
	return names
}

func TestListSortOrders(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedMenu(t, db, "Cheap", 10, 5, true, base.Add(1*time.Hour))
	seedMenu(t, db, "Mid", 25, 50, true, base.Add(2*time.Hour))
	seedMenu(t, db, "Expensive", 60, 20, true, base.Add(3*time.Hour))

	svc := NewService(db)

	result, err := svc.List(context.Background(), ListQuery{SortBy: "price_asc"})
	require.NoError(t, err)
	require.Equal(t, []string{"Cheap", "Mid", "Expensive"}, listNames(result))

	result, err = svc.List(context.Background(), ListQuery{SortBy: "price_desc"})
	require.NoError(t, err)
	require.Equal(t, []string{"Expensive", "Mid", "Cheap"}, listNames(result))

	result, err = svc.List(context.Background(), ListQuery{SortBy: "orders"})
	require.NoError(t, err)
	require.Equal(t, []string{"Mid", "Expensive", "Cheap"}, listNames(result))

	// absent sort means newest first
	result, err = svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{"Expensive", "Mid", "Cheap"}, listNames(result))
}

func TestListFiltersByCuisineSlugAndStatus(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	thaiActive := seedMenu(t, db, "Thai Active", 20, 0, true, now)
	thaiHidden := seedMenu(t, db, "Thai Hidden", 20, 0, false, now)
	seedMenu(t, db, "Unrelated", 20, 0, true, now)
	seedCuisine(t, db, "Thai", "thai", thaiActive, thaiHidden)

	svc := NewService(db)
	result, err := svc.List(context.Background(), ListQuery{CuisineSlug: "thai"})
	require.NoError(t, err)
	require.Equal(t, []string{"Thai Active"}, listNames(result))
	require.EqualValues(t, 1, result.Menus.Total)
	require.Equal(t, "thai", result.Active.CuisineSlug)

	// attached cuisines come back with the page
	require.Len(t, result.Menus.Data[0].Cuisines, 1)
	require.Equal(t, "thai", result.Menus.Data[0].Cuisines[0].Slug)
}

func TestListPagination(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 12; i++ {
		// newest first: Menu 01 is the most recent
		seedMenu(t, db, fmt.Sprintf("Menu %02d", i), 10, 0, true,
			base.Add(-time.Duration(i)*time.Hour))
	}
	seedMenu(t, db, "Inactive", 10, 0, false, base)

	svc := NewService(db)
	result, err := svc.List(context.Background(), ListQuery{Page: intPtr(2), PerPage: intPtr(5)})
	require.NoError(t, err)
	require.EqualValues(t, 12, result.Menus.Total)
	require.Equal(t, 3, result.Menus.LastPage)
	require.Equal(t, 2, result.Menus.CurrentPage)
	require.Equal(t, 5, result.Menus.PerPage)
	require.Equal(t,
		[]string{"Menu 06", "Menu 07", "Menu 08", "Menu 09", "Menu 10"},
		listNames(result))
}

func TestListBeyondLastPage(t *testing.T) {
	db := setupTestDB(t)
	seedMenu(t, db, "Only", 10, 0, true, time.Now())

	svc := NewService(db)
	result, err := svc.List(context.Background(), ListQuery{Page: intPtr(9)})
	require.NoError(t, err)
	require.Empty(t, result.Menus.Data)
	require.EqualValues(t, 1, result.Menus.Total)
	require.Equal(t, 1, result.Menus.LastPage)
}

func TestListDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	result, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	require.Equal(t, DefaultPerPage, result.Menus.PerPage)
	require.Equal(t, DefaultPage, result.Menus.CurrentPage)
	require.Equal(t, DefaultGuests, result.Active.Guests)
	require.Equal(t, 1, result.Menus.LastPage)
	require.Equal(t, SortOptions, result.Options)
}

func TestFacetsIndependentOfFilters(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	thai1 := seedMenu(t, db, "T1", 20, 10, true, now)
	thai2 := seedMenu(t, db, "T2", 30, 5, true, now)
	hidden := seedMenu(t, db, "T3", 30, 99, false, now)
	indian := seedMenu(t, db, "I1", 25, 7, true, now)
	seedCuisine(t, db, "Thai", "thai", thai1, thai2, hidden)
	seedCuisine(t, db, "Indian", "indian", indian)
	seedCuisine(t, db, "Empty", "empty")

	svc := NewService(db)
	assertFacets := func(result *ListResult) {
		t.Helper()
		require.Len(t, result.Facets, 3)
		require.Equal(t, "thai", result.Facets[0].Slug)
		require.Equal(t, 2, result.Facets[0].SetMenusCount)
		require.Equal(t, 15, result.Facets[0].NumberOfOrders)
		require.Equal(t, "indian", result.Facets[1].Slug)
		require.Equal(t, 1, result.Facets[1].SetMenusCount)
		require.Equal(t, 7, result.Facets[1].NumberOfOrders)
		require.Equal(t, "empty", result.Facets[2].Slug)
		require.Equal(t, 0, result.Facets[2].SetMenusCount)
		require.Equal(t, 0, result.Facets[2].NumberOfOrders)
	}

	unfiltered, err := svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assertFacets(unfiltered)

	filtered, err := svc.List(context.Background(), ListQuery{CuisineSlug: "indian", SortBy: "orders"})
	require.NoError(t, err)
	assertFacets(filtered)
}

func TestListValidation(t *testing.T) {
	svc := NewService(setupTestDB(t))

	cases := []struct {
		name  string
		query ListQuery
		field string
	}{
		{"per_page too large", ListQuery{PerPage: intPtr(51)}, "per_page"},
		{"per_page zero", ListQuery{PerPage: intPtr(0)}, "per_page"},
		{"page zero", ListQuery{Page: intPtr(0)}, "page"},
		{"guests zero", ListQuery{Guests: intPtr(0)}, "guests"},
		{"unknown sort", ListQuery{SortBy: "alphabetical"}, "sort_by"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tc.query)
			require.Error(t, err)
			verr, ok := err.(*ValidationError)
			require.True(t, ok, "expected ValidationError, got %T", err)
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestActiveFilterEcho(t *testing.T) {
	svc := NewService(setupTestDB(t))

	result, err := svc.List(context.Background(), ListQuery{
		CuisineSlug: "thai",
		SortBy:      "orders",
		Guests:      intPtr(6),
	})
	require.NoError(t, err)
	require.Equal(t, "thai", result.Active.CuisineSlug)
	require.Equal(t, "orders", result.Active.SortBy)
	require.Equal(t, 6, result.Active.Guests)
}
