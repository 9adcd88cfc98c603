// Package browse is the interactive catalog client: it accumulates pages
// from the listing API, tracks filter state and renders menus with a
// per-guest total price.
package browse

import (
	"github.com/feastlane/feastlane/internal/catalog"
	"github.com/feastlane/feastlane/internal/domain"
)

// Meta mirrors the paginator block of the listing response.
type Meta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// State is the whole client view state. It only changes through Reduce.
type State struct {
	Menus       []domain.SetMenu
	Cuisines    []catalog.CuisineFacet
	SortOptions []catalog.SortOption
	Active      catalog.ActiveFilters
	Meta        Meta
	Loading     bool
	Err         string

	// latestSeq is the sequence number of the most recently issued fetch;
	// responses tagged with an older sequence are stale and dropped.
	latestSeq uint64
}

func NewState() State {
	return State{
		Active: catalog.ActiveFilters{Guests: catalog.DefaultGuests},
		Meta:   Meta{PerPage: catalog.DefaultPerPage, CurrentPage: 1, LastPage: 1},
	}
}

// CanLoadMore reports whether a "load more" fetch is currently allowed.
func (s State) CanLoadMore() bool {
	return !s.Loading && s.Meta.CurrentPage < s.Meta.LastPage
}

// Action is a state transition input. Each concrete action carries its
// own merge policy; there is no generic merge.
type Action interface {
	isAction()
}

// FetchStarted marks a fetch in flight.
type FetchStarted struct {
	Seq uint64
}

// PageLoaded delivers a fetched page. Page 1 replaces the accumulated
// list; later pages append to it.
type PageLoaded struct {
	Seq     uint64
	Page    int
	Payload ListPayload
}

// FetchFailed keeps the last good list and surfaces an error message.
type FetchFailed struct {
	Seq     uint64
	Message string
}

// FilterChanged updates one of the filter controls. Nil fields are
// untouched. The caller is expected to issue a fresh page-1 fetch next.
type FilterChanged struct {
	CuisineSlug *string
	SortBy      *string
	Guests      *int
}

func (FetchStarted) isAction()  {}
func (PageLoaded) isAction()    {}
func (FetchFailed) isAction()   {}
func (FilterChanged) isAction() {}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case FetchStarted:
		s.Loading = true
		s.Err = ""
		s.latestSeq = act.Seq
		return s

	case PageLoaded:
		if act.Seq != s.latestSeq {
			return s
		}
		if act.Page <= 1 {
			s.Menus = act.Payload.SetMenus.Data
		} else {
			s.Menus = append(s.Menus, act.Payload.SetMenus.Data...)
		}
		s.Cuisines = act.Payload.Filters.Cuisines
		s.SortOptions = act.Payload.Filters.SortOptions
		s.Active = act.Payload.Filters.ActiveFilters
		s.Meta = act.Payload.Meta
		s.Loading = false
		s.Err = ""
		return s

	case FetchFailed:
		if act.Seq != s.latestSeq {
			return s
		}
		s.Loading = false
		s.Err = act.Message
		return s

	case FilterChanged:
		if act.CuisineSlug != nil {
			s.Active.CuisineSlug = *act.CuisineSlug
		}
		if act.SortBy != nil {
			s.Active.SortBy = *act.SortBy
		}
		if act.Guests != nil && *act.Guests >= 1 {
			s.Active.Guests = *act.Guests
		}
		s.Meta.CurrentPage = 1
		return s

	default:
		return s
	}
}
