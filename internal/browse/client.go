package browse

import (
	"context"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/feastlane/feastlane/internal/catalog"
)

// ListPayload mirrors the body of GET /api/set-menus.
type ListPayload struct {
	Filters struct {
		Cuisines      []catalog.CuisineFacet `json:"cuisines"`
		SortOptions   []catalog.SortOption   `json:"sort_options"`
		ActiveFilters catalog.ActiveFilters  `json:"active_filters"`
	} `json:"filters"`
	SetMenus catalog.Page `json:"setMenus"`
	Meta     Meta         `json:"meta"`
}

// Client fetches listing pages from a running catalog server.
type Client struct {
	baseURL string
	timeout time.Duration
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, timeout: 15 * time.Second}
}

// FetchPage retrieves one page for the given filters.
func (c *Client) FetchPage(ctx context.Context, active catalog.ActiveFilters, page, perPage int) (*ListPayload, error) {
	query := gout.H{
		"page":     page,
		"per_page": perPage,
		"guests":   active.Guests,
	}
	if active.CuisineSlug != "" {
		query["cuisine_slug"] = active.CuisineSlug
	}
	if active.SortBy != "" {
		query["sort_by"] = active.SortBy
	}

	var payload ListPayload
	var status int
	err := gout.GET(c.baseURL + "/api/set-menus").
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetQuery(query).
		BindJSON(&payload).
		Code(&status).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "fetch set menus")
	}
	if status != 200 {
		return nil, errors.Errorf("fetch set menus: unexpected status %d", status)
	}
	return &payload, nil
}
