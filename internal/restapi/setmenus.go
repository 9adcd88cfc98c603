package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/feastlane/feastlane/internal/catalog"
	"github.com/feastlane/feastlane/internal/webserver"
)

func registerSetMenuRoutes() {
	webserver.ApiGET("/api/set-menus", listSetMenus)
}

type filtersPayload struct {
	Cuisines      []catalog.CuisineFacet `json:"cuisines"`
	SortOptions   []catalog.SortOption   `json:"sort_options"`
	ActiveFilters catalog.ActiveFilters  `json:"active_filters"`
}

type metaPayload struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

type listResponse struct {
	Filters  filtersPayload `json:"filters"`
	SetMenus catalog.Page   `json:"setMenus"`
	Meta     metaPayload    `json:"meta"`
}

func listSetMenus(c echo.Context) error {
	var q catalog.ListQuery
	if err := c.Bind(&q); err != nil {
		return fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"Malformed query parameters")
	}

	svc := catalog.NewService(GetDB(c))
	result, err := svc.List(c.Request().Context(), q)
	if err != nil {
		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			return fail(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", verr.Error())
		}
		zap.L().Error("set menu listing failed", zap.Error(err))
		// Internal error text stays out of the response.
		return fail(c, http.StatusInternalServerError, "SERVER_ERROR",
			"Failed to fetch menus")
	}

	return ok(c, listResponse{
		Filters: filtersPayload{
			Cuisines:      result.Facets,
			SortOptions:   result.Options,
			ActiveFilters: result.Active,
		},
		SetMenus: result.Menus,
		Meta: metaPayload{
			Total:       result.Menus.Total,
			PerPage:     result.Menus.PerPage,
			CurrentPage: result.Menus.CurrentPage,
			LastPage:    result.Menus.LastPage,
		},
	})
}
