package catalog

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultGuests  = 1
	DefaultPage    = 1
	DefaultPerPage = 9
	MaxPerPage     = 50
)

// ListQuery carries the untyped request parameters of GET /api/set-menus.
// Pointer fields distinguish "absent" from an explicit zero, so page=0 is
// rejected while a missing page defaults to 1.
type ListQuery struct {
	CuisineSlug string `query:"cuisine_slug" validate:"omitempty,max=190"`
	Guests      *int   `query:"guests" validate:"omitempty,min=1"`
	Page        *int   `query:"page" validate:"omitempty,min=1"`
	PerPage     *int   `query:"per_page" validate:"omitempty,min=1,max=50"`
	SortBy      string `query:"sort_by" validate:"omitempty,oneof=price_asc price_desc orders"`
}

// ValidationError names the query field that failed its constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = validator.New()

// paramNames maps struct fields to their wire names.
var paramNames = map[string]string{
	"CuisineSlug": "cuisine_slug",
	"Guests":      "guests",
	"Page":        "page",
	"PerPage":     "per_page",
	"SortBy":      "sort_by",
}

// Validate rejects out-of-range or unrecognized parameters before any
// query runs. An absent sort_by is valid and means default ordering.
func (q ListQuery) Validate() error {
	err := validate.Struct(q)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &ValidationError{Field: "query", Message: "malformed parameters"}
	}
	fe := verrs[0]
	name := paramNames[fe.StructField()]
	if name == "" {
		name = fe.StructField()
	}
	return &ValidationError{
		Field:   name,
		Message: fmt.Sprintf("failed constraint %q", fe.Tag()),
	}
}

func (q ListQuery) guests() int {
	if q.Guests == nil {
		return DefaultGuests
	}
	return *q.Guests
}

func (q ListQuery) page() int {
	if q.Page == nil {
		return DefaultPage
	}
	return *q.Page
}

func (q ListQuery) perPage() int {
	if q.PerPage == nil {
		return DefaultPerPage
	}
	return *q.PerPage
}
