package importer

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/feastlane/feastlane/internal/domain"
)

// recordDefaults is the single source of truth for default field values.
// Any create path must go through normalizeMenu so the importer and the
// API can never diverge on defaults.
var recordDefaults = struct {
	Name           string
	Description    string
	UnknownCuisine string
	Status         bool
}{
	Name:           "Unnamed Menu",
	Description:    "No description available",
	UnknownCuisine: "Unknown Cuisine",
	Status:         true,
}

func stringField(rec map[string]interface{}, key, def string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return def
	}
	s := cast.ToString(v)
	if s == "" {
		return def
	}
	return s
}

func boolField(rec map[string]interface{}, key string, def bool) bool {
	v, ok := rec[key]
	if !ok || v == nil {
		return def
	}
	return cast.ToBool(v)
}

func decimalField(rec map[string]interface{}, key string) decimal.Decimal {
	v, ok := rec[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	if s := cast.ToString(v); s != "" {
		if d, err := decimal.NewFromString(s); err == nil && !d.IsNegative() {
			return d
		}
	}
	d := decimal.NewFromFloat(cast.ToFloat64(v))
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func intField(rec map[string]interface{}, key string) int {
	n := cast.ToInt(rec[key])
	if n < 0 {
		return 0
	}
	return n
}

// normalizeMenu maps a partial import record to a fully populated SetMenu,
// applying recordDefaults for every missing field. The returned timestamp
// is the optional created_at override carried by the record.
func normalizeMenu(rec map[string]interface{}) (domain.SetMenu, *time.Time, error) {
	m := domain.SetMenu{
		Name:           stringField(rec, "name", recordDefaults.Name),
		Description:    stringField(rec, "description", recordDefaults.Description),
		Image:          stringField(rec, "image", ""),
		Thumbnail:      stringField(rec, "thumbnail", ""),
		PricePerPerson: decimalField(rec, "price_per_person"),
		MinSpend:       decimalField(rec, "min_spend"),
		Status:         boolField(rec, "status", recordDefaults.Status),
		IsVegan:        boolField(rec, "is_vegan", false),
		IsVegetarian:   boolField(rec, "is_vegetarian", false),
		IsHalal:        boolField(rec, "is_halal", false),
		IsKosher:       boolField(rec, "is_kosher", false),
		IsSeated:       boolField(rec, "is_seated", false),
		IsStanding:     boolField(rec, "is_standing", false),
		IsCanape:       boolField(rec, "is_canape", false),
		IsMixedDietary: boolField(rec, "is_mixed_dietary", false),
		NumberOfOrders: intField(rec, "number_of_orders"),
		DisplayText:    boolField(rec, "display_text", false),
	}

	if v, ok := rec["created_at"]; ok && v != nil {
		ts, err := dateparse.ParseAny(cast.ToString(v))
		if err != nil {
			return m, nil, errors.Wrap(err, "invalid created_at")
		}
		return m, &ts, nil
	}
	return m, nil, nil
}
