// Package importer loads set menu records from a local JSON document into
// the catalog store. Imports are idempotent: menus are keyed by name,
// cuisines by slug, and a menu's cuisine links are synchronized to exactly
// the set carried by its latest record.
package importer

import (
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feastlane/feastlane/internal/domain"
	"github.com/feastlane/feastlane/pkg/ids"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordError describes a single skipped record.
type RecordError struct {
	Index int
	Err   error
}

// Result summarizes an import run.
type Result struct {
	Imported int
	Errors   []RecordError
}

// Import reads the JSON document at path and upserts its records. A
// missing file or unparseable document is fatal; a malformed record is
// logged, collected into Result.Errors and skipped.
func Import(db *gorm.DB, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "set menu document not found at %s", path)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, raw := range records {
		if err := importRecord(db, raw); err != nil {
			zap.L().Warn("skipping set menu record",
				zap.Int("index", i), zap.Error(err))
			result.Errors = append(result.Errors, RecordError{Index: i, Err: err})
			continue
		}
		result.Imported++
		zap.L().Debug("imported set menu record", zap.Int("index", i))
	}

	zap.L().Info("import finished",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", len(result.Errors)))
	return result, nil
}

// decodeRecords accepts {"data": [...]}, a bare array, or a single object.
func decodeRecords(data []byte) ([]interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}

	switch v := doc.(type) {
	case map[string]interface{}:
		if inner, ok := v["data"].([]interface{}); ok {
			return inner, nil
		}
		return []interface{}{v}, nil
	case []interface{}:
		return v, nil
	default:
		return nil, errors.New("invalid JSON: expected object or array")
	}
}

func importRecord(db *gorm.DB, raw interface{}) error {
	rec, ok := raw.(map[string]interface{})
	if !ok {
		return errors.Errorf("record is not an object (got %T)", raw)
	}

	cuisineIDs, err := upsertCuisines(db, rec)
	if err != nil {
		return err
	}

	menu, createdAt, err := normalizeMenu(rec)
	if err != nil {
		return err
	}

	menuID, err := upsertMenu(db, menu, createdAt)
	if err != nil {
		return err
	}

	if len(cuisineIDs) > 0 {
		if err := syncCuisines(db, menuID, cuisineIDs); err != nil {
			return err
		}
	}
	return nil
}

// upsertCuisines resolves the record's cuisines list to cuisine IDs,
// creating rows as needed. Identity is keyed by slug; an explicit id in
// the source is honored only when the slug is new.
func upsertCuisines(db *gorm.DB, rec map[string]interface{}) ([]int64, error) {
	raw, ok := rec["cuisines"]
	if !ok || raw == nil {
		return nil, nil
	}
	// a non-list cuisines value is ignored, not an error
	list, ok := raw.([]interface{})
	if !ok {
		return nil, nil
	}

	cuisineIDs := make([]int64, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, errors.Errorf("cuisine entry is not an object (got %T)", item)
		}
		id, err := upsertCuisine(db, entry)
		if err != nil {
			return nil, err
		}
		cuisineIDs = append(cuisineIDs, id)
	}
	return cuisineIDs, nil
}

func upsertCuisine(db *gorm.DB, entry map[string]interface{}) (int64, error) {
	name := stringField(entry, "name", recordDefaults.UnknownCuisine)
	cuisineSlug := slugify(name)

	var cuisine domain.Cuisine
	err := db.Where("slug = ?", cuisineSlug).First(&cuisine).Error
	switch {
	case err == nil:
		if cuisine.Name != name {
			if err := db.Model(&domain.Cuisine{}).Where("id = ?", cuisine.ID).
				Update("name", name).Error; err != nil {
				return 0, errors.Wrap(err, "update cuisine")
			}
		}
		return cuisine.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		id := cast.ToInt64(entry["id"])
		if id <= 0 {
			id = ids.NextID()
		}
		cuisine = domain.Cuisine{ID: id, Name: name, Slug: cuisineSlug}
		if err := db.Create(&cuisine).Error; err != nil {
			return 0, errors.Wrap(err, "create cuisine")
		}
		return cuisine.ID, nil
	default:
		return 0, errors.Wrap(err, "query cuisine")
	}
}

// upsertMenu creates or overwrites a menu keyed by its name.
func upsertMenu(db *gorm.DB, menu domain.SetMenu, createdAt *time.Time) (int64, error) {
	var existing domain.SetMenu
	err := db.Where("name = ?", menu.Name).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		menu.ID = ids.NextID()
		if createdAt != nil {
			menu.CreatedAt = *createdAt
		}
		if err := db.Create(&menu).Error; err != nil {
			return 0, errors.Wrap(err, "create set menu")
		}
		return menu.ID, nil
	case err != nil:
		return 0, errors.Wrap(err, "query set menu")
	}

	updates := map[string]interface{}{
		"description":      menu.Description,
		"image":            menu.Image,
		"thumbnail":        menu.Thumbnail,
		"price_per_person": menu.PricePerPerson,
		"min_spend":        menu.MinSpend,
		"status":           menu.Status,
		"is_vegan":         menu.IsVegan,
		"is_vegetarian":    menu.IsVegetarian,
		"is_halal":         menu.IsHalal,
		"is_kosher":        menu.IsKosher,
		"is_seated":        menu.IsSeated,
		"is_standing":      menu.IsStanding,
		"is_canape":        menu.IsCanape,
		"is_mixed_dietary": menu.IsMixedDietary,
		"number_of_orders": menu.NumberOfOrders,
		"display_text":     menu.DisplayText,
		"updated_at":       time.Now(),
	}
	if createdAt != nil {
		updates["created_at"] = *createdAt
	}
	if err := db.Model(&domain.SetMenu{}).Where("id = ?", existing.ID).
		Updates(updates).Error; err != nil {
		return 0, errors.Wrap(err, "update set menu")
	}
	return existing.ID, nil
}

// syncCuisines replaces the menu's cuisine links with exactly cuisineIDs.
func syncCuisines(db *gorm.DB, menuID int64, cuisineIDs []int64) error {
	if err := db.Where("set_menu_id = ? AND cuisine_id NOT IN ?", menuID, cuisineIDs).
		Delete(&domain.CuisineSetMenu{}).Error; err != nil {
		return errors.Wrap(err, "prune cuisine links")
	}

	var linked []int64
	if err := db.Model(&domain.CuisineSetMenu{}).
		Where("set_menu_id = ?", menuID).
		Pluck("cuisine_id", &linked).Error; err != nil {
		return errors.Wrap(err, "list cuisine links")
	}
	have := make(map[int64]bool, len(linked))
	for _, id := range linked {
		have[id] = true
	}

	for _, id := range cuisineIDs {
		if have[id] {
			continue
		}
		link := domain.CuisineSetMenu{SetMenuID: menuID, CuisineID: id}
		if err := db.Omit(clause.Associations).Create(&link).Error; err != nil {
			return errors.Wrap(err, "link cuisine")
		}
		have[id] = true
	}
	return nil
}
