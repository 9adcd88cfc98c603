package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetMenu represents a purchasable catering package. Name is the natural
// unique key used by the importer; two records with the same name collapse
// into one row, last write wins.
type SetMenu struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"index" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Image          string          `gorm:"size:1024" json:"image"`
	Thumbnail      string          `gorm:"size:1024" json:"thumbnail"`
	PricePerPerson decimal.Decimal `gorm:"type:decimal(8,2);index" json:"price_per_person"`
	MinSpend       decimal.Decimal `gorm:"type:decimal(8,2)" json:"min_spend"`
	Status         bool            `gorm:"index" json:"status"`
	IsVegan        bool            `json:"is_vegan"`
	IsVegetarian   bool            `json:"is_vegetarian"`
	IsHalal        bool            `json:"is_halal"`
	IsKosher       bool            `json:"is_kosher"`
	IsSeated       bool            `json:"is_seated"`
	IsStanding     bool            `json:"is_standing"`
	IsCanape       bool            `json:"is_canape"`
	IsMixedDietary bool            `json:"is_mixed_dietary"`
	NumberOfOrders int             `gorm:"index" json:"number_of_orders"`
	DisplayText    bool            `json:"display_text"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Loaded through the join table with an explicit query, never eagerly.
	Cuisines []Cuisine `gorm:"-" json:"cuisines"`
}

// TableName Specify table name
func (SetMenu) TableName() string {
	return "set_menus"
}
