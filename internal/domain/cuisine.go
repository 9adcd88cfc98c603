package domain

import (
	"time"
)

// Cuisine is a named tag attached to set menus. Slug is the natural key:
// it is unique and is what clients filter by.
type Cuisine struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Cuisine) TableName() string {
	return "cuisines"
}

// CuisineSetMenu links menus and cuisines. The pair is unique and the
// importer fully replaces a menu's set of rows on every re-import.
type CuisineSetMenu struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	SetMenuID int64   `gorm:"uniqueIndex:uniq_cuisine_set_menu;index" json:"set_menu_id"`
	CuisineID int64   `gorm:"uniqueIndex:uniq_cuisine_set_menu" json:"cuisine_id"`
	SetMenu   SetMenu `gorm:"foreignKey:SetMenuID;constraint:OnDelete:CASCADE" json:"-"`
	Cuisine   Cuisine `gorm:"foreignKey:CuisineID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName Specify table name
func (CuisineSetMenu) TableName() string {
	return "cuisine_set_menu"
}
