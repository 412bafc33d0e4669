package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase is a supply/restock event. Like Sale it is a ledger entry:
// deleting one does not subtract the delivered bundles back out of stock.
type Purchase struct {
	Id              string    `json:"id" gorm:"primaryKey"`
	ItemId          string    `json:"item_id" gorm:"column:inventory_id;index"`
	QuantityBundles float64   `json:"quantity_bundles" gorm:"type:numeric(15,4)"`
	Cost            float64   `json:"cost" gorm:"type:numeric(15,2)"`
	Date            time.Time `json:"date" gorm:"column:purchase_date;index"`
	Supplier        string    `json:"supplier"`
}

func (purchase *Purchase) BeforeCreate(tx *gorm.DB) (err error) {
	if purchase.Id == "" {
		purchase.Id = uuid.NewString()
	}
	return
}
