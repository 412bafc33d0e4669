package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UnitBundle = "bundle"
	UnitBoard  = "board"
)

// Sale is one line item of a sales transaction. Lines submitted together
// share an InvoiceId. A sale is a historical ledger entry: it is immutable
// after creation, and deleting it never re-adjusts stock.
type Sale struct {
	Id        string `json:"id" gorm:"primaryKey"`
	InvoiceId string `json:"invoice_id" gorm:"index;not null"`

	// Weak reference: the item may have been deleted since.
	ItemId   string `json:"item_id" gorm:"column:inventory_id;index"`
	ItemName string `json:"item_name"` // snapshot at sale time

	Quantity   float64 `json:"quantity"`
	UnitType   string  `json:"unit_type" gorm:"type:varchar(10)"` // "bundle" | "board"
	UnitPrice  float64 `json:"unit_price" gorm:"type:numeric(15,2)"`
	TotalPrice float64 `json:"total_price" gorm:"type:numeric(15,2)"` // quantity * unit price, fixed at creation

	Date       time.Time `json:"date" gorm:"column:sale_date;index"`
	ClientName string    `json:"client_name"` // free-text snapshot, not a foreign key
}

func (sale *Sale) BeforeCreate(tx *gorm.DB) (err error) {
	if sale.Id == "" {
		sale.Id = uuid.NewString()
	}
	return
}
