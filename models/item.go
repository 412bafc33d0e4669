package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductItem is a stock-keeping unit of timber. Stock is tracked in
// fractional bundles; BoardsPerBundle converts between the two sale units.
type ProductItem struct {
	Id              string  `json:"id" gorm:"primaryKey"`
	Name            string  `json:"name" gorm:"not null"`
	Code            string  `json:"code" gorm:"uniqueIndex;not null"`
	Type            string  `json:"type"`
	Length          float64 `json:"length"`
	Width           float64 `json:"width"`
	Thickness       float64 `json:"thickness"`
	Origin          string  `json:"origin"`
	Bundles         float64 `json:"bundles" gorm:"type:numeric(15,4);default:0"`
	BoardsPerBundle int     `json:"boards_per_bundle" gorm:"default:0"`
	BuyPrice        float64 `json:"buy_price" gorm:"type:numeric(15,2)"`
	SellPrice       float64 `json:"sell_price" gorm:"type:numeric(15,2)"`

	CreatedAt time.Time `json:"created_at"`
}

func (ProductItem) TableName() string {
	return "inventory"
}

func (item *ProductItem) BeforeCreate(tx *gorm.DB) (err error) {
	if item.Id == "" {
		// UUID version 4
		item.Id = uuid.NewString()
	}
	return
}

// TotalBoards is the stock on hand expressed in boards.
func (item *ProductItem) TotalBoards() float64 {
	return item.Bundles * float64(item.BoardsPerBundle)
}
