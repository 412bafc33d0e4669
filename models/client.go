package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClientTypeCash   = "CASH"
	ClientTypeCredit = "CREDIT"
)

// Client is a buyer. Name is the natural key: sales reference clients by
// name, and an unknown name on a sale batch auto-registers a CASH client.
type Client struct {
	Id      string `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"uniqueIndex;not null"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type" gorm:"type:varchar(10);default:CASH"` // "CASH" | "CREDIT"
}

func (client *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if client.Id == "" {
		client.Id = uuid.NewString()
	}
	return
}
