package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee carries a monthly salary and cumulative advances. The net amount
// due is derived on read and never stored.
type Employee struct {
	Id       string  `json:"id" gorm:"primaryKey"`
	Name     string  `json:"name" gorm:"uniqueIndex;not null"`
	Position string  `json:"position"`
	Salary   float64 `json:"salary" gorm:"type:numeric(15,2)"`
	Advances float64 `json:"advances" gorm:"type:numeric(15,2);default:0"`
}

func (employee *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if employee.Id == "" {
		employee.Id = uuid.NewString()
	}
	return
}

// NetDue is salary minus cumulative advances.
func (employee *Employee) NetDue() float64 {
	return employee.Salary - employee.Advances
}
