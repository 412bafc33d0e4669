package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "ADMIN"
	RoleSales = "SALES"
)

// User is an operator account. ADMIN has full access; SALES may record
// sales and view most data but cannot delete records, manage employees,
// or view financial reports.
type User struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password []byte `json:"-" gorm:"not null"`
	Role     string `json:"role" gorm:"type:varchar(10);not null"` // "ADMIN" | "SALES"
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.Id == "" {
		// UUID version 4
		user.Id = uuid.NewString()
	}
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
