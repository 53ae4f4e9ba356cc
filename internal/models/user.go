package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Email        string          `gorm:"uniqueIndex;not null" json:"email"`
	Password     string          `gorm:"not null" json:"-"`
	Name         string          `json:"name"`
	Role         string          `gorm:"default:'user'" json:"role"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,2);default:0" json:"balance"`
	Status       string          `gorm:"default:'active'" json:"status"`
	TokenVersion int             `gorm:"default:1" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
