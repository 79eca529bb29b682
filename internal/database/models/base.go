package models

import (
	"time"
)

// BaseModel provides the serial primary key and creation timestamp shared by top level entities
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:now()"`
}
