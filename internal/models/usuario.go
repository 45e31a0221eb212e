package models

import "time"

type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Nombre       string `gorm:"size:200;not null"`
	Rol          string `gorm:"size:50;not null;default:admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
