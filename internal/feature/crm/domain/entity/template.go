package entity

import "time"

// Template は件名と本文の再利用可能な組です。
type Template struct {
	ID        uint   `gorm:"primaryKey"`
	Subject   string `gorm:"size:255"`
	Body      string `gorm:"type:text"`
	Type      string `gorm:"size:50"`
	CreatedAt time.Time
}
