package models

import "gorm.io/gorm"

// HeroSlide is a banner on the landing page. Active slides are shown by OrderIndex.
type HeroSlide struct {
	gorm.Model
	Title      string `json:"title" gorm:"not null"`
	Subtitle   string `json:"subtitle"`
	ImageURL   string `json:"image_url" gorm:"not null"`
	LinkURL    string `json:"link_url" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0;index"`
	IsActive   bool   `json:"is_active" gorm:"index"`
}
