package model

import "time"

// Poin is one expense category. The set is small and fixed.
type Poin struct {
	ID        uint      `json:"id_poin" gorm:"primaryKey"`
	Type      string    `json:"type" gorm:"not null"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

var DefaultPoins = []Poin{
	{ID: 1, Type: "Entertainment"},
	{ID: 2, Type: "Transport"},
	{ID: 3, Type: "Konsumsi"},
	{ID: 4, Type: "Akomodasi"},
	{ID: 5, Type: "Event"},
	{ID: 6, Type: "Merchandise"},
	{ID: 7, Type: "Lain-lain"},
}
