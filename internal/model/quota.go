package model

import "time"

// MarketingFee is the budget allotted to a user for the month of Time.
type MarketingFee struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"id_user" gorm:"index;not null"`
	ClusterID *uint     `json:"id_cluster"`
	Time      time.Time `json:"time" gorm:"column:recorded_at;index;not null"`
	Total     float64   `json:"total"`
}

// Recommendation is the per (user, poin, month) target used as the
// denominator of percentage-of-quota.
type Recommendation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"id_user" gorm:"index:idx_rec_key,priority:1;not null"`
	PoinID    uint      `json:"id_poin" gorm:"index:idx_rec_key,priority:2;not null"`
	Time      time.Time `json:"time" gorm:"column:period_at;index:idx_rec_key,priority:3;not null"`
	Recommend float64   `json:"recommend"`
}
