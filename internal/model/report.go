package model

import "time"

// Report is one usage event. Status false means pending; it flips to true
// only through batch approval, which also stamps ApprovedAt.
type Report struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"id_user" gorm:"index:idx_report_user_time,priority:1;not null"`
	PoinID      uint       `json:"id_poin" gorm:"index;not null"`
	Description string     `json:"description" gorm:"size:255"`
	AmountUsed  float64    `json:"amount_used"`
	ImageURL    string     `json:"image_url" gorm:"size:255"`
	Time        time.Time  `json:"time" gorm:"column:reported_at;index:idx_report_user_time,priority:2;not null"`
	Status      bool       `json:"status" gorm:"not null;default:false"`
	ApprovedAt  *time.Time `json:"approved_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Poin *Poin `json:"poin,omitempty" gorm:"foreignKey:PoinID"`
}

func (r *Report) Pending() bool { return !r.Status }
