package models

import "time"

// ItemRequest is a user's posted wish for an item that does not exist yet.
// Items created in response point back at it through their request reference.
type ItemRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"requesterId" gorm:"column:user_id;not null;index"`
	User        User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Description string    `json:"description" gorm:"column:description;not null"`
	Created     time.Time `json:"created" gorm:"column:created;not null"`
}

// TableName specifies the table name
func (ItemRequest) TableName() string {
	return "requests"
}
