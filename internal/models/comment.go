package models

import "time"

type Comment struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"authorId" gorm:"column:user_id;not null;index"`
	User    User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ItemID  uint      `json:"itemId" gorm:"column:item_id;not null;index"`
	Item    Item      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Text    string    `json:"text" gorm:"column:text;not null"`
	Created time.Time `json:"created" gorm:"column:created;not null"`
}

// TableName specifies the table name
func (Comment) TableName() string {
	return "comments"
}
