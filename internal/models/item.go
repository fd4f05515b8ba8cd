package models

type Item struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	UserID      uint         `json:"ownerId" gorm:"column:user_id;not null;index"`
	User        User         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name        string       `json:"name" gorm:"column:name;not null"`
	Description string       `json:"description" gorm:"column:description;not null"`
	Available   bool         `json:"available" gorm:"column:available;not null"`
	RequestID   *uint        `json:"requestId,omitempty" gorm:"column:request_id;index"`
	Request     *ItemRequest `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name
func (Item) TableName() string {
	return "items"
}
