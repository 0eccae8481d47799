package models

import "time"

type User struct {
	ID              string    `gorm:"type:varchar(64);primarykey" json:"id"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash    string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName       string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName        string    `gorm:"type:varchar(100)" json:"lastName"`
	ProfileImageURL string    `gorm:"type:varchar(512)" json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Relations
	Tasks []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
