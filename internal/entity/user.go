package entity

import "time"

type User struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username       string    `gorm:"not null" json:"username"`
	Email          string    `gorm:"not null;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"not null" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
