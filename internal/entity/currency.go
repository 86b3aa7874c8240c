package entity

type Currency struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null" json:"name"`
	Code         string  `gorm:"not null;uniqueIndex" json:"code"`
	ExchangeRate float64 `gorm:"not null" json:"exchange_rate"`
}

func (Currency) TableName() string {
	return "currencies"
}
