package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Stock is never negative: order placement
// decrements it with a guarded update and cancellation restores it.
// Images holds remote store URLs in display order.
type Product struct {
	ID          string          `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex;not null"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	Images      pq.StringArray  `json:"images" gorm:"type:text[]"`
	IsActive    bool            `json:"isActive" gorm:"not null;default:true"`
	CategoryID  string          `json:"categoryId" gorm:"type:uuid;not null;index"`
	Category    Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Product) HasImage(url string) bool {
	for _, img := range p.Images {
		if img == url {
			return true
		}
	}
	return false
}
