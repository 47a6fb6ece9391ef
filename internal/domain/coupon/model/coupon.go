package model

import (
	"time"

	offerModel "github.com/laujml/la-cuponera/internal/domain/offer/model"
	baseModel "github.com/laujml/la-cuponera/pkg/model"
)

// Stored coupon states. "vencido" may also be derived at read time; see
// Classify.
const (
	StatusDisponible = "disponible"
	StatusCanjeado   = "canjeado"
	StatusVencido    = "vencido"
)

// Coupon is one redeemable discount instance, created atomically with its
// purchase. Price and expiration are snapshots taken at purchase time.
type Coupon struct {
	baseModel.BaseModel
	Code        string     `gorm:"column:codigo;uniqueIndex;not null" json:"codigo"`
	BuyerID     string     `gorm:"column:cliente_id;type:uuid;index;not null" json:"cliente_id"`
	OfferID     string     `gorm:"column:oferta_id;type:uuid;index;not null" json:"oferta_id"`
	PurchaseID  string     `gorm:"column:compra_id;type:uuid;not null" json:"compra_id"`
	PricePaid   float64    `gorm:"column:precio_pagado" json:"precio_pagado"`
	Status      string     `gorm:"column:estado;default:'disponible'" json:"estado"`
	PurchasedAt time.Time  `gorm:"column:fecha_compra" json:"fecha_compra"`
	RedeemedAt  *time.Time `gorm:"column:fecha_canje" json:"fecha_canje,omitempty"`
	ExpiresAt   time.Time  `gorm:"column:fecha_vencimiento" json:"fecha_vencimiento"`

	Offer *offerModel.Offer `gorm:"foreignKey:OfferID" json:"oferta,omitempty"`
}

func (Coupon) TableName() string {
	return "cupones"
}
