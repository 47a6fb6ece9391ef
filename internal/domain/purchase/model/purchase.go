package model

import (
	baseModel "github.com/laujml/la-cuponera/pkg/model"
)

// A purchase has no partial or pending state: the row exists only when the
// whole atomic unit committed.
const StatusCompletada = "completada"

// Purchase is the transactional record of paying for one coupon. Immutable
// after creation; the total is the offer price snapshotted at purchase time.
type Purchase struct {
	baseModel.BaseModel
	BuyerID  string  `gorm:"column:cliente_id;type:uuid;index;not null" json:"cliente_id"`
	OfferID  string  `gorm:"column:oferta_id;type:uuid;index;not null" json:"oferta_id"`
	Quantity int     `gorm:"column:cantidad;default:1" json:"cantidad"`
	Total    float64 `gorm:"column:total;not null" json:"total"`
	Status   string  `gorm:"column:estado;default:'completada'" json:"estado"`
}

func (Purchase) TableName() string {
	return "compras"
}
