package model

import (
	"time"

	baseModel "github.com/laujml/la-cuponera/pkg/model"
)

// Offer review states.
const (
	StatusEnEspera   = "en_espera"
	StatusAprobada   = "aprobada"
	StatusRechazada  = "rechazada"
	StatusDescartada = "descartada"
)

// Offer is a merchant discount listing. Column names follow the store schema.
type Offer struct {
	baseModel.BaseModel
	Title           string    `gorm:"column:titulo;not null" json:"titulo"`
	Description     string    `gorm:"column:descripcion" json:"descripcion"`
	RegularPrice    float64   `gorm:"column:precio_regular;not null" json:"precio_regular"`
	OfferPrice      float64   `gorm:"column:precio_oferta;not null" json:"precio_oferta"`
	DiscountPercent int       `gorm:"column:porcentaje_descuento" json:"porcentaje_descuento"`
	MerchantName    string    `gorm:"column:empresa_nombre" json:"empresa_nombre"`
	MerchantAddress string    `gorm:"column:empresa_direccion" json:"empresa_direccion"`
	CategoryID      string    `gorm:"column:rubro_id;type:uuid" json:"rubro_id"`
	ImageURL        string    `gorm:"column:imagen_url" json:"imagen_url"`
	Terms           string    `gorm:"column:otros_detalles" json:"otros_detalles"`
	StartDate       time.Time `gorm:"column:fecha_inicio" json:"fecha_inicio"`
	EndDate         time.Time `gorm:"column:fecha_fin" json:"fecha_fin"`
	UseByDate       time.Time `gorm:"column:fecha_limite_uso" json:"fecha_limite_uso"`
	Limited         bool      `gorm:"column:cantidad_limite" json:"cantidad_limite"`
	QuantityCap     int       `gorm:"column:cantidad_cupones" json:"cantidad_cupones"`
	Remaining       int       `gorm:"column:cupones_disponibles" json:"cupones_disponibles"`
	Status          string    `gorm:"column:estado;default:'en_espera'" json:"estado"`
}

func (Offer) TableName() string {
	return "ofertas"
}

// Snapshot is the subset of offer fields the purchase coordinator needs.
// Captured at gate time so the price and deadline written into the coupon are
// the ones the buyer saw.
type Snapshot struct {
	ID              string
	Title           string
	MerchantName    string
	MerchantAddress string
	OfferPrice      float64
	UseByDate       time.Time
	Limited         bool
	Remaining       int
}

// SnapshotOf extracts the purchase snapshot from an offer row.
func SnapshotOf(o *Offer) *Snapshot {
	return &Snapshot{
		ID:              o.ID,
		Title:           o.Title,
		MerchantName:    o.MerchantName,
		MerchantAddress: o.MerchantAddress,
		OfferPrice:      o.OfferPrice,
		UseByDate:       o.UseByDate,
		Limited:         o.Limited,
		Remaining:       o.Remaining,
	}
}
