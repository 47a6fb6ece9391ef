package model

import (
	baseModel "github.com/laujml/la-cuponera/pkg/model"
)

// Category is a merchant vertical (restaurantes, salones, ...) offers are
// filed under.
type Category struct {
	baseModel.BaseModel
	Name   string `gorm:"column:nombre;not null" json:"nombre"`
	Active bool   `gorm:"column:activo;default:true" json:"activo"`
}

func (Category) TableName() string {
	return "rubros"
}
