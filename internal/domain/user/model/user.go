package model

import (
	baseModel "github.com/laujml/la-cuponera/pkg/model"
)

// Roles mirror the platform's role taxonomy. Only clients buy coupons;
// merchant and staff roles exist for route gating.
const (
	RoleCliente       = "cliente"
	RoleAdminEmpresa  = "admin_empresa"
	RoleAdministrador = "administrador"
	RoleEmpleado      = "empleado"
)

// User is a registered account with its profile data.
type User struct {
	baseModel.BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"column:nombre" json:"nombre"`
	LastName     string `gorm:"column:apellido" json:"apellido"`
	DUI          string `gorm:"column:dui" json:"dui"`
	Phone        string `gorm:"column:telefono" json:"telefono"`
	Role         string `gorm:"column:rol;default:'cliente'" json:"rol"`
}

// TableName maps to the store's profile table.
func (User) TableName() string {
	return "perfiles"
}
