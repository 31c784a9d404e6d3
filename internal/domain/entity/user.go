package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// User representa un usuario de la tienda (cliente o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, client
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
