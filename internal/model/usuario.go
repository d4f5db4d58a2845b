package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles conhecidos. CAIXA registra apenas vendas de balcão; VENDEDOR opera
// comandas e caixa; ADMIN administra tudo.
const (
	RoleAdmin    = "ADMIN"
	RoleVendedor = "VENDEDOR"
	RoleCaixa    = "CAIXA"
)

type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string    `gorm:"size:120;not null"`
	Username     string    `gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:'VENDEDOR'"`
	Ativo        bool      `gorm:"default:true"`
	CriadoEm     time.Time `gorm:"autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }
