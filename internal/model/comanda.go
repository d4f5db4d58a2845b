package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	ComandaAberta     = "ABERTA"
	ComandaFinalizada = "FINALIZADA"
	ComandaCancelada  = "CANCELADA"
)

// Comanda é a conta aberta de uma mesa, acumulando itens precificados até
// ser finalizada ou cancelada.
type Comanda struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Numero é o identificador humano sequencial impresso na comanda.
	Numero       int             `gorm:"autoIncrement;uniqueIndex"`
	VendedorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Mesa         *string         `gorm:"size:20"`
	Observacao   *string         `gorm:"size:255"`
	Status       string          `gorm:"size:20;not null;default:'ABERTA';index"`
	ValorTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CriadaEm     time.Time       `gorm:"autoCreateTime"`
	AtualizadaEm time.Time       `gorm:"autoUpdateTime"`

	Itens []ItemComanda `gorm:"foreignKey:ComandaID"`
}

func (Comanda) TableName() string { return "comandas" }

type ItemComanda struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,3);not null;default:1"`
	PrecoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalItem     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CriadoEm      time.Time       `gorm:"autoCreateTime"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemComanda) TableName() string { return "itens_comanda" }
