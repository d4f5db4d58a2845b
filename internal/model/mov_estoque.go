package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque. ESTORNO devolve estoque e conta como
// entrada, indistinguível de uma ENTRADA nova nos agregados.
const (
	EstoqueEntrada = "ENTRADA"
	EstoqueBaixa   = "BAIXA"
	EstoqueEstorno = "ESTORNO"
)

// MovEstoque registra cada mudança de estoque de um produto. Criado ao
// vender, ao dar entrada/saída manual e ao estornar item de comanda.
// Append-only: nunca alterado nem apagado.
type MovEstoque struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID     *uuid.UUID      `gorm:"type:uuid;index"`
	ItemComandaID *uuid.UUID      `gorm:"type:uuid;index"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          string          `gorm:"size:20;not null"`
	Quantidade    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	DataHora      time.Time       `gorm:"index;autoCreateTime"`
	Detalhe       *string         `gorm:"size:255"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (MovEstoque) TableName() string { return "mov_estoque" }
