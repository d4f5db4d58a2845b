package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de produto: SIMPLES controla estoque próprio; COMBO deriva a
// disponibilidade do estoque dos seus componentes simples.
const (
	ProdutoSimples = "SIMPLES"
	ProdutoCombo   = "COMBO"
)

type Produto struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Estoque permite fracionado (doses), por isso decimal(12,3).
	Nome          string          `gorm:"size:200;not null"`
	Preco         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	EstoqueAtual  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	EstoqueMinimo decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Tipo          string          `gorm:"size:20;not null;default:'SIMPLES'"`
	Ativo         bool            `gorm:"default:true"`
	CriadoEm      time.Time       `gorm:"autoCreateTime"`
	AtualizadoEm  time.Time       `gorm:"autoUpdateTime"`

	Componentes []ProdutoComponente `gorm:"foreignKey:ProdutoComboID"`
}

func (Produto) TableName() string { return "produtos" }

// ProdutoComponente liga um COMBO a um produto SIMPLES e à quantidade
// consumida por unidade do combo.
type ProdutoComponente struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoComboID      uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_combo_componente"`
	ProdutoComponenteID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_combo_componente"`
	Quantidade          decimal.Decimal `gorm:"type:decimal(12,3);not null"`
}

func (ProdutoComponente) TableName() string { return "produtos_componentes" }
