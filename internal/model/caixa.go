package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CaixaAberto  = "ABERTO"
	CaixaFechado = "FECHADO"
)

// Tipos de movimento de caixa. ABERTURA e FECHAMENTO são marcadores de
// lifecycle e não entram nas somas de entradas/saídas.
const (
	MovVenda      = "VENDA"
	MovReforco    = "REFORCO"
	MovSangria    = "SANGRIA"
	MovAjuste     = "AJUSTE"
	MovAbertura   = "ABERTURA"
	MovFechamento = "FECHAMENTO"
)

const (
	PagamentoDinheiro = "DINHEIRO"
	PagamentoCartao   = "CARTAO"
)

// Caixa representa a sessão de caixa de um turno. No máximo uma sessão
// ABERTO existe por vez; o saldo exibido nunca é armazenado, sempre
// recalculado a partir dos movimentos.
type Caixa struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Status       string           `gorm:"size:20;not null;default:'ABERTO';index"`
	SaldoInicial decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoFinal   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observacao   *string          `gorm:"size:255"`
	AbertoEm     time.Time        `gorm:"index;autoCreateTime"`
	FechadoEm    *time.Time       `gorm:"index"`

	Movimentos []CaixaMov `gorm:"foreignKey:CaixaID"`
}

func (Caixa) TableName() string { return "caixas" }

// CaixaMov é um lançamento imutável no livro do caixa. Movimentos nunca são
// alterados nem apagados; correções geram lançamentos inversos.
type CaixaMov struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	Tipo          string           `gorm:"size:20;not null"`
	Valor         decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Descricao     *string          `gorm:"size:255"`
	PagamentoTipo *string          `gorm:"size:20"`
	ValorRecebido *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Troco         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CriadoEm      time.Time        `gorm:"index;autoCreateTime"`
}

func (CaixaMov) TableName() string { return "caixa_movimentos" }
