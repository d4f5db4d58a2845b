package dto

import (
	"barcontrol/pkg/brl"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ComponenteRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
}

type CriarProdutoRequest struct {
	Nome          string              `json:"nome"           validate:"required,min=2,max=120"`
	Preco         brl.Amount          `json:"preco"`
	EstoqueAtual  decimal.Decimal     `json:"estoque_atual"  validate:"min=0"`
	EstoqueMinimo decimal.Decimal     `json:"estoque_minimo" validate:"min=0"`
	Tipo          string              `json:"tipo"           validate:"omitempty,oneof=SIMPLES COMBO"`
	Componentes   []ComponenteRequest `json:"componentes"    validate:"omitempty,dive"`
}

type AtualizarProdutoRequest struct {
	Nome          *string              `json:"nome"           validate:"omitempty,min=2,max=120"`
	Preco         *brl.Amount          `json:"preco"`
	EstoqueMinimo *decimal.Decimal     `json:"estoque_minimo" validate:"omitempty,min=0"`
	Ativo         *bool                `json:"ativo"`
	Componentes   *[]ComponenteRequest `json:"componentes"    validate:"omitempty,dive"`
}

// MovimentoEstoqueRequest cobre entrada manual e saída/ajuste de estoque.
type MovimentoEstoqueRequest struct {
	Quantidade decimal.Decimal `json:"quantidade" validate:"required"`
	Detalhe    *string         `json:"detalhe"`
}

// EstoqueFilter is bound from the query string of GET /v1/produtos/movimentos.
type EstoqueFilter struct {
	DataInicio string `form:"data_inicio"`
	DataFim    string `form:"data_fim"`
	ProdutoID  string `form:"produto_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ComponenteResponse struct {
	ProdutoID  string          `json:"produto_id"`
	Nome       string          `json:"nome"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

type ProdutoResponse struct {
	ID             string               `json:"id"`
	Nome           string               `json:"nome"`
	Preco          decimal.Decimal      `json:"preco"`
	PrecoFmt       string               `json:"preco_fmt"`
	EstoqueAtual   decimal.Decimal      `json:"estoque_atual"`
	EstoqueMinimo  decimal.Decimal      `json:"estoque_minimo"`
	Tipo           string               `json:"tipo"`
	Ativo          bool                 `json:"ativo"`
	SaldoAtual     decimal.Decimal      `json:"saldo_atual"`
	CanAdd         bool                 `json:"can_add"`
	ReasonDisabled *string              `json:"reason_disabled"`
	Componentes    []ComponenteResponse `json:"componentes,omitempty"`
}

type MovimentoEstoqueResponse struct {
	ID          string          `json:"id"`
	ProdutoID   string          `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome"`
	Tipo        string          `json:"tipo"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	Detalhe     *string         `json:"detalhe"`
	DataHora    string          `json:"data_hora"`
}

// LinhaEstoqueResponse é uma linha do agregado por produto, na ordem de
// primeira aparição no livro filtrado.
type LinhaEstoqueResponse struct {
	ProdutoID   string          `json:"produto_id"`
	ProdutoNome string          `json:"produto_nome"`
	Entradas    decimal.Decimal `json:"entradas"`
	Saidas      decimal.Decimal `json:"saidas"`
	Saldo       decimal.Decimal `json:"saldo"`
}

type MovimentosEstoqueResponse struct {
	Movimentos []MovimentoEstoqueResponse `json:"movimentos"`
	PorProduto []LinhaEstoqueResponse     `json:"por_produto"`
}
