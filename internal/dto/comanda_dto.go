package dto

import (
	"barcontrol/pkg/brl"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarComandaRequest struct {
	Mesa       *string `json:"mesa"`
	Observacao *string `json:"observacao"`
	// Somente ADMIN pode atribuir a comanda a outro vendedor.
	VendedorID *string `json:"vendedor_id" validate:"omitempty,uuid"`
}

type AdicionarItemRequest struct {
	ProdutoID  string          `json:"produto_id" validate:"required,uuid"`
	Quantidade decimal.Decimal `json:"quantidade"`
}

type FinalizarComandaRequest struct {
	PagamentoTipo string      `json:"pagamento_tipo" validate:"required,oneof=DINHEIRO CARTAO"`
	ValorRecebido *brl.Amount `json:"valor_recebido"`
}

// ComandaFilter is bound from the query string of GET /v1/comandas.
type ComandaFilter struct {
	Status string `form:"status" validate:"omitempty,oneof=ABERTA FINALIZADA CANCELADA all"`
	Mesa   string `form:"mesa"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemComandaResponse struct {
	ID             string          `json:"id"`
	ProdutoID      string          `json:"produto_id"`
	ProdutoNome    string          `json:"produto_nome"`
	Quantidade     decimal.Decimal `json:"quantidade"`
	PrecoUnitario  decimal.Decimal `json:"preco_unitario"`
	TotalItem      decimal.Decimal `json:"total_item"`
	CriadoEm       string          `json:"criado_em"`
}

type ComandaResponse struct {
	ID          string                `json:"id"`
	Numero      int                   `json:"numero"`
	VendedorID  string                `json:"vendedor_id"`
	Mesa        *string               `json:"mesa"`
	Observacao  *string               `json:"observacao"`
	Status      string                `json:"status"`
	ValorTotal  decimal.Decimal       `json:"valor_total"`
	ValorFmt    string                `json:"valor_fmt"`
	CriadaEm    string                `json:"criada_em"`
	AtualizadaEm string               `json:"atualizada_em"`
	Itens       []ItemComandaResponse `json:"itens,omitempty"`
}

type FinalizarComandaResponse struct {
	Comanda ComandaResponse `json:"comanda"`
	Total   decimal.Decimal `json:"total"`
	Troco   decimal.Decimal `json:"troco"`
}

// ResumoDiaResponse agrega as comandas finalizadas do dia corrente.
type ResumoDiaResponse struct {
	Quantidade   int             `json:"quantidade"`
	TotalVendido decimal.Decimal `json:"total_vendido"`
	PorVendedor  []VendedorTotal `json:"por_vendedor"`
	PorProduto   []ProdutoTotal  `json:"por_produto"`
}

type VendedorTotal struct {
	VendedorID string          `json:"vendedor_id"`
	Nome       string          `json:"nome"`
	Quantidade int             `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}

type ProdutoTotal struct {
	ProdutoID  string          `json:"produto_id"`
	Nome       string          `json:"nome"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Total      decimal.Decimal `json:"total"`
}
