package dto

import (
	"barcontrol/pkg/brl"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// AbrirCaixaRequest aceita o saldo inicial tanto como número quanto como
// texto mascarado ("R$ 1.250,00") vindo do campo de digitação do front.
type AbrirCaixaRequest struct {
	SaldoInicial brl.Amount `json:"saldo_inicial"`
	Observacao   *string    `json:"observacao"`
}

type FecharCaixaRequest struct {
	SaldoFinal brl.Amount `json:"saldo_final"`
	Observacao *string    `json:"observacao"`
}

type MovimentoCaixaRequest struct {
	Tipo      string     `json:"tipo"  validate:"required,oneof=VENDA REFORCO SANGRIA AJUSTE"`
	Valor     brl.Amount `json:"valor"`
	Descricao *string    `json:"descricao"`
}

type VendaItemRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int64  `json:"quantidade" validate:"required,min=1"`
}

// VendaBalcaoRequest registra uma venda direta de balcão na sessão aberta.
type VendaBalcaoRequest struct {
	Itens         []VendaItemRequest `json:"itens"          validate:"required,min=1,dive"`
	PagamentoTipo string             `json:"pagamento_tipo" validate:"required,oneof=DINHEIRO CARTAO"`
	ValorRecebido *brl.Amount        `json:"valor_recebido"`
	Descricao     *string            `json:"descricao"`
}

// MovimentoFilter is bound from the query string of GET /v1/caixa/movimentos.
type MovimentoFilter struct {
	DataInicio string `form:"data_inicio"` // YYYY-MM-DD; empty = open start
	DataFim    string `form:"data_fim"`    // YYYY-MM-DD; empty = open end
	Tipo       string `form:"tipo"        validate:"omitempty,oneof=VENDA REFORCO SANGRIA AJUSTE ABERTURA FECHAMENTO"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID           string          `json:"id"`
	Status       string          `json:"status"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	SaldoFinal   *decimal.Decimal `json:"saldo_final"`
	Observacao   *string         `json:"observacao"`
	AbertoEm     string          `json:"aberto_em"`
	FechadoEm    *string         `json:"fechado_em"`
}

type MovimentoCaixaResponse struct {
	ID            string           `json:"id"`
	CaixaID       string           `json:"caixa_id"`
	Tipo          string           `json:"tipo"`
	Valor         decimal.Decimal  `json:"valor"`
	Descricao     *string          `json:"descricao"`
	PagamentoTipo *string          `json:"pagamento_tipo"`
	ValorRecebido *decimal.Decimal `json:"valor_recebido"`
	Troco         *decimal.Decimal `json:"troco"`
	CriadoEm      string           `json:"criado_em"`
}

type VendaBalcaoResponse struct {
	Movimento    MovimentoCaixaResponse `json:"movimento"`
	Total        decimal.Decimal        `json:"total"`
	Troco        decimal.Decimal        `json:"troco"`
	TotalFmt     string                 `json:"total_fmt"`
	TrocoFmt     string                 `json:"troco_fmt"`
}

// ResumoCaixaResponse carrega os totais dobrados a partir do livro de
// movimentos; o saldo nunca vem de um acumulador separado.
type ResumoCaixaResponse struct {
	Caixa              *CaixaResponse           `json:"caixa"`
	Entradas           decimal.Decimal          `json:"entradas"`
	Saidas             decimal.Decimal          `json:"saidas"`
	Saldo              decimal.Decimal          `json:"saldo"`
	TotalVendidoCaixa  decimal.Decimal          `json:"total_vendido_caixa"`
	Movimentos         []MovimentoCaixaResponse `json:"movimentos"`
}

type RelatorioCaixaResponse struct {
	Arquivo string `json:"arquivo"`
}
