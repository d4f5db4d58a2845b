// Package ledger contém a aritmética pura do caixa e do estoque: filtros de
// período, classificação de movimentos e as dobras que derivam saldos a
// partir dos livros append-only. Nenhuma função aqui guarda estado: o saldo
// exibido é SEMPRE o resultado de uma dobra sobre a lista de movimentos,
// nunca um contador mantido à parte.
package ledger

import (
	"time"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria de um movimento para fins de agregação.
type Categoria int

const (
	CategoriaNeutra Categoria = iota
	CategoriaEntrada
	CategoriaSaida
)

// ClassificaCaixa mapeia um tipo de movimento de caixa para entrada/saída.
// ABERTURA e FECHAMENTO são marcadores de lifecycle e ficam neutros.
func ClassificaCaixa(tipo string) Categoria {
	switch tipo {
	case model.MovVenda, model.MovReforco, model.MovAjuste:
		return CategoriaEntrada
	case model.MovSangria:
		return CategoriaSaida
	default:
		return CategoriaNeutra
	}
}

// ClassificaEstoque mapeia um tipo de movimento de estoque. ESTORNO repõe
// estoque e conta como entrada, igual a uma ENTRADA nova.
func ClassificaEstoque(tipo string) Categoria {
	switch tipo {
	case model.EstoqueEntrada, model.EstoqueEstorno:
		return CategoriaEntrada
	case model.EstoqueBaixa:
		return CategoriaSaida
	default:
		return CategoriaNeutra
	}
}

// Periodo é um filtro de datas inclusivo nas duas pontas: do início do dia
// de Inicio (00:00:00) até o último segundo do dia de Fim (23:59:59).
type Periodo struct {
	Inicio *time.Time
	Fim    *time.Time
}

// NovoPeriodo monta um Periodo a partir de datas "2006-01-02" opcionais,
// interpretadas no fuso informado. Strings vazias deixam a ponta aberta;
// datas inválidas também (filtro permissivo, nunca erro).
func NovoPeriodo(inicio, fim string, loc *time.Location) Periodo {
	var p Periodo
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation("2006-01-02", inicio, loc); err == nil && inicio != "" {
		p.Inicio = &t
	}
	if t, err := time.ParseInLocation("2006-01-02", fim, loc); err == nil && fim != "" {
		f := t.Add(24*time.Hour - time.Second)
		p.Fim = &f
	}
	return p
}

// Vazio informa se nenhuma ponta do período foi definida.
func (p Periodo) Vazio() bool { return p.Inicio == nil && p.Fim == nil }

// Contem decide se um instante cai dentro do período. Um instante zero nunca
// é incluído: item sem timestamp fica fora de qualquer filtro.
func (p Periodo) Contem(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if p.Inicio != nil && t.Before(*p.Inicio) {
		return false
	}
	if p.Fim != nil && t.After(*p.Fim) {
		return false
	}
	return true
}

// FiltrarMovimentos devolve os movimentos de caixa dentro do período.
func FiltrarMovimentos(movs []model.CaixaMov, p Periodo) []model.CaixaMov {
	if p.Vazio() {
		out := make([]model.CaixaMov, 0, len(movs))
		return append(out, movs...)
	}
	out := make([]model.CaixaMov, 0, len(movs))
	for _, m := range movs {
		if p.Contem(m.CriadoEm) {
			out = append(out, m)
		}
	}
	return out
}

// FiltrarEstoque devolve os movimentos de estoque dentro do período.
func FiltrarEstoque(movs []model.MovEstoque, p Periodo) []model.MovEstoque {
	if p.Vazio() {
		out := make([]model.MovEstoque, 0, len(movs))
		return append(out, movs...)
	}
	out := make([]model.MovEstoque, 0, len(movs))
	for _, m := range movs {
		if p.Contem(m.DataHora) {
			out = append(out, m)
		}
	}
	return out
}

// Fluxo é o total de entradas e saídas de uma lista de movimentos.
type Fluxo struct {
	Entradas decimal.Decimal
	Saidas   decimal.Decimal
}

// FluxoCaixa soma os movimentos de caixa por categoria usando o
// classificador informado (ClassificaCaixa na prática).
func FluxoCaixa(movs []model.CaixaMov, classifica func(tipo string) Categoria) Fluxo {
	f := Fluxo{Entradas: decimal.Zero, Saidas: decimal.Zero}
	for _, m := range movs {
		switch classifica(m.Tipo) {
		case CategoriaEntrada:
			f.Entradas = f.Entradas.Add(m.Valor)
		case CategoriaSaida:
			f.Saidas = f.Saidas.Add(m.Valor)
		}
	}
	return f
}

// FluxoEstoque soma quantidades de movimentos de estoque por categoria.
func FluxoEstoque(movs []model.MovEstoque, classifica func(tipo string) Categoria) Fluxo {
	f := Fluxo{Entradas: decimal.Zero, Saidas: decimal.Zero}
	for _, m := range movs {
		switch classifica(m.Tipo) {
		case CategoriaEntrada:
			f.Entradas = f.Entradas.Add(m.Quantidade)
		case CategoriaSaida:
			f.Saidas = f.Saidas.Add(m.Quantidade)
		}
	}
	return f
}

// Saldo dobra o livro do caixa: saldo inicial + entradas − saídas.
func Saldo(saldoInicial decimal.Decimal, movs []model.CaixaMov) decimal.Decimal {
	f := FluxoCaixa(movs, ClassificaCaixa)
	return saldoInicial.Add(f.Entradas).Sub(f.Saidas)
}

// TotalVendido soma as VENDAs do caixa informado, ignorando qualquer filtro
// de período ativo: é um total da sessão, não do recorte exibido.
func TotalVendido(caixaID uuid.UUID, movs []model.CaixaMov) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movs {
		if m.Tipo == model.MovVenda && m.CaixaID == caixaID {
			total = total.Add(m.Valor)
		}
	}
	return total
}

// SaldoEstoque dobra o livro de estoque de UM produto: entradas − saídas.
func SaldoEstoque(movs []model.MovEstoque) decimal.Decimal {
	f := FluxoEstoque(movs, ClassificaEstoque)
	return f.Entradas.Sub(f.Saidas)
}

// LinhaProduto é o agregado de estoque de um produto.
type LinhaProduto struct {
	ProdutoID   uuid.UUID
	ProdutoNome string
	Entradas    decimal.Decimal
	Saidas      decimal.Decimal
	Saldo       decimal.Decimal
}

// AgruparPorProduto reduz movimentos de estoque em uma linha por produto,
// na ordem em que cada produto aparece pela primeira vez. O nome exibido é
// o do primeiro movimento visto (nomes são desnormalizados no join).
func AgruparPorProduto(movs []model.MovEstoque, nomes map[uuid.UUID]string) []LinhaProduto {
	index := make(map[uuid.UUID]int, len(movs))
	linhas := make([]LinhaProduto, 0)
	for _, m := range movs {
		i, ok := index[m.ProdutoID]
		if !ok {
			i = len(linhas)
			index[m.ProdutoID] = i
			linhas = append(linhas, LinhaProduto{
				ProdutoID:   m.ProdutoID,
				ProdutoNome: nomes[m.ProdutoID],
				Entradas:    decimal.Zero,
				Saidas:      decimal.Zero,
			})
		}
		switch ClassificaEstoque(m.Tipo) {
		case CategoriaEntrada:
			linhas[i].Entradas = linhas[i].Entradas.Add(m.Quantidade)
		case CategoriaSaida:
			linhas[i].Saidas = linhas[i].Saidas.Add(m.Quantidade)
		}
	}
	for i := range linhas {
		linhas[i].Saldo = linhas[i].Entradas.Sub(linhas[i].Saidas)
	}
	return linhas
}
