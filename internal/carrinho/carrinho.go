// Package carrinho monta a venda de balcão em memória: itens precificados,
// subtotal em aritmética decimal e o cálculo de troco. O carrinho é um valor
// puro: quem chama decide quando descartá-lo, e só depois do backend
// confirmar a venda.
package carrinho

import (
	"errors"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrProdutoNaoSelecionado: nenhum produto foi escolhido no formulário.
	ErrProdutoNaoSelecionado = errors.New("Selecione o produto.")
	// ErrProdutoInvalido: o id informado não resolve para um produto.
	ErrProdutoInvalido = errors.New("Produto invalido.")
	// ErrCarrinhoVazio: tentativa de fechar venda sem itens.
	ErrCarrinhoVazio = errors.New("Carrinho vazio.")
)

// Item é uma linha do carrinho. Pertence exclusivamente ao carrinho em
// andamento; some no fechamento ou na remoção explícita.
type Item struct {
	ProdutoID     uuid.UUID
	Nome          string
	PrecoUnitario decimal.Decimal
	Quantidade    int64
}

// Total da linha: preço × quantidade, sem passar por float.
func (i Item) Total() decimal.Decimal {
	return i.PrecoUnitario.Mul(decimal.NewFromInt(i.Quantidade))
}

// Carrinho acumula as linhas de uma venda pendente.
type Carrinho struct {
	itens []Item
}

// Adicionar resolve o produto na lista disponível e devolve um novo carrinho
// com a linha anexada. Quantidade não positiva vira 1.
func (c Carrinho) Adicionar(produtos []model.Produto, produtoID uuid.UUID, quantidade int64) (Carrinho, error) {
	if produtoID == uuid.Nil {
		return c, ErrProdutoNaoSelecionado
	}
	var produto *model.Produto
	for i := range produtos {
		if produtos[i].ID == produtoID {
			produto = &produtos[i]
			break
		}
	}
	if produto == nil {
		return c, ErrProdutoInvalido
	}
	if quantidade < 1 {
		quantidade = 1
	}

	itens := make([]Item, len(c.itens), len(c.itens)+1)
	copy(itens, c.itens)
	itens = append(itens, Item{
		ProdutoID:     produto.ID,
		Nome:          produto.Nome,
		PrecoUnitario: produto.Preco,
		Quantidade:    quantidade,
	})
	return Carrinho{itens: itens}, nil
}

// Remover tira a linha na posição dada. Índice fora do intervalo é um no-op.
func (c Carrinho) Remover(indice int) Carrinho {
	if indice < 0 || indice >= len(c.itens) {
		return c
	}
	itens := make([]Item, 0, len(c.itens)-1)
	itens = append(itens, c.itens[:indice]...)
	itens = append(itens, c.itens[indice+1:]...)
	return Carrinho{itens: itens}
}

// Itens devolve uma cópia das linhas correntes.
func (c Carrinho) Itens() []Item {
	out := make([]Item, len(c.itens))
	copy(out, c.itens)
	return out
}

// Vazio informa se não há linhas.
func (c Carrinho) Vazio() bool { return len(c.itens) == 0 }

// Subtotal soma preço × quantidade de todas as linhas em decimal exato.
func (c Carrinho) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.itens {
		total = total.Add(item.Total())
	}
	return total
}

// Fechar valida e entrega as linhas para a requisição de venda. O carrinho
// NÃO é limpo aqui: quem chama só descarta o valor depois da confirmação,
// para não perder a venda numa falha do backend.
func (c Carrinho) Fechar() ([]Item, error) {
	if c.Vazio() {
		return nil, ErrCarrinhoVazio
	}
	return c.Itens(), nil
}

// Troco calcula o troco de um pagamento. CARTAO nunca tem troco e ignora o
// valor recebido. DINHEIRO paga max(0, recebido − subtotal): pagamento
// insuficiente aparece como troco zero; a recusa da venda, se houver, é
// política do backend, não desta camada.
func Troco(subtotal decimal.Decimal, pagamentoTipo string, valorRecebido decimal.Decimal) decimal.Decimal {
	if pagamentoTipo != model.PagamentoDinheiro {
		return decimal.Zero
	}
	troco := valorRecebido.Sub(subtotal)
	if troco.IsNegative() {
		return decimal.Zero
	}
	return troco
}
