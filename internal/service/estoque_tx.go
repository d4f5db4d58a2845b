package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barcontrol/internal/ledger"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// movimentarVendaTx registra BAIXA ou ESTORNO de um produto vendido dentro da
// transação corrente. Combos não têm estoque próprio: o movimento cai sobre
// cada componente, multiplicado pela quantidade vendida.
func movimentarVendaTx(
	estoqueRepo repository.MovEstoqueRepository,
	produtoRepo repository.ProdutoRepository,
	tx *gorm.DB,
	p model.Produto,
	qtd decimal.Decimal,
	tipo string,
	comandaID, itemID *uuid.UUID,
	detalhe string,
	loc *time.Location,
) error {
	sinal := decimal.NewFromInt(-1)
	if tipo == model.EstoqueEstorno {
		sinal = decimal.NewFromInt(1)
	}

	registrar := func(produtoID uuid.UUID, quantidade decimal.Decimal, det string) error {
		mov := &model.MovEstoque{
			ComandaID:     comandaID,
			ItemComandaID: itemID,
			ProdutoID:     produtoID,
			Tipo:          tipo,
			Quantidade:    quantidade,
			DataHora:      time.Now().In(loc),
			Detalhe:       &det,
		}
		if err := estoqueRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		if tx != nil {
			return produtoRepo.AjustarEstoqueTx(tx, produtoID, quantidade.Mul(sinal))
		}
		return nil
	}

	if p.Tipo == model.ProdutoCombo {
		for _, comp := range p.Componentes {
			det := fmt.Sprintf("%s (combo %s)", detalhe, p.Nome)
			if err := registrar(comp.ProdutoComponenteID, comp.Quantidade.Mul(qtd), det); err != nil {
				return err
			}
		}
		return nil
	}
	return registrar(p.ID, qtd, detalhe)
}

// saldoDisponivel dobra o livro do produto; sem movimentos vale o
// estoque_atual persistido.
func saldoDisponivel(ctx context.Context, estoqueRepo repository.MovEstoqueRepository, pid uuid.UUID, fallback decimal.Decimal) (decimal.Decimal, error) {
	movs, err := estoqueRepo.ListByProduto(ctx, pid)
	if err != nil {
		return decimal.Zero, err
	}
	if len(movs) == 0 {
		return fallback, nil
	}
	return ledger.SaldoEstoque(movs), nil
}

// verificarEstoqueVenda confere se o estoque comporta a quantidade pedida,
// expandindo combos sobre os componentes.
func verificarEstoqueVenda(
	ctx context.Context,
	estoqueRepo repository.MovEstoqueRepository,
	produtoRepo repository.ProdutoRepository,
	p model.Produto,
	qtd decimal.Decimal,
) error {
	if p.Tipo == model.ProdutoCombo {
		for _, comp := range p.Componentes {
			c, err := produtoRepo.FindByID(ctx, comp.ProdutoComponenteID)
			if err != nil {
				return errors.New("Componente invalido.")
			}
			saldo, err := saldoDisponivel(ctx, estoqueRepo, c.ID, c.EstoqueAtual)
			if err != nil {
				return err
			}
			if saldo.LessThan(comp.Quantidade.Mul(qtd)) {
				return errors.New("Estoque insuficiente.")
			}
		}
		return nil
	}
	saldo, err := saldoDisponivel(ctx, estoqueRepo, p.ID, p.EstoqueAtual)
	if err != nil {
		return err
	}
	if saldo.LessThan(qtd) {
		return errors.New("Estoque insuficiente.")
	}
	return nil
}
