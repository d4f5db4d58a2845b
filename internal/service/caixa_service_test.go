package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/model"
	"barcontrol/pkg/brl"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novoCaixaService(caixaRepo *fakeCaixaRepo, produtoRepo *fakeProdutoRepo, estoqueRepo *fakeEstoqueRepo) CaixaService {
	return NewCaixaService(caixaRepo, produtoRepo, estoqueRepo, nil, nil, &config.Config{})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAbrirCaixaRegistraMarcadorNeutro(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})

	resp, err := svc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{
		SaldoInicial: brl.NewAmount(dec("100")),
	})
	require.NoError(t, err)
	assert.Equal(t, model.CaixaAberto, resp.Status)

	abertura := repo.movimentosDoTipo(model.MovAbertura)
	require.Len(t, abertura, 1)
	assert.True(t, abertura[0].Valor.Equal(dec("100")))

	// O marcador não entra nas somas.
	resumo, err := svc.Resumo(context.Background(), dto.MovimentoFilter{})
	require.NoError(t, err)
	assert.True(t, resumo.Entradas.IsZero())
	assert.True(t, resumo.Saldo.Equal(dec("100")))
}

func TestAbrirCaixaDuplicado(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})

	_, err := svc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("50"))})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("10"))})
	assert.ErrorIs(t, err, ErrCaixaJaAberto)
}

func TestFecharSemCaixaAberto(t *testing.T) {
	svc := novoCaixaService(newFakeCaixaRepo(), newFakeProdutoRepo(), &fakeEstoqueRepo{})
	_, err := svc.Fechar(context.Background(), "maria", dto.FecharCaixaRequest{})
	assert.ErrorIs(t, err, ErrCaixaFechado)
}

func TestRegistrarMovimentoValorInvalido(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})
	_, err := svc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("10"))})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimento(context.Background(), "maria", dto.MovimentoCaixaRequest{
		Tipo:  model.MovReforco,
		Valor: brl.NewAmount(decimal.Zero),
	})
	require.Error(t, err)
	assert.Equal(t, "Valor deve ser maior que zero.", err.Error())
}

func TestResumoDobraDoLivro(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("100"))})
	require.NoError(t, err)

	for _, mov := range []struct {
		tipo  string
		valor string
	}{
		{model.MovReforco, "50"},
		{model.MovSangria, "30"},
		{model.MovVenda, "20"},
	} {
		_, err := svc.RegistrarMovimento(ctx, "maria", dto.MovimentoCaixaRequest{
			Tipo:  mov.tipo,
			Valor: brl.NewAmount(dec(mov.valor)),
		})
		require.NoError(t, err)
	}

	resumo, err := svc.Resumo(ctx, dto.MovimentoFilter{})
	require.NoError(t, err)
	assert.True(t, resumo.Entradas.Equal(dec("70")), "entradas = %s", resumo.Entradas)
	assert.True(t, resumo.Saidas.Equal(dec("30")))
	assert.True(t, resumo.Saldo.Equal(dec("140")))
	assert.True(t, resumo.TotalVendidoCaixa.Equal(dec("20")))
}

func TestResumoSemCaixaDevolveZeros(t *testing.T) {
	svc := novoCaixaService(newFakeCaixaRepo(), newFakeProdutoRepo(), &fakeEstoqueRepo{})
	resumo, err := svc.Resumo(context.Background(), dto.MovimentoFilter{})
	require.NoError(t, err)
	assert.Nil(t, resumo.Caixa)
	assert.True(t, resumo.Saldo.IsZero())
	assert.Empty(t, resumo.Movimentos)
}

func TestVendaBalcaoDinheiroInsuficiente(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	p := produtoRepo.add(&model.Produto{Nome: "Chopp", Preco: dec("10.00"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("10")})
	svc := novoCaixaService(caixaRepo, produtoRepo, &fakeEstoqueRepo{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	recebido := brl.NewAmount(dec("5"))
	_, err = svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		PagamentoTipo: model.PagamentoDinheiro,
		ValorRecebido: &recebido,
	})
	require.Error(t, err)
	assert.Equal(t, "Valor recebido menor que o total.", err.Error())
}

func TestVendaBalcaoComTroco(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	estoqueRepo := &fakeEstoqueRepo{}
	p := produtoRepo.add(&model.Produto{Nome: "Chopp", Preco: dec("7.00"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("10")})
	svc := novoCaixaService(caixaRepo, produtoRepo, estoqueRepo)
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	recebido := brl.NewAmount(dec("20"))
	resp, err := svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: p.ID.String(), Quantidade: 2}},
		PagamentoTipo: model.PagamentoDinheiro,
		ValorRecebido: &recebido,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("14")))
	assert.True(t, resp.Troco.Equal(dec("6")))
	assert.Equal(t, "R$ 6,00", resp.TrocoFmt)

	vendas := caixaRepo.movimentosDoTipo(model.MovVenda)
	require.Len(t, vendas, 1)
	assert.True(t, vendas[0].Valor.Equal(dec("14")))
	require.NotNil(t, vendas[0].Troco)
	assert.True(t, vendas[0].Troco.Equal(dec("6")))

	baixas := estoqueRepo.doProduto(p.ID)
	require.Len(t, baixas, 1)
	assert.Equal(t, model.EstoqueBaixa, baixas[0].Tipo)
	assert.True(t, baixas[0].Quantidade.Equal(dec("2")))
}

func TestVendaBalcaoCartaoSemTroco(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	p := produtoRepo.add(&model.Produto{Nome: "Porcao", Preco: dec("25.00"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("5")})
	svc := novoCaixaService(caixaRepo, produtoRepo, &fakeEstoqueRepo{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	resp, err := svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		PagamentoTipo: model.PagamentoCartao,
	})
	require.NoError(t, err)
	assert.True(t, resp.Troco.IsZero())

	vendas := caixaRepo.movimentosDoTipo(model.MovVenda)
	require.Len(t, vendas, 1)
	assert.Nil(t, vendas[0].ValorRecebido)
	assert.Nil(t, vendas[0].Troco)
}

func TestVendaBalcaoComboExpandeComponentes(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	estoqueRepo := &fakeEstoqueRepo{}

	cerveja := produtoRepo.add(&model.Produto{Nome: "Cerveja", Preco: dec("8"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("100")})
	petisco := produtoRepo.add(&model.Produto{Nome: "Petisco", Preco: dec("12"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("50")})
	combo := produtoRepo.add(&model.Produto{
		Nome: "Happy Hour", Preco: dec("18"), Tipo: model.ProdutoCombo, Ativo: true,
		Componentes: []model.ProdutoComponente{
			{ProdutoComponenteID: cerveja.ID, Quantidade: dec("2")},
			{ProdutoComponenteID: petisco.ID, Quantidade: dec("1")},
		},
	})

	svc := novoCaixaService(caixaRepo, produtoRepo, estoqueRepo)
	ctx := context.Background()
	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	_, err = svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: combo.ID.String(), Quantidade: 3}},
		PagamentoTipo: model.PagamentoCartao,
	})
	require.NoError(t, err)

	// Combo não movimenta estoque próprio.
	assert.Empty(t, estoqueRepo.doProduto(combo.ID))

	baixasCerveja := estoqueRepo.doProduto(cerveja.ID)
	require.Len(t, baixasCerveja, 1)
	assert.True(t, baixasCerveja[0].Quantidade.Equal(dec("6")))

	baixasPetisco := estoqueRepo.doProduto(petisco.ID)
	require.Len(t, baixasPetisco, 1)
	assert.True(t, baixasPetisco[0].Quantidade.Equal(dec("3")))
}

func TestFecharCaixaRegistraFechamento(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("100"))})
	require.NoError(t, err)

	_, err = svc.RegistrarMovimento(ctx, "maria", dto.MovimentoCaixaRequest{
		Tipo:  model.MovVenda,
		Valor: brl.NewAmount(dec("20")),
	})
	require.NoError(t, err)

	obs := "sem divergencia"
	resp, err := svc.Fechar(ctx, "maria", dto.FecharCaixaRequest{
		SaldoFinal: brl.NewAmount(dec("120")),
		Observacao: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CaixaFechado, resp.Status)
	require.NotNil(t, resp.FechadoEm)

	// O marcador de fechamento carrega o total vendido da sessão.
	fechamentos := repo.movimentosDoTipo(model.MovFechamento)
	require.Len(t, fechamentos, 1)
	assert.True(t, fechamentos[0].Valor.Equal(dec("20")))
	require.NotNil(t, fechamentos[0].Descricao)
	assert.Contains(t, *fechamentos[0].Descricao, "declarado R$ 120,00")
	assert.Contains(t, *fechamentos[0].Descricao, "apurado R$ 120,00")

	// Depois do fechamento não há caixa aberto.
	atual, err := svc.Atual(ctx)
	require.NoError(t, err)
	assert.Nil(t, atual)
}

func TestAbrirCaixaComObservacao(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})

	obs := "troco conferido na abertura"
	resp, err := svc.Abrir(context.Background(), "maria", dto.AbrirCaixaRequest{
		SaldoInicial: brl.NewAmount(dec("80")),
		Observacao:   &obs,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Observacao)
	assert.Equal(t, obs, *resp.Observacao)

	abertura := repo.movimentosDoTipo(model.MovAbertura)
	require.Len(t, abertura, 1)
	require.NotNil(t, abertura[0].Descricao)
	assert.Equal(t, obs, *abertura[0].Descricao)
}

func TestVendaBalcaoEstoqueInsuficiente(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	estoqueRepo := &fakeEstoqueRepo{}
	p := produtoRepo.add(&model.Produto{Nome: "Chopp", Preco: dec("10.00"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("1")})
	svc := novoCaixaService(caixaRepo, produtoRepo, estoqueRepo)
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	_, err = svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: p.ID.String(), Quantidade: 5}},
		PagamentoTipo: model.PagamentoCartao,
	})
	require.Error(t, err)
	assert.Equal(t, "Estoque insuficiente.", err.Error())

	// A venda recusada não baixa estoque nem entra no livro do caixa.
	assert.Empty(t, estoqueRepo.doProduto(p.ID))
	assert.Empty(t, caixaRepo.movimentosDoTipo(model.MovVenda))
}

func TestMovimentosAposFechamentoCaiNoUltimoCaixa(t *testing.T) {
	repo := newFakeCaixaRepo()
	svc := novoCaixaService(repo, newFakeProdutoRepo(), &fakeEstoqueRepo{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "maria", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("50"))})
	require.NoError(t, err)
	_, err = svc.RegistrarMovimento(ctx, "maria", dto.MovimentoCaixaRequest{
		Tipo:  model.MovReforco,
		Valor: brl.NewAmount(dec("30")),
	})
	require.NoError(t, err)
	_, err = svc.Fechar(ctx, "maria", dto.FecharCaixaRequest{SaldoFinal: brl.NewAmount(dec("80"))})
	require.NoError(t, err)

	// Sem sessão aberta o histórico do último caixa continua visível.
	movs, err := svc.Movimentos(ctx, dto.MovimentoFilter{})
	require.NoError(t, err)
	require.Len(t, movs, 3)
	tipos := []string{movs[0].Tipo, movs[1].Tipo, movs[2].Tipo}
	assert.Contains(t, tipos, model.MovAbertura)
	assert.Contains(t, tipos, model.MovReforco)
	assert.Contains(t, tipos, model.MovFechamento)
}

// caixaRepoIndisponivel simula uma falha de banco na consulta do caixa aberto.
type caixaRepoIndisponivel struct {
	*fakeCaixaRepo
}

func (r *caixaRepoIndisponivel) FindAberto(_ context.Context) (*model.Caixa, error) {
	return nil, errors.New("connection refused")
}

func TestAtualDistingueFalhaDeCaixaInexistente(t *testing.T) {
	svc := novoCaixaService(newFakeCaixaRepo(), newFakeProdutoRepo(), &fakeEstoqueRepo{})
	atual, err := svc.Atual(context.Background())
	require.NoError(t, err)
	assert.Nil(t, atual)

	quebrado := &caixaRepoIndisponivel{fakeCaixaRepo: newFakeCaixaRepo()}
	svcQuebrado := NewCaixaService(quebrado, newFakeProdutoRepo(), &fakeEstoqueRepo{}, nil, nil, &config.Config{})
	_, err = svcQuebrado.Atual(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

// A invalidação do cache de produtos é melhor-esforço: uma falha no Redis
// não pode derrubar uma venda já persistida.
func TestVendaBalcaoNaoFalhaComRedisIndisponivel(t *testing.T) {
	caixaRepo := newFakeCaixaRepo()
	produtoRepo := newFakeProdutoRepo()
	p := produtoRepo.add(&model.Produto{Nome: "Chopp", Preco: dec("10.00"), Tipo: model.ProdutoSimples, Ativo: true, EstoqueAtual: dec("10")})

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	svc := NewCaixaService(caixaRepo, produtoRepo, &fakeEstoqueRepo{}, rdb, nil, &config.Config{})
	ctx := context.Background()

	_, err := svc.Abrir(ctx, "joao", dto.AbrirCaixaRequest{SaldoInicial: brl.NewAmount(dec("0"))})
	require.NoError(t, err)

	resp, err := svc.VendaBalcao(ctx, "joao", dto.VendaBalcaoRequest{
		Itens:         []dto.VendaItemRequest{{ProdutoID: p.ID.String(), Quantidade: 1}},
		PagamentoTipo: model.PagamentoCartao,
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("10")))
	require.Len(t, caixaRepo.movimentosDoTipo(model.MovVenda), 1)
}
