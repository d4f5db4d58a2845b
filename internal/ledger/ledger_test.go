package ledger

import (
	"testing"
	"time"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func mov(caixaID uuid.UUID, tipo, valor string, em time.Time) model.CaixaMov {
	return model.CaixaMov{ID: uuid.New(), CaixaID: caixaID, Tipo: tipo, Valor: d(valor), CriadoEm: em}
}

func TestSaldoRecomputadoDoLivro(t *testing.T) {
	caixaID := uuid.New()
	agora := time.Now()
	movs := []model.CaixaMov{
		mov(caixaID, model.MovAbertura, "100.00", agora),
		mov(caixaID, model.MovVenda, "20.00", agora),
		mov(caixaID, model.MovSangria, "5.00", agora),
		mov(caixaID, model.MovReforco, "10.00", agora),
	}

	saldo := Saldo(d("100.00"), movs)
	assert.True(t, saldo.Equal(d("125.00")), "saldo = %s", saldo)

	// ABERTURA nunca entra na dobra; só o saldo inicial conta.
	f := FluxoCaixa(movs, ClassificaCaixa)
	assert.True(t, f.Entradas.Equal(d("30.00")))
	assert.True(t, f.Saidas.Equal(d("5.00")))
}

func TestTotalVendidoIgnoraFiltro(t *testing.T) {
	caixaID := uuid.New()
	outro := uuid.New()
	ontem := time.Now().Add(-48 * time.Hour)
	movs := []model.CaixaMov{
		mov(caixaID, model.MovVenda, "20.00", ontem),
		mov(caixaID, model.MovReforco, "50.00", time.Now()),
		mov(outro, model.MovVenda, "99.00", time.Now()),
	}

	// O recorte por período não muda o total vendido da sessão.
	hoje := time.Now().Format("2006-01-02")
	filtrados := FiltrarMovimentos(movs, NovoPeriodo(hoje, hoje, time.Local))
	require.Len(t, filtrados, 2)

	total := TotalVendido(caixaID, movs)
	assert.True(t, total.Equal(d("20.00")), "total = %s", total)
}

func TestPeriodoInclusivoNasDuasPontas(t *testing.T) {
	p := NovoPeriodo("2026-03-01", "2026-03-02", time.UTC)

	inicio := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)
	depois := fim.Add(time.Second)
	antes := inicio.Add(-time.Second)

	assert.True(t, p.Contem(inicio))
	assert.True(t, p.Contem(fim))
	assert.False(t, p.Contem(depois))
	assert.False(t, p.Contem(antes))
	assert.False(t, p.Contem(time.Time{}), "sem timestamp nunca entra")
}

func TestPeriodoAberto(t *testing.T) {
	assert.True(t, NovoPeriodo("", "", time.UTC).Vazio())

	soInicio := NovoPeriodo("2026-03-01", "", time.UTC)
	assert.True(t, soInicio.Contem(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, soInicio.Contem(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))

	// Data inválida deixa a ponta aberta em vez de falhar.
	assert.True(t, NovoPeriodo("03/01/2026", "", time.UTC).Vazio())
}

func TestFiltrarExcluiSemTimestamp(t *testing.T) {
	caixaID := uuid.New()
	p := NovoPeriodo("2026-03-01", "2026-03-01", time.UTC)
	movs := []model.CaixaMov{
		mov(caixaID, model.MovVenda, "1.00", time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		mov(caixaID, model.MovVenda, "2.00", time.Time{}),
	}
	filtrados := FiltrarMovimentos(movs, p)
	require.Len(t, filtrados, 1)
	assert.True(t, filtrados[0].Valor.Equal(d("1.00")))
}

func TestFluxoEstoqueEstornoContaComoEntrada(t *testing.T) {
	produtoID := uuid.New()
	agora := time.Now()
	movs := []model.MovEstoque{
		{ProdutoID: produtoID, Tipo: model.EstoqueEntrada, Quantidade: d("10"), DataHora: agora},
		{ProdutoID: produtoID, Tipo: model.EstoqueBaixa, Quantidade: d("3"), DataHora: agora},
		{ProdutoID: produtoID, Tipo: model.EstoqueEstorno, Quantidade: d("2"), DataHora: agora},
	}

	f := FluxoEstoque(movs, ClassificaEstoque)
	assert.True(t, f.Entradas.Equal(d("12")))
	assert.True(t, f.Saidas.Equal(d("3")))
	assert.True(t, SaldoEstoque(movs).Equal(d("9")))
}

func TestAgruparPorProdutoOrdemDePrimeiraAparicao(t *testing.T) {
	cerveja := uuid.New()
	dose := uuid.New()
	agora := time.Now()
	movs := []model.MovEstoque{
		{ProdutoID: cerveja, Tipo: model.EstoqueEntrada, Quantidade: d("24"), DataHora: agora},
		{ProdutoID: dose, Tipo: model.EstoqueEntrada, Quantidade: d("10"), DataHora: agora},
		{ProdutoID: cerveja, Tipo: model.EstoqueBaixa, Quantidade: d("6"), DataHora: agora},
		{ProdutoID: dose, Tipo: model.EstoqueBaixa, Quantidade: d("1.5"), DataHora: agora},
		{ProdutoID: cerveja, Tipo: model.EstoqueEstorno, Quantidade: d("2"), DataHora: agora},
	}
	nomes := map[uuid.UUID]string{cerveja: "Cerveja 600ml", dose: "Dose cachaça"}

	linhas := AgruparPorProduto(movs, nomes)
	require.Len(t, linhas, 2)

	assert.Equal(t, "Cerveja 600ml", linhas[0].ProdutoNome)
	assert.True(t, linhas[0].Entradas.Equal(d("26")))
	assert.True(t, linhas[0].Saidas.Equal(d("6")))
	assert.True(t, linhas[0].Saldo.Equal(d("20")))

	assert.Equal(t, "Dose cachaça", linhas[1].ProdutoNome)
	assert.True(t, linhas[1].Saldo.Equal(d("8.5")))
}
