package service

// Fakes em memória dos repositórios, para testes de serviço sem banco.
// runTx recebe db nil e executa a função diretamente.

import (
	"context"
	"errors"
	"time"

	"barcontrol/internal/model"
	"barcontrol/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── CaixaRepository ──────────────────────────────────────────────────────────

type fakeCaixaRepo struct {
	caixas map[uuid.UUID]*model.Caixa
	movs   []model.CaixaMov
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *fakeCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.AbertoEm.IsZero() {
		c.AbertoEm = time.Now()
	}
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) FindAberto(_ context.Context) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.Status == model.CaixaAberto {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCaixaRepo) FindUltimo(_ context.Context) (*model.Caixa, error) {
	var ultimo *model.Caixa
	for _, c := range r.caixas {
		if ultimo == nil || c.AbertoEm.After(ultimo.AbertoEm) {
			ultimo = c
		}
	}
	if ultimo == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return ultimo, nil
}

func (r *fakeCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *fakeCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) CreateMovimento(_ context.Context, m *model.CaixaMov) error {
	return r.CreateMovimentoTx(nil, m)
}

func (r *fakeCaixaRepo) CreateMovimentoTx(_ *gorm.DB, m *model.CaixaMov) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CriadoEm.IsZero() {
		m.CriadoEm = time.Now()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeCaixaRepo) ListMovimentos(_ context.Context, caixaID uuid.UUID) ([]model.CaixaMov, error) {
	var out []model.CaixaMov
	for _, m := range r.movs {
		if m.CaixaID == caixaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeCaixaRepo) DB() *gorm.DB { return nil }

// movimentosDoTipo conta os movimentos registrados de um tipo.
func (r *fakeCaixaRepo) movimentosDoTipo(tipo string) []model.CaixaMov {
	var out []model.CaixaMov
	for _, m := range r.movs {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── ProdutoRepository ────────────────────────────────────────────────────────

type fakeProdutoRepo struct {
	produtos map[uuid.UUID]*model.Produto
	ordem    []uuid.UUID
}

func newFakeProdutoRepo() *fakeProdutoRepo {
	return &fakeProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *fakeProdutoRepo) add(p *model.Produto) *model.Produto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.produtos[p.ID] = p
	r.ordem = append(r.ordem, p.ID)
	return p
}

func (r *fakeProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	r.add(p)
	return nil
}

func (r *fakeProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *fakeProdutoRepo) List(_ context.Context, somenteAtivos bool) ([]model.Produto, error) {
	out := make([]model.Produto, 0, len(r.ordem))
	for _, id := range r.ordem {
		p := r.produtos[id]
		if somenteAtivos && !p.Ativo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *fakeProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *fakeProdutoRepo) ReplaceComponentes(_ context.Context, comboID uuid.UUID, comps []model.ProdutoComponente) error {
	if p, ok := r.produtos[comboID]; ok {
		p.Componentes = comps
	}
	return nil
}

func (r *fakeProdutoRepo) AjustarEstoqueTx(_ *gorm.DB, id uuid.UUID, delta interface{}) error {
	d, ok := delta.(decimal.Decimal)
	if !ok {
		return errors.New("delta must be decimal")
	}
	if p, ok := r.produtos[id]; ok {
		p.EstoqueAtual = p.EstoqueAtual.Add(d)
	}
	return nil
}

func (r *fakeProdutoRepo) DB() *gorm.DB { return nil }

// ── MovEstoqueRepository ─────────────────────────────────────────────────────

type fakeEstoqueRepo struct {
	movs []model.MovEstoque
}

func (r *fakeEstoqueRepo) Create(_ context.Context, m *model.MovEstoque) error {
	return r.CreateTx(nil, m)
}

func (r *fakeEstoqueRepo) CreateTx(_ *gorm.DB, m *model.MovEstoque) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.DataHora.IsZero() {
		m.DataHora = time.Now()
	}
	r.movs = append(r.movs, *m)
	return nil
}

func (r *fakeEstoqueRepo) List(_ context.Context, filter repository.MovEstoqueFilter) ([]model.MovEstoque, error) {
	var out []model.MovEstoque
	for _, m := range r.movs {
		if filter.ProdutoID != nil && m.ProdutoID != *filter.ProdutoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeEstoqueRepo) ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.MovEstoque, error) {
	return r.List(ctx, repository.MovEstoqueFilter{ProdutoID: &produtoID})
}

func (r *fakeEstoqueRepo) doProduto(id uuid.UUID) []model.MovEstoque {
	out, _ := r.ListByProduto(context.Background(), id)
	return out
}

// ── ComandaRepository ────────────────────────────────────────────────────────

type fakeComandaRepo struct {
	comandas map[uuid.UUID]*model.Comanda
	itens    map[uuid.UUID]*model.ItemComanda
	produtos *fakeProdutoRepo
	seq      int
}

func newFakeComandaRepo(produtos *fakeProdutoRepo) *fakeComandaRepo {
	return &fakeComandaRepo{
		comandas: make(map[uuid.UUID]*model.Comanda),
		itens:    make(map[uuid.UUID]*model.ItemComanda),
		produtos: produtos,
	}
}

func (r *fakeComandaRepo) Create(_ context.Context, c *model.Comanda) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.seq++
	c.Numero = r.seq
	r.comandas[c.ID] = c
	return nil
}

func (r *fakeComandaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comanda, error) {
	c, ok := r.comandas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	c.Itens = nil
	for _, item := range r.itens {
		if item.ComandaID == id {
			it := *item
			if p, ok := r.produtos.produtos[it.ProdutoID]; ok {
				it.Produto = p
			}
			c.Itens = append(c.Itens, it)
		}
	}
	return c, nil
}

func (r *fakeComandaRepo) List(_ context.Context, status, mesa string) ([]model.Comanda, error) {
	var out []model.Comanda
	for _, c := range r.comandas {
		if status != "" && status != "all" && c.Status != status {
			continue
		}
		if mesa != "" && (c.Mesa == nil || *c.Mesa != mesa) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeComandaRepo) ListFinalizadasEntre(_ context.Context, inicio, fim time.Time) ([]model.Comanda, error) {
	var out []model.Comanda
	for _, c := range r.comandas {
		if c.Status != model.ComandaFinalizada {
			continue
		}
		if c.AtualizadaEm.Before(inicio) || c.AtualizadaEm.After(fim) {
			continue
		}
		com, _ := r.FindByID(context.Background(), c.ID)
		out = append(out, *com)
	}
	return out, nil
}

func (r *fakeComandaRepo) Update(_ context.Context, c *model.Comanda) error {
	r.comandas[c.ID] = c
	return nil
}

func (r *fakeComandaRepo) UpdateTx(_ *gorm.DB, c *model.Comanda) error {
	r.comandas[c.ID] = c
	return nil
}

func (r *fakeComandaRepo) CreateItemTx(_ *gorm.DB, item *model.ItemComanda) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.itens[item.ID] = item
	return nil
}

func (r *fakeComandaRepo) DeleteItemTx(_ *gorm.DB, itemID uuid.UUID) error {
	delete(r.itens, itemID)
	return nil
}

func (r *fakeComandaRepo) FindItemByID(_ context.Context, itemID uuid.UUID) (*model.ItemComanda, error) {
	item, ok := r.itens[itemID]
	if !ok {
		return nil, errors.New("not found")
	}
	it := *item
	if p, ok := r.produtos.produtos[it.ProdutoID]; ok {
		it.Produto = p
	}
	return &it, nil
}

func (r *fakeComandaRepo) DB() *gorm.DB { return nil }

// ── UsuarioRepository ────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = false
	}
	return nil
}
