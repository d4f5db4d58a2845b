package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/ledger"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"
	"barcontrol/internal/worker"
	"barcontrol/pkg/brl"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cacheKeyProdutos = "cache:produtos"
	cacheTTLProdutos = 30 * time.Second
)

type ProdutoService interface {
	Criar(ctx context.Context, usuario string, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, incluirInativos bool) ([]dto.ProdutoResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, usuario string, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Desativar(ctx context.Context, usuario string, id uuid.UUID) error
	EntradaEstoque(ctx context.Context, usuario string, id uuid.UUID, req dto.MovimentoEstoqueRequest) error
	SaidaEstoque(ctx context.Context, usuario string, id uuid.UUID, req dto.MovimentoEstoqueRequest) error
	Movimentos(ctx context.Context, filter dto.EstoqueFilter) (*dto.MovimentosEstoqueResponse, error)
}

type produtoService struct {
	repo        repository.ProdutoRepository
	estoqueRepo repository.MovEstoqueRepository
	rdb         *redis.Client
	dispatcher  *worker.Dispatcher
	cfg         *config.Config
}

func NewProdutoService(
	repo repository.ProdutoRepository,
	estoqueRepo repository.MovEstoqueRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) ProdutoService {
	return &produtoService{
		repo:        repo,
		estoqueRepo: estoqueRepo,
		rdb:         rdb,
		dispatcher:  dispatcher,
		cfg:         cfg,
	}
}

// ── Criar ─────────────────────────────────────────────────────────────────────

func (s *produtoService) Criar(ctx context.Context, usuario string, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	tipo := req.Tipo
	if tipo == "" {
		tipo = model.ProdutoSimples
	}

	comps, err := s.resolverComponentes(ctx, tipo, req.Componentes)
	if err != nil {
		return nil, err
	}

	p := &model.Produto{
		Nome:          req.Nome,
		Preco:         req.Preco.Decimal,
		EstoqueAtual:  req.EstoqueAtual,
		EstoqueMinimo: req.EstoqueMinimo,
		Tipo:          tipo,
		Ativo:         true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errors.New("Nao foi possivel criar o produto.")
	}

	if len(comps) > 0 {
		for i := range comps {
			comps[i].ProdutoComboID = p.ID
		}
		if err := s.repo.ReplaceComponentes(ctx, p.ID, comps); err != nil {
			return nil, err
		}
		p.Componentes = comps
	}

	// O estoque inicial entra no livro para a dobra de saldo bater.
	if tipo == model.ProdutoSimples && req.EstoqueAtual.IsPositive() {
		det := "Estoque inicial"
		mov := &model.MovEstoque{
			ProdutoID:  p.ID,
			Tipo:       model.EstoqueEntrada,
			Quantidade: req.EstoqueAtual,
			DataHora:   time.Now().In(s.cfg.Location()),
			Detalhe:    &det,
		}
		if err := s.estoqueRepo.Create(ctx, mov); err != nil {
			return nil, err
		}
	}

	s.invalidarCache(ctx)
	s.auditar(ctx, usuario, "CRIAR_PRODUTO", p.Nome)
	resp := s.enriquecer(ctx, *p, nil)
	return &resp, nil
}

func (s *produtoService) resolverComponentes(ctx context.Context, tipo string, reqs []dto.ComponenteRequest) ([]model.ProdutoComponente, error) {
	if tipo != model.ProdutoCombo {
		if len(reqs) > 0 {
			return nil, errors.New("Produto simples nao aceita componentes.")
		}
		return nil, nil
	}
	if len(reqs) == 0 {
		return nil, errors.New("Combo precisa de ao menos um componente.")
	}

	comps := make([]model.ProdutoComponente, 0, len(reqs))
	for _, c := range reqs {
		pid, err := uuid.Parse(c.ProdutoID)
		if err != nil {
			return nil, errors.New("Componente invalido.")
		}
		comp, err := s.repo.FindByID(ctx, pid)
		if err != nil {
			return nil, errors.New("Componente invalido.")
		}
		if comp.Tipo == model.ProdutoCombo {
			return nil, errors.New("Combo nao pode conter outro combo.")
		}
		if !c.Quantidade.IsPositive() {
			return nil, errors.New("Quantidade do componente deve ser maior que zero.")
		}
		comps = append(comps, model.ProdutoComponente{
			ProdutoComponenteID: pid,
			Quantidade:          c.Quantidade,
		})
	}
	return comps, nil
}

// ── Listar ────────────────────────────────────────────────────────────────────
// A lista completa (com saldos e disponibilidade) fica cacheada no Redis por
// alguns segundos; qualquer mutação de produto ou estoque derruba a chave.

func (s *produtoService) Listar(ctx context.Context, incluirInativos bool) ([]dto.ProdutoResponse, error) {
	if !incluirInativos && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, cacheKeyProdutos).Result(); err == nil {
			var cached []dto.ProdutoResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	produtos, err := s.repo.List(ctx, !incluirInativos)
	if err != nil {
		return nil, err
	}

	saldos, err := s.saldosPorProduto(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ProdutoResponse, len(produtos))
	for i, p := range produtos {
		resp[i] = s.enriquecer(ctx, p, saldos)
	}

	if !incluirInativos && s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, cacheKeyProdutos, data, cacheTTLProdutos).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache product list")
			}
		}
	}
	return resp, nil
}

func (s *produtoService) Obter(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Produto nao encontrado.")
	}
	saldos, err := s.saldosPorProduto(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.enriquecer(ctx, *p, saldos)
	return &resp, nil
}

// ── Atualizar / Desativar ─────────────────────────────────────────────────────

func (s *produtoService) Atualizar(ctx context.Context, usuario string, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Produto nao encontrado.")
	}
	if req.Nome != nil {
		p.Nome = *req.Nome
	}
	if req.Preco != nil {
		p.Preco = req.Preco.Decimal
	}
	if req.EstoqueMinimo != nil {
		p.EstoqueMinimo = *req.EstoqueMinimo
	}
	if req.Ativo != nil {
		p.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.Componentes != nil {
		comps, err := s.resolverComponentes(ctx, p.Tipo, *req.Componentes)
		if err != nil {
			return nil, err
		}
		for i := range comps {
			comps[i].ProdutoComboID = p.ID
		}
		if err := s.repo.ReplaceComponentes(ctx, p.ID, comps); err != nil {
			return nil, err
		}
		p.Componentes = comps
	}

	s.invalidarCache(ctx)
	s.auditar(ctx, usuario, "ATUALIZAR_PRODUTO", p.Nome)
	saldos, err := s.saldosPorProduto(ctx)
	if err != nil {
		return nil, err
	}
	resp := s.enriquecer(ctx, *p, saldos)
	return &resp, nil
}

func (s *produtoService) Desativar(ctx context.Context, usuario string, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	s.auditar(ctx, usuario, "DESATIVAR_PRODUTO", id.String())
	return nil
}

// ── Entrada / Saída de estoque ────────────────────────────────────────────────

func (s *produtoService) EntradaEstoque(ctx context.Context, usuario string, id uuid.UUID, req dto.MovimentoEstoqueRequest) error {
	return s.movimentarEstoque(ctx, usuario, id, model.EstoqueEntrada, "ENTRADA_ESTOQUE", req)
}

func (s *produtoService) SaidaEstoque(ctx context.Context, usuario string, id uuid.UUID, req dto.MovimentoEstoqueRequest) error {
	return s.movimentarEstoque(ctx, usuario, id, model.EstoqueBaixa, "SAIDA_ESTOQUE", req)
}

func (s *produtoService) movimentarEstoque(ctx context.Context, usuario string, id uuid.UUID, tipo, acao string, req dto.MovimentoEstoqueRequest) error {
	if !req.Quantidade.IsPositive() {
		return errors.New("Quantidade deve ser maior que zero.")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("Produto nao encontrado.")
	}
	if p.Tipo == model.ProdutoCombo {
		return errors.New("Combo nao movimenta estoque proprio.")
	}

	delta := req.Quantidade
	if tipo == model.EstoqueBaixa {
		saldos, err := s.saldosPorProduto(ctx)
		if err != nil {
			return err
		}
		if saldoDe(*p, saldos).LessThan(req.Quantidade) {
			return errors.New("Estoque insuficiente.")
		}
		delta = delta.Neg()
	}
	mov := &model.MovEstoque{
		ProdutoID:  p.ID,
		Tipo:       tipo,
		Quantidade: req.Quantidade,
		DataHora:   time.Now().In(s.cfg.Location()),
		Detalhe:    req.Detalhe,
	}
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.estoqueRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		if tx != nil {
			return s.repo.AjustarEstoqueTx(tx, p.ID, delta)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidarCache(ctx)
	s.auditar(ctx, usuario, acao, fmt.Sprintf("%s x%s", p.Nome, req.Quantidade.String()))
	return nil
}

// ── Movimentos ────────────────────────────────────────────────────────────────

func (s *produtoService) Movimentos(ctx context.Context, filter dto.EstoqueFilter) (*dto.MovimentosEstoqueResponse, error) {
	repoFilter := repository.MovEstoqueFilter{}
	if filter.ProdutoID != "" {
		pid, err := uuid.Parse(filter.ProdutoID)
		if err != nil {
			return nil, errors.New("Produto invalido.")
		}
		repoFilter.ProdutoID = &pid
	}

	movs, err := s.estoqueRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	periodo := ledger.NovoPeriodo(filter.DataInicio, filter.DataFim, s.cfg.Location())
	filtrados := ledger.FiltrarEstoque(movs, periodo)

	nomes := make(map[uuid.UUID]string)
	for _, m := range filtrados {
		if m.Produto != nil {
			nomes[m.ProdutoID] = m.Produto.Nome
		}
	}
	linhas := ledger.AgruparPorProduto(filtrados, nomes)

	resp := &dto.MovimentosEstoqueResponse{
		Movimentos: make([]dto.MovimentoEstoqueResponse, len(filtrados)),
		PorProduto: make([]dto.LinhaEstoqueResponse, len(linhas)),
	}
	for i, m := range filtrados {
		nome := nomes[m.ProdutoID]
		resp.Movimentos[i] = dto.MovimentoEstoqueResponse{
			ID:          m.ID.String(),
			ProdutoID:   m.ProdutoID.String(),
			ProdutoNome: nome,
			Tipo:        m.Tipo,
			Quantidade:  m.Quantidade,
			Detalhe:     m.Detalhe,
			DataHora:    m.DataHora.Format(time.RFC3339),
		}
	}
	for i, l := range linhas {
		resp.PorProduto[i] = dto.LinhaEstoqueResponse{
			ProdutoID:   l.ProdutoID.String(),
			ProdutoNome: l.ProdutoNome,
			Entradas:    l.Entradas,
			Saidas:      l.Saidas,
			Saldo:       l.Saldo,
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// saldosPorProduto dobra o livro de estoque inteiro em um mapa produto→saldo.
// Produto sem movimento não aparece no mapa; quem consome faz fallback para
// o estoque_atual persistido.
func (s *produtoService) saldosPorProduto(ctx context.Context) (map[uuid.UUID]decimal.Decimal, error) {
	movs, err := s.estoqueRepo.List(ctx, repository.MovEstoqueFilter{})
	if err != nil {
		return nil, err
	}
	saldos := make(map[uuid.UUID]decimal.Decimal)
	vistos := make(map[uuid.UUID]bool)
	for _, m := range movs {
		vistos[m.ProdutoID] = true
	}
	for pid := range vistos {
		var doProduto []model.MovEstoque
		for _, m := range movs {
			if m.ProdutoID == pid {
				doProduto = append(doProduto, m)
			}
		}
		saldos[pid] = ledger.SaldoEstoque(doProduto)
	}
	return saldos, nil
}

func saldoDe(p model.Produto, saldos map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	if saldos != nil {
		if s, ok := saldos[p.ID]; ok {
			return s
		}
	}
	return p.EstoqueAtual
}

func (s *produtoService) enriquecer(ctx context.Context, p model.Produto, saldos map[uuid.UUID]decimal.Decimal) dto.ProdutoResponse {
	resp := dto.ProdutoResponse{
		ID:            p.ID.String(),
		Nome:          p.Nome,
		Preco:         p.Preco,
		PrecoFmt:      brl.Format(p.Preco),
		EstoqueAtual:  p.EstoqueAtual,
		EstoqueMinimo: p.EstoqueMinimo,
		Tipo:          p.Tipo,
		Ativo:         p.Ativo,
		CanAdd:        true,
	}

	if !p.Ativo {
		resp.CanAdd = false
		motivo := "Produto inativo"
		resp.ReasonDisabled = &motivo
	}

	if p.Tipo == model.ProdutoCombo {
		resp.SaldoAtual = s.disponibilidadeCombo(ctx, p, saldos)
		resp.Componentes = make([]dto.ComponenteResponse, len(p.Componentes))
		for i, comp := range p.Componentes {
			nome := ""
			if c, err := s.repo.FindByID(ctx, comp.ProdutoComponenteID); err == nil {
				nome = c.Nome
			}
			resp.Componentes[i] = dto.ComponenteResponse{
				ProdutoID:  comp.ProdutoComponenteID.String(),
				Nome:       nome,
				Quantidade: comp.Quantidade,
			}
		}
		if resp.CanAdd && !resp.SaldoAtual.IsPositive() {
			resp.CanAdd = false
			motivo := "Componentes sem estoque"
			resp.ReasonDisabled = &motivo
		}
		return resp
	}

	resp.SaldoAtual = saldoDe(p, saldos)
	if resp.CanAdd && !resp.SaldoAtual.IsPositive() {
		resp.CanAdd = false
		motivo := "Sem estoque"
		resp.ReasonDisabled = &motivo
	}
	return resp
}

// disponibilidadeCombo devolve quantas unidades do combo o estoque dos
// componentes ainda comporta: o menor piso de saldo/quantidade.
func (s *produtoService) disponibilidadeCombo(ctx context.Context, p model.Produto, saldos map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	if len(p.Componentes) == 0 {
		return decimal.Zero
	}
	disponivel := decimal.Zero
	for i, comp := range p.Componentes {
		saldoComp := decimal.Zero
		if saldos != nil {
			if v, ok := saldos[comp.ProdutoComponenteID]; ok {
				saldoComp = v
			} else if c, err := s.repo.FindByID(ctx, comp.ProdutoComponenteID); err == nil {
				saldoComp = c.EstoqueAtual
			}
		} else if c, err := s.repo.FindByID(ctx, comp.ProdutoComponenteID); err == nil {
			saldoComp = c.EstoqueAtual
		}
		if !comp.Quantidade.IsPositive() {
			return decimal.Zero
		}
		cabe := saldoComp.Div(comp.Quantidade).Floor()
		if i == 0 || cabe.LessThan(disponivel) {
			disponivel = cabe
		}
	}
	if disponivel.IsNegative() {
		return decimal.Zero
	}
	return disponivel
}

func (s *produtoService) invalidarCache(ctx context.Context) {
	invalidarCacheProdutos(ctx, s.rdb)
}

// invalidarCacheProdutos derruba a lista cacheada. Qualquer escrita que mexa
// em produto ou estoque chama aqui, inclusive as vendas fora deste serviço.
func invalidarCacheProdutos(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if err := rdb.Del(ctx, cacheKeyProdutos).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate product cache")
	}
}

func (s *produtoService) auditar(ctx context.Context, usuario, acao, detalhe string) {
	d := detalhe
	s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaPayload{
		Usuario:  usuario,
		Acao:     acao,
		Detalhe:  &d,
		DataHora: time.Now().In(s.cfg.Location()),
	})
}
