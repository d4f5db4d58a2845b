package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barcontrol/internal/carrinho"
	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"
	"barcontrol/internal/worker"
	"barcontrol/pkg/brl"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComandaService interface {
	Criar(ctx context.Context, usuario string, vendedorID uuid.UUID, req dto.CriarComandaRequest) (*dto.ComandaResponse, error)
	Listar(ctx context.Context, filter dto.ComandaFilter) ([]dto.ComandaResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error)
	AdicionarItem(ctx context.Context, usuario string, comandaID uuid.UUID, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error)
	RemoverItem(ctx context.Context, usuario string, comandaID, itemID uuid.UUID) (*dto.ComandaResponse, error)
	Cancelar(ctx context.Context, usuario string, comandaID uuid.UUID) error
	Finalizar(ctx context.Context, usuario string, comandaID uuid.UUID, req dto.FinalizarComandaRequest) (*dto.FinalizarComandaResponse, error)
	ResumoDia(ctx context.Context) (*dto.ResumoDiaResponse, error)
}

type comandaService struct {
	repo        repository.ComandaRepository
	produtoRepo repository.ProdutoRepository
	estoqueRepo repository.MovEstoqueRepository
	usuarioRepo repository.UsuarioRepository
	caixa       CaixaService
	rdb         *redis.Client
	dispatcher  *worker.Dispatcher
	cfg         *config.Config
}

func NewComandaService(
	repo repository.ComandaRepository,
	produtoRepo repository.ProdutoRepository,
	estoqueRepo repository.MovEstoqueRepository,
	usuarioRepo repository.UsuarioRepository,
	caixa CaixaService,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) ComandaService {
	return &comandaService{
		repo:        repo,
		produtoRepo: produtoRepo,
		estoqueRepo: estoqueRepo,
		usuarioRepo: usuarioRepo,
		caixa:       caixa,
		rdb:         rdb,
		dispatcher:  dispatcher,
		cfg:         cfg,
	}
}

// ── Criar ─────────────────────────────────────────────────────────────────────

func (s *comandaService) Criar(ctx context.Context, usuario string, vendedorID uuid.UUID, req dto.CriarComandaRequest) (*dto.ComandaResponse, error) {
	agora := time.Now().In(s.cfg.Location())
	c := &model.Comanda{
		VendedorID:   vendedorID,
		Mesa:         req.Mesa,
		Observacao:   req.Observacao,
		Status:       model.ComandaAberta,
		ValorTotal:   decimal.Zero,
		CriadaEm:     agora,
		AtualizadaEm: agora,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errors.New("Nao foi possivel abrir a comanda.")
	}
	s.auditar(ctx, usuario, "ABRIR_COMANDA", fmt.Sprintf("comanda #%d", c.Numero))
	return comandaToResponse(c), nil
}

func (s *comandaService) Listar(ctx context.Context, filter dto.ComandaFilter) ([]dto.ComandaResponse, error) {
	status := filter.Status
	if status == "" {
		status = model.ComandaAberta
	}
	comandas, err := s.repo.List(ctx, status, filter.Mesa)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ComandaResponse, len(comandas))
	for i := range comandas {
		resp[i] = *comandaToResponse(&comandas[i])
	}
	return resp, nil
}

func (s *comandaService) Obter(ctx context.Context, id uuid.UUID) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Comanda nao encontrada.")
	}
	return comandaToResponse(c), nil
}

// ── AdicionarItem ─────────────────────────────────────────────────────────────
// Preço congelado na adição; a baixa de estoque acompanha o item na mesma
// transação, expandindo combos sobre os componentes.

func (s *comandaService) AdicionarItem(ctx context.Context, usuario string, comandaID uuid.UUID, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, comandaID)
	if err != nil {
		return nil, errors.New("Comanda nao encontrada.")
	}
	if c.Status != model.ComandaAberta {
		return nil, errors.New("Comanda nao esta aberta.")
	}

	pid, err := uuid.Parse(req.ProdutoID)
	if err != nil || pid == uuid.Nil {
		return nil, carrinho.ErrProdutoNaoSelecionado
	}
	p, err := s.produtoRepo.FindByID(ctx, pid)
	if err != nil || !p.Ativo {
		return nil, carrinho.ErrProdutoInvalido
	}

	qtd := req.Quantidade
	if !qtd.IsPositive() {
		qtd = decimal.NewFromInt(1)
	}
	if err := verificarEstoqueVenda(ctx, s.estoqueRepo, s.produtoRepo, *p, qtd); err != nil {
		return nil, err
	}

	item := &model.ItemComanda{
		ComandaID:     c.ID,
		ProdutoID:     p.ID,
		Quantidade:    qtd,
		PrecoUnitario: p.Preco,
		TotalItem:     p.Preco.Mul(qtd),
		CriadoEm:      time.Now().In(s.cfg.Location()),
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateItemTx(tx, item); err != nil {
			return err
		}
		detalhe := fmt.Sprintf("Comanda #%d", c.Numero)
		if err := movimentarVendaTx(s.estoqueRepo, s.produtoRepo, tx, *p, qtd,
			model.EstoqueBaixa, &c.ID, &item.ID, detalhe, s.cfg.Location()); err != nil {
			return err
		}
		c.ValorTotal = c.ValorTotal.Add(item.TotalItem)
		c.AtualizadaEm = time.Now().In(s.cfg.Location())
		return s.repo.UpdateTx(tx, c)
	})
	if err != nil {
		return nil, err
	}

	invalidarCacheProdutos(ctx, s.rdb)
	s.auditar(ctx, usuario, "ADICIONAR_ITEM",
		fmt.Sprintf("comanda #%d: %s x%s", c.Numero, p.Nome, qtd.String()))
	return s.Obter(ctx, c.ID)
}

// ── RemoverItem ───────────────────────────────────────────────────────────────
// A remoção não apaga a baixa original: entra um ESTORNO espelhado, e o livro
// conta a história inteira.

func (s *comandaService) RemoverItem(ctx context.Context, usuario string, comandaID, itemID uuid.UUID) (*dto.ComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, comandaID)
	if err != nil {
		return nil, errors.New("Comanda nao encontrada.")
	}
	if c.Status != model.ComandaAberta {
		return nil, errors.New("Comanda nao esta aberta.")
	}

	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil || item.ComandaID != c.ID {
		return nil, errors.New("Item nao encontrado.")
	}
	p, err := s.produtoRepo.FindByID(ctx, item.ProdutoID)
	if err != nil {
		return nil, carrinho.ErrProdutoInvalido
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		detalhe := fmt.Sprintf("Estorno item comanda #%d", c.Numero)
		if err := movimentarVendaTx(s.estoqueRepo, s.produtoRepo, tx, *p, item.Quantidade,
			model.EstoqueEstorno, &c.ID, &item.ID, detalhe, s.cfg.Location()); err != nil {
			return err
		}
		if err := s.repo.DeleteItemTx(tx, item.ID); err != nil {
			return err
		}
		c.ValorTotal = c.ValorTotal.Sub(item.TotalItem)
		c.AtualizadaEm = time.Now().In(s.cfg.Location())
		return s.repo.UpdateTx(tx, c)
	})
	if err != nil {
		return nil, err
	}

	invalidarCacheProdutos(ctx, s.rdb)
	s.auditar(ctx, usuario, "REMOVER_ITEM",
		fmt.Sprintf("comanda #%d: %s", c.Numero, p.Nome))
	return s.Obter(ctx, c.ID)
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

func (s *comandaService) Cancelar(ctx context.Context, usuario string, comandaID uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, comandaID)
	if err != nil {
		return errors.New("Comanda nao encontrada.")
	}
	if c.Status != model.ComandaAberta {
		return errors.New("Comanda nao esta aberta.")
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for i := range c.Itens {
			item := c.Itens[i]
			p, err := s.produtoRepo.FindByID(ctx, item.ProdutoID)
			if err != nil {
				return carrinho.ErrProdutoInvalido
			}
			detalhe := fmt.Sprintf("Cancelamento comanda #%d", c.Numero)
			if err := movimentarVendaTx(s.estoqueRepo, s.produtoRepo, tx, *p, item.Quantidade,
				model.EstoqueEstorno, &c.ID, &item.ID, detalhe, s.cfg.Location()); err != nil {
				return err
			}
		}
		c.Status = model.ComandaCancelada
		c.AtualizadaEm = time.Now().In(s.cfg.Location())
		return s.repo.UpdateTx(tx, c)
	})
	if err != nil {
		return err
	}

	invalidarCacheProdutos(ctx, s.rdb)
	s.auditar(ctx, usuario, "CANCELAR_COMANDA", fmt.Sprintf("comanda #%d", c.Numero))
	return nil
}

// ── Finalizar ─────────────────────────────────────────────────────────────────
// Exige caixa aberto: a venda da comanda entra como um único movimento VENDA
// na sessão corrente.

func (s *comandaService) Finalizar(ctx context.Context, usuario string, comandaID uuid.UUID, req dto.FinalizarComandaRequest) (*dto.FinalizarComandaResponse, error) {
	c, err := s.repo.FindByID(ctx, comandaID)
	if err != nil {
		return nil, errors.New("Comanda nao encontrada.")
	}
	if c.Status != model.ComandaAberta {
		return nil, errors.New("Comanda nao esta aberta.")
	}
	if len(c.Itens) == 0 {
		return nil, carrinho.ErrCarrinhoVazio
	}
	if _, err := s.caixa.CaixaAberto(ctx); err != nil {
		return nil, err
	}

	total := c.ValorTotal
	recebido := decimal.Zero
	if req.ValorRecebido != nil {
		recebido = req.ValorRecebido.Decimal
	}
	if req.PagamentoTipo == model.PagamentoDinheiro && recebido.LessThan(total) {
		return nil, errors.New("Valor recebido menor que o total.")
	}
	troco := carrinho.Troco(total, req.PagamentoTipo, recebido)

	c.Status = model.ComandaFinalizada
	c.AtualizadaEm = time.Now().In(s.cfg.Location())
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if err := s.caixa.LancarVendaComanda(ctx, c, req.PagamentoTipo, recebido, troco); err != nil {
		return nil, err
	}

	s.auditar(ctx, usuario, "FINALIZAR_COMANDA",
		fmt.Sprintf("comanda #%d: %s via %s", c.Numero, brl.Format(total), req.PagamentoTipo))
	return &dto.FinalizarComandaResponse{
		Comanda: *comandaToResponse(c),
		Total:   total,
		Troco:   troco,
	}, nil
}

// ── ResumoDia ─────────────────────────────────────────────────────────────────

func (s *comandaService) ResumoDia(ctx context.Context) (*dto.ResumoDiaResponse, error) {
	loc := s.cfg.Location()
	agora := time.Now().In(loc)
	inicio := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, loc)
	fim := inicio.Add(24*time.Hour - time.Second)

	comandas, err := s.repo.ListFinalizadasEntre(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumoDiaResponse{
		Quantidade:   len(comandas),
		TotalVendido: decimal.Zero,
		PorVendedor:  []dto.VendedorTotal{},
		PorProduto:   []dto.ProdutoTotal{},
	}
	indice := make(map[uuid.UUID]int)
	porProduto := make(map[uuid.UUID]int)
	for _, c := range comandas {
		resp.TotalVendido = resp.TotalVendido.Add(c.ValorTotal)
		i, ok := indice[c.VendedorID]
		if !ok {
			nome := ""
			if u, err := s.usuarioRepo.FindByID(ctx, c.VendedorID); err == nil {
				nome = u.Nome
			}
			i = len(resp.PorVendedor)
			indice[c.VendedorID] = i
			resp.PorVendedor = append(resp.PorVendedor, dto.VendedorTotal{
				VendedorID: c.VendedorID.String(),
				Nome:       nome,
				Total:      decimal.Zero,
			})
		}
		resp.PorVendedor[i].Quantidade++
		resp.PorVendedor[i].Total = resp.PorVendedor[i].Total.Add(c.ValorTotal)

		for _, item := range c.Itens {
			j, ok := porProduto[item.ProdutoID]
			if !ok {
				nome := ""
				if item.Produto != nil {
					nome = item.Produto.Nome
				}
				j = len(resp.PorProduto)
				porProduto[item.ProdutoID] = j
				resp.PorProduto = append(resp.PorProduto, dto.ProdutoTotal{
					ProdutoID:  item.ProdutoID.String(),
					Nome:       nome,
					Quantidade: decimal.Zero,
					Total:      decimal.Zero,
				})
			}
			resp.PorProduto[j].Quantidade = resp.PorProduto[j].Quantidade.Add(item.Quantidade)
			resp.PorProduto[j].Total = resp.PorProduto[j].Total.Add(item.TotalItem)
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *comandaService) auditar(ctx context.Context, usuario, acao, detalhe string) {
	d := detalhe
	s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaPayload{
		Usuario:  usuario,
		Acao:     acao,
		Detalhe:  &d,
		DataHora: time.Now().In(s.cfg.Location()),
	})
}

func comandaToResponse(c *model.Comanda) *dto.ComandaResponse {
	resp := &dto.ComandaResponse{
		ID:           c.ID.String(),
		Numero:       c.Numero,
		VendedorID:   c.VendedorID.String(),
		Mesa:         c.Mesa,
		Observacao:   c.Observacao,
		Status:       c.Status,
		ValorTotal:   c.ValorTotal,
		ValorFmt:     brl.Format(c.ValorTotal),
		CriadaEm:     c.CriadaEm.Format(time.RFC3339),
		AtualizadaEm: c.AtualizadaEm.Format(time.RFC3339),
	}
	resp.Itens = make([]dto.ItemComandaResponse, len(c.Itens))
	for i, item := range c.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		resp.Itens[i] = dto.ItemComandaResponse{
			ID:            item.ID.String(),
			ProdutoID:     item.ProdutoID.String(),
			ProdutoNome:   nome,
			Quantidade:    item.Quantidade,
			PrecoUnitario: item.PrecoUnitario,
			TotalItem:     item.TotalItem,
			CriadoEm:      item.CriadoEm.Format(time.RFC3339),
		}
	}
	return resp
}
