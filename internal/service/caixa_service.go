package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barcontrol/internal/carrinho"
	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/infra"
	"barcontrol/internal/ledger"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"
	"barcontrol/internal/worker"
	"barcontrol/pkg/brl"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CaixaService interface {
	Atual(ctx context.Context) (*dto.CaixaResponse, error)
	Abrir(ctx context.Context, usuario string, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, usuario string, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error)
	RegistrarMovimento(ctx context.Context, usuario string, req dto.MovimentoCaixaRequest) (*dto.MovimentoCaixaResponse, error)
	Movimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoCaixaResponse, error)
	VendaBalcao(ctx context.Context, usuario string, req dto.VendaBalcaoRequest) (*dto.VendaBalcaoResponse, error)
	Resumo(ctx context.Context, filter dto.MovimentoFilter) (*dto.ResumoCaixaResponse, error)
	RelatorioPDF(ctx context.Context, caixaID uuid.UUID) (string, error)

	// CaixaAberto is called by ComandaService before lançar a venda da comanda.
	CaixaAberto(ctx context.Context) (*model.Caixa, error)
	LancarVendaComanda(ctx context.Context, c *model.Comanda, pagamentoTipo string, valorRecebido, troco decimal.Decimal) error
}

type caixaService struct {
	repo        repository.CaixaRepository
	produtoRepo repository.ProdutoRepository
	estoqueRepo repository.MovEstoqueRepository
	rdb         *redis.Client
	dispatcher  *worker.Dispatcher
	cfg         *config.Config
}

func NewCaixaService(
	repo repository.CaixaRepository,
	produtoRepo repository.ProdutoRepository,
	estoqueRepo repository.MovEstoqueRepository,
	rdb *redis.Client,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) CaixaService {
	return &caixaService{
		repo:        repo,
		produtoRepo: produtoRepo,
		estoqueRepo: estoqueRepo,
		rdb:         rdb,
		dispatcher:  dispatcher,
		cfg:         cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Atual ─────────────────────────────────────────────────────────────────────
// Ausência de caixa aberto é estado normal, não erro: devolve nil.

func (s *caixaService) Atual(ctx context.Context) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return caixaToResponse(caixa), nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, usuario string, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if _, err := s.repo.FindAberto(ctx); err == nil {
		return nil, ErrCaixaJaAberto
	}
	if req.SaldoInicial.IsNegative() {
		return nil, errors.New("Saldo inicial nao pode ser negativo.")
	}

	caixa := &model.Caixa{
		Status:       model.CaixaAberto,
		SaldoInicial: req.SaldoInicial.Decimal,
		Observacao:   req.Observacao,
		AbertoEm:     time.Now().In(s.cfg.Location()),
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		return nil, err
	}

	// Movimento marcador: neutro na dobra de entradas/saídas.
	desc := "Abertura de caixa"
	if req.Observacao != nil && *req.Observacao != "" {
		desc = *req.Observacao
	}
	mov := &model.CaixaMov{
		CaixaID:   caixa.ID,
		Tipo:      model.MovAbertura,
		Valor:     caixa.SaldoInicial,
		Descricao: &desc,
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}

	s.auditar(ctx, usuario, "ABRIR_CAIXA", fmt.Sprintf("saldo inicial %s", brl.Format(caixa.SaldoInicial)))
	return caixaToResponse(caixa), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

func (s *caixaService) Fechar(ctx context.Context, usuario string, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, ErrCaixaFechado
	}

	movs, err := s.repo.ListMovimentos(ctx, caixa.ID)
	if err != nil {
		return nil, err
	}
	apurado := ledger.Saldo(caixa.SaldoInicial, movs)
	vendido := ledger.TotalVendido(caixa.ID, movs)

	agora := time.Now().In(s.cfg.Location())
	saldoFinal := req.SaldoFinal.Decimal
	caixa.Status = model.CaixaFechado
	caixa.SaldoFinal = &saldoFinal
	caixa.Observacao = req.Observacao
	caixa.FechadoEm = &agora
	if err := s.repo.Update(ctx, caixa); err != nil {
		return nil, err
	}

	// O marcador carrega o total vendido da sessão; o saldo declarado fica
	// no caixa e na descrição.
	desc := fmt.Sprintf("Fechamento de caixa: declarado %s, apurado %s",
		brl.Format(saldoFinal), brl.Format(apurado))
	mov := &model.CaixaMov{
		CaixaID:   caixa.ID,
		Tipo:      model.MovFechamento,
		Valor:     vendido,
		Descricao: &desc,
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}

	s.auditar(ctx, usuario, "FECHAR_CAIXA", fmt.Sprintf("declarado %s, apurado %s",
		brl.Format(saldoFinal), brl.Format(apurado)))
	return caixaToResponse(caixa), nil
}

// ── RegistrarMovimento ────────────────────────────────────────────────────────
// Reforço, sangria e ajuste manuais. Movimentos são imutáveis.

func (s *caixaService) RegistrarMovimento(ctx context.Context, usuario string, req dto.MovimentoCaixaRequest) (*dto.MovimentoCaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, ErrCaixaFechado
	}
	if !req.Valor.IsPositive() {
		return nil, errors.New("Valor deve ser maior que zero.")
	}

	mov := &model.CaixaMov{
		CaixaID:   caixa.ID,
		Tipo:      req.Tipo,
		Valor:     req.Valor.Decimal,
		Descricao: req.Descricao,
	}
	if err := s.repo.CreateMovimento(ctx, mov); err != nil {
		return nil, err
	}

	s.auditar(ctx, usuario, "MOVIMENTO_CAIXA", fmt.Sprintf("%s %s", req.Tipo, brl.Format(mov.Valor)))
	resp := movToResponse(mov)
	return &resp, nil
}

// Movimentos lista os movimentos da sessão aberta, filtrados por período
// e tipo. Sem sessão aberta cai no último caixa, para o histórico seguir
// visível logo depois do fechamento.
func (s *caixaService) Movimentos(ctx context.Context, filter dto.MovimentoFilter) ([]dto.MovimentoCaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		caixa, err = s.repo.FindUltimo(ctx)
		if err != nil {
			return []dto.MovimentoCaixaResponse{}, nil
		}
	}
	movs, err := s.repo.ListMovimentos(ctx, caixa.ID)
	if err != nil {
		return nil, err
	}
	filtrados := s.filtrar(movs, filter)
	resp := make([]dto.MovimentoCaixaResponse, len(filtrados))
	for i := range filtrados {
		resp[i] = movToResponse(&filtrados[i])
	}
	return resp, nil
}

func (s *caixaService) filtrar(movs []model.CaixaMov, filter dto.MovimentoFilter) []model.CaixaMov {
	periodo := ledger.NovoPeriodo(filter.DataInicio, filter.DataFim, s.cfg.Location())
	filtrados := ledger.FiltrarMovimentos(movs, periodo)
	if filter.Tipo != "" {
		n := filtrados[:0]
		for _, m := range filtrados {
			if m.Tipo == filter.Tipo {
				n = append(n, m)
			}
		}
		filtrados = n
	}
	return filtrados
}

// ── VendaBalcao ───────────────────────────────────────────────────────────────
// Venda direta sem comanda: monta o carrinho, valida o pagamento, baixa o
// estoque (expandindo combos) e registra um único movimento VENDA.

func (s *caixaService) VendaBalcao(ctx context.Context, usuario string, req dto.VendaBalcaoRequest) (*dto.VendaBalcaoResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, ErrCaixaFechado
	}

	produtos, err := s.produtoRepo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	cart := carrinho.Carrinho{}
	for _, item := range req.Itens {
		pid, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, carrinho.ErrProdutoInvalido
		}
		cart, err = cart.Adicionar(produtos, pid, item.Quantidade)
		if err != nil {
			return nil, err
		}
	}
	itens, err := cart.Fechar()
	if err != nil {
		return nil, err
	}
	total := cart.Subtotal()

	recebido := decimal.Zero
	if req.ValorRecebido != nil {
		recebido = req.ValorRecebido.Decimal
	}
	if req.PagamentoTipo == model.PagamentoDinheiro && recebido.LessThan(total) {
		return nil, errors.New("Valor recebido menor que o total.")
	}
	troco := carrinho.Troco(total, req.PagamentoTipo, recebido)

	porID := make(map[uuid.UUID]model.Produto, len(produtos))
	for _, p := range produtos {
		porID[p.ID] = p
	}
	for _, item := range itens {
		if err := verificarEstoqueVenda(ctx, s.estoqueRepo, s.produtoRepo,
			porID[item.ProdutoID], decimal.NewFromInt(item.Quantidade)); err != nil {
			return nil, err
		}
	}

	mov := &model.CaixaMov{
		CaixaID:       caixa.ID,
		Tipo:          model.MovVenda,
		Valor:         total,
		Descricao:     req.Descricao,
		PagamentoTipo: &req.PagamentoTipo,
	}
	if req.PagamentoTipo == model.PagamentoDinheiro {
		mov.ValorRecebido = &recebido
		mov.Troco = &troco
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, item := range itens {
			p := porID[item.ProdutoID]
			if err := movimentarVendaTx(s.estoqueRepo, s.produtoRepo, tx, p,
				decimal.NewFromInt(item.Quantidade), model.EstoqueBaixa, nil, nil,
				"Venda balcao", s.cfg.Location()); err != nil {
				return err
			}
		}
		return s.repo.CreateMovimentoTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}

	invalidarCacheProdutos(ctx, s.rdb)
	s.auditar(ctx, usuario, "VENDA_BALCAO", fmt.Sprintf("%s via %s", brl.Format(total), req.PagamentoTipo))
	return &dto.VendaBalcaoResponse{
		Movimento: movToResponse(mov),
		Total:     total,
		Troco:     troco,
		TotalFmt:  brl.Format(total),
		TrocoFmt:  brl.Format(troco),
	}, nil
}

// ── Resumo ────────────────────────────────────────────────────────────────────
// Os totais saem sempre da dobra do livro filtrado; o total vendido da
// sessão ignora o filtro de datas de propósito.

func (s *caixaService) Resumo(ctx context.Context, filter dto.MovimentoFilter) (*dto.ResumoCaixaResponse, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return &dto.ResumoCaixaResponse{
			Entradas:          decimal.Zero,
			Saidas:            decimal.Zero,
			Saldo:             decimal.Zero,
			TotalVendidoCaixa: decimal.Zero,
			Movimentos:        []dto.MovimentoCaixaResponse{},
		}, nil
	}

	movs, err := s.repo.ListMovimentos(ctx, caixa.ID)
	if err != nil {
		return nil, err
	}

	filtrados := s.filtrar(movs, filter)
	fluxo := ledger.FluxoCaixa(filtrados, ledger.ClassificaCaixa)
	saldo := ledger.Saldo(caixa.SaldoInicial, filtrados)
	vendido := ledger.TotalVendido(caixa.ID, movs)

	resp := &dto.ResumoCaixaResponse{
		Caixa:             caixaToResponse(caixa),
		Entradas:          fluxo.Entradas,
		Saidas:            fluxo.Saidas,
		Saldo:             saldo,
		TotalVendidoCaixa: vendido,
		Movimentos:        make([]dto.MovimentoCaixaResponse, len(filtrados)),
	}
	for i, m := range filtrados {
		mov := m
		resp.Movimentos[i] = movToResponse(&mov)
	}
	return resp, nil
}

// ── RelatorioPDF ──────────────────────────────────────────────────────────────

func (s *caixaService) RelatorioPDF(ctx context.Context, caixaID uuid.UUID) (string, error) {
	caixa, err := s.repo.FindByID(ctx, caixaID)
	if err != nil {
		return "", errors.New("Caixa nao encontrado.")
	}
	movs, err := s.repo.ListMovimentos(ctx, caixa.ID)
	if err != nil {
		return "", err
	}

	rel := infra.RelatorioCaixa{
		Caixa:        caixa,
		Movimentos:   movs,
		Fluxo:        ledger.FluxoCaixa(movs, ledger.ClassificaCaixa),
		SaldoApurado: ledger.Saldo(caixa.SaldoInicial, movs),
		TotalVendido: ledger.TotalVendido(caixa.ID, movs),
	}
	return infra.GenerateCaixaPDF(rel, s.cfg.PDFStoragePath, s.cfg.Location())
}

// ── Integração com comandas ──────────────────────────────────────────────────

func (s *caixaService) CaixaAberto(ctx context.Context) (*model.Caixa, error) {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return nil, ErrCaixaFechado
	}
	return caixa, nil
}

// LancarVendaComanda registra o movimento VENDA da comanda finalizada.
func (s *caixaService) LancarVendaComanda(ctx context.Context, c *model.Comanda, pagamentoTipo string, valorRecebido, troco decimal.Decimal) error {
	caixa, err := s.repo.FindAberto(ctx)
	if err != nil {
		return ErrCaixaFechado
	}
	desc := fmt.Sprintf("Comanda #%d", c.Numero)
	mov := &model.CaixaMov{
		CaixaID:       caixa.ID,
		Tipo:          model.MovVenda,
		Valor:         c.ValorTotal,
		Descricao:     &desc,
		PagamentoTipo: &pagamentoTipo,
	}
	if pagamentoTipo == model.PagamentoDinheiro {
		mov.ValorRecebido = &valorRecebido
		mov.Troco = &troco
	}
	return s.repo.CreateMovimento(ctx, mov)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *caixaService) auditar(ctx context.Context, usuario, acao, detalhe string) {
	d := detalhe
	s.dispatcher.EnqueueAuditoria(ctx, worker.AuditoriaPayload{
		Usuario:  usuario,
		Acao:     acao,
		Detalhe:  &d,
		DataHora: time.Now().In(s.cfg.Location()),
	})
}

func caixaToResponse(c *model.Caixa) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:           c.ID.String(),
		Status:       c.Status,
		SaldoInicial: c.SaldoInicial,
		SaldoFinal:   c.SaldoFinal,
		Observacao:   c.Observacao,
		AbertoEm:     c.AbertoEm.Format(time.RFC3339),
	}
	if c.FechadoEm != nil {
		t := c.FechadoEm.Format(time.RFC3339)
		resp.FechadoEm = &t
	}
	return resp
}

func movToResponse(m *model.CaixaMov) dto.MovimentoCaixaResponse {
	return dto.MovimentoCaixaResponse{
		ID:            m.ID.String(),
		CaixaID:       m.CaixaID.String(),
		Tipo:          m.Tipo,
		Valor:         m.Valor,
		Descricao:     m.Descricao,
		PagamentoTipo: m.PagamentoTipo,
		ValorRecebido: m.ValorRecebido,
		Troco:         m.Troco,
		CriadoEm:      m.CriadoEm.Format(time.RFC3339),
	}
}
