package repository

import (
	"context"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindAberto(ctx context.Context) (*model.Caixa, error)
	FindUltimo(ctx context.Context) (*model.Caixa, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	Update(ctx context.Context, c *model.Caixa) error
	CreateMovimento(ctx context.Context, m *model.CaixaMov) error
	CreateMovimentoTx(tx *gorm.DB, m *model.CaixaMov) error
	ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.CaixaMov, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindAberto(ctx context.Context) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Where("status = ?", model.CaixaAberto).
		Order("aberto_em DESC").First(&c).Error
	return &c, err
}

// FindUltimo devolve o caixa mais recente, aberto ou não. Serve de
// fallback para o histórico de movimentos logo após um fechamento.
func (r *caixaRepo) FindUltimo(ctx context.Context) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Order("aberto_em DESC").First(&c).Error
	return &c, err
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Preload("Movimentos").First(&c, id).Error
	return &c, err
}

func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.CaixaMov) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) CreateMovimentoTx(tx *gorm.DB, m *model.CaixaMov) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.CaixaMov, error) {
	var movs []model.CaixaMov
	err := r.db.WithContext(ctx).Where("caixa_id = ?", caixaID).
		Order("criado_em ASC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) DB() *gorm.DB { return r.db }
