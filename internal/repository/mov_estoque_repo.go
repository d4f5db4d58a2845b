package repository

import (
	"context"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovEstoqueFilter defines filters for listing stock movements.
type MovEstoqueFilter struct {
	ProdutoID *uuid.UUID
	Tipo      string
}

type MovEstoqueRepository interface {
	Create(ctx context.Context, m *model.MovEstoque) error
	CreateTx(tx *gorm.DB, m *model.MovEstoque) error
	List(ctx context.Context, filter MovEstoqueFilter) ([]model.MovEstoque, error)
	ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.MovEstoque, error)
}

type movEstoqueRepo struct{ db *gorm.DB }

func NewMovEstoqueRepository(db *gorm.DB) MovEstoqueRepository {
	return &movEstoqueRepo{db: db}
}

func (r *movEstoqueRepo) Create(ctx context.Context, m *model.MovEstoque) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movEstoqueRepo) CreateTx(tx *gorm.DB, m *model.MovEstoque) error {
	return tx.Create(m).Error
}

func (r *movEstoqueRepo) List(ctx context.Context, filter MovEstoqueFilter) ([]model.MovEstoque, error) {
	q := r.db.WithContext(ctx).Preload("Produto")
	if filter.ProdutoID != nil {
		q = q.Where("produto_id = ?", *filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	var movs []model.MovEstoque
	err := q.Order("data_hora ASC").Find(&movs).Error
	return movs, err
}

func (r *movEstoqueRepo) ListByProduto(ctx context.Context, produtoID uuid.UUID) ([]model.MovEstoque, error) {
	var movs []model.MovEstoque
	err := r.db.WithContext(ctx).Where("produto_id = ?", produtoID).
		Order("data_hora ASC").Find(&movs).Error
	return movs, err
}
