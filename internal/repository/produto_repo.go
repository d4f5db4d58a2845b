package repository

import (
	"context"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via fakes.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context, somenteAtivos bool) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Componentes de combo
	ReplaceComponentes(ctx context.Context, comboID uuid.UUID, comps []model.ProdutoComponente) error

	// Used inside transactions; callers must pass the tx instance
	AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta interface{}) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).Preload("Componentes").First(&p, id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, somenteAtivos bool) ([]model.Produto, error) {
	var produtos []model.Produto
	q := r.db.WithContext(ctx).Preload("Componentes")
	if somenteAtivos {
		q = q.Where("ativo = true")
	}
	err := q.Order("nome ASC").Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) ReplaceComponentes(ctx context.Context, comboID uuid.UUID, comps []model.ProdutoComponente) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("produto_combo_id = ?", comboID).Delete(&model.ProdutoComponente{}).Error; err != nil {
			return err
		}
		if len(comps) == 0 {
			return nil
		}
		return tx.Create(&comps).Error
	})
}

func (r *produtoRepo) AjustarEstoqueTx(tx *gorm.DB, id uuid.UUID, delta interface{}) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("estoque_atual", gorm.Expr("estoque_atual + ?", delta)).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
