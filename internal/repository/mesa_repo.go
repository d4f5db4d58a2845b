package repository

import (
	"context"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MesaRepository interface {
	Create(ctx context.Context, m *model.Mesa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error)
	List(ctx context.Context, somenteAtivas bool) ([]model.Mesa, error)
	Update(ctx context.Context, m *model.Mesa) error
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Create(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mesa, error) {
	var m model.Mesa
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *mesaRepo) List(ctx context.Context, somenteAtivas bool) ([]model.Mesa, error) {
	var mesas []model.Mesa
	q := r.db.WithContext(ctx)
	if somenteAtivas {
		q = q.Where("ativo = true")
	}
	err := q.Order("numero ASC").Find(&mesas).Error
	return mesas, err
}

func (r *mesaRepo) Update(ctx context.Context, m *model.Mesa) error {
	return r.db.WithContext(ctx).Save(m).Error
}
