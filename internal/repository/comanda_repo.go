package repository

import (
	"context"
	"time"

	"barcontrol/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComandaRepository interface {
	Create(ctx context.Context, c *model.Comanda) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error)
	List(ctx context.Context, status, mesa string) ([]model.Comanda, error)
	ListFinalizadasEntre(ctx context.Context, inicio, fim time.Time) ([]model.Comanda, error)
	Update(ctx context.Context, c *model.Comanda) error
	UpdateTx(tx *gorm.DB, c *model.Comanda) error
	CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error
	DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error
	FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.ItemComanda, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type comandaRepo struct{ db *gorm.DB }

func NewComandaRepository(db *gorm.DB) ComandaRepository { return &comandaRepo{db: db} }

func (r *comandaRepo) Create(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *comandaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comanda, error) {
	var c model.Comanda
	err := r.db.WithContext(ctx).Preload("Itens").Preload("Itens.Produto").First(&c, id).Error
	return &c, err
}

func (r *comandaRepo) List(ctx context.Context, status, mesa string) ([]model.Comanda, error) {
	var comandas []model.Comanda
	q := r.db.WithContext(ctx).Preload("Itens").Preload("Itens.Produto")
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if mesa != "" {
		q = q.Where("mesa = ?", mesa)
	}
	err := q.Order("criada_em ASC").Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) ListFinalizadasEntre(ctx context.Context, inicio, fim time.Time) ([]model.Comanda, error) {
	var comandas []model.Comanda
	err := r.db.WithContext(ctx).
		Preload("Itens").Preload("Itens.Produto").
		Where("status = ? AND atualizada_em BETWEEN ? AND ?", model.ComandaFinalizada, inicio, fim).
		Order("atualizada_em ASC").Find(&comandas).Error
	return comandas, err
}

func (r *comandaRepo) Update(ctx context.Context, c *model.Comanda) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *comandaRepo) UpdateTx(tx *gorm.DB, c *model.Comanda) error {
	return tx.Save(c).Error
}

func (r *comandaRepo) CreateItemTx(tx *gorm.DB, item *model.ItemComanda) error {
	return tx.Create(item).Error
}

func (r *comandaRepo) DeleteItemTx(tx *gorm.DB, itemID uuid.UUID) error {
	return tx.Delete(&model.ItemComanda{}, itemID).Error
}

func (r *comandaRepo) FindItemByID(ctx context.Context, itemID uuid.UUID) (*model.ItemComanda, error) {
	var item model.ItemComanda
	err := r.db.WithContext(ctx).Preload("Produto").First(&item, itemID).Error
	return &item, err
}

func (r *comandaRepo) DB() *gorm.DB { return r.db }
