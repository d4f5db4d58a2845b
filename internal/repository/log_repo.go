package repository

import (
	"context"
	"time"

	"barcontrol/internal/model"

	"gorm.io/gorm"
)

// LogFilter defines filters for listing audit entries.
type LogFilter struct {
	Usuario string
	Acao    string
	Inicio  *time.Time
	Fim     *time.Time
	Limit   int
}

type LogRepository interface {
	Create(ctx context.Context, l *model.LogAcao) error
	List(ctx context.Context, filter LogFilter) ([]model.LogAcao, error)
}

type logRepo struct{ db *gorm.DB }

func NewLogRepository(db *gorm.DB) LogRepository { return &logRepo{db: db} }

func (r *logRepo) Create(ctx context.Context, l *model.LogAcao) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *logRepo) List(ctx context.Context, filter LogFilter) ([]model.LogAcao, error) {
	q := r.db.WithContext(ctx).Model(&model.LogAcao{})
	if filter.Usuario != "" {
		q = q.Where("usuario = ?", filter.Usuario)
	}
	if filter.Acao != "" {
		q = q.Where("acao = ?", filter.Acao)
	}
	if filter.Inicio != nil {
		q = q.Where("data_hora >= ?", *filter.Inicio)
	}
	if filter.Fim != nil {
		q = q.Where("data_hora <= ?", *filter.Fim)
	}
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var logs []model.LogAcao
	err := q.Order("data_hora DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
