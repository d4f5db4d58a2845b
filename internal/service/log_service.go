package service

import (
	"context"
	"time"

	"barcontrol/internal/config"
	"barcontrol/internal/dto"
	"barcontrol/internal/repository"
)

type LogService interface {
	Listar(ctx context.Context, filter dto.LogFilter) ([]dto.LogResponse, error)
}

type logService struct {
	repo repository.LogRepository
	cfg  *config.Config
}

func NewLogService(repo repository.LogRepository, cfg *config.Config) LogService {
	return &logService{repo: repo, cfg: cfg}
}

func (s *logService) Listar(ctx context.Context, filter dto.LogFilter) ([]dto.LogResponse, error) {
	repoFilter := repository.LogFilter{
		Usuario: filter.Usuario,
		Acao:    filter.Acao,
		Limit:   filter.Limit,
	}
	loc := s.cfg.Location()
	if filter.DataInicio != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.DataInicio, loc); err == nil {
			repoFilter.Inicio = &t
		}
	}
	if filter.DataFim != "" {
		if t, err := time.ParseInLocation("2006-01-02", filter.DataFim, loc); err == nil {
			fim := t.Add(24*time.Hour - time.Second)
			repoFilter.Fim = &fim
		}
	}

	logs, err := s.repo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.LogResponse, len(logs))
	for i, l := range logs {
		resp[i] = dto.LogResponse{
			ID:       l.ID.String(),
			Usuario:  l.Usuario,
			Acao:     l.Acao,
			Detalhe:  l.Detalhe,
			IP:       l.IP,
			DataHora: l.DataHora.Format(time.RFC3339),
		}
	}
	return resp, nil
}
