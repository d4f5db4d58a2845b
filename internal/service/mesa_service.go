package service

import (
	"context"
	"errors"
	"time"

	"barcontrol/internal/dto"
	"barcontrol/internal/model"
	"barcontrol/internal/repository"

	"github.com/google/uuid"
)

type MesaService interface {
	Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error)
	Listar(ctx context.Context, incluirInativas bool) ([]dto.MesaResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMesaRequest) (*dto.MesaResponse, error)
}

type mesaService struct {
	repo repository.MesaRepository
}

func NewMesaService(repo repository.MesaRepository) MesaService {
	return &mesaService{repo: repo}
}

func (s *mesaService) Criar(ctx context.Context, req dto.CriarMesaRequest) (*dto.MesaResponse, error) {
	m := &model.Mesa{
		Numero:    req.Numero,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, errors.New("Nao foi possivel criar a mesa.")
	}
	return mesaToResponse(m), nil
}

func (s *mesaService) Listar(ctx context.Context, incluirInativas bool) ([]dto.MesaResponse, error) {
	mesas, err := s.repo.List(ctx, !incluirInativas)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MesaResponse, len(mesas))
	for i := range mesas {
		resp[i] = *mesaToResponse(&mesas[i])
	}
	return resp, nil
}

func (s *mesaService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarMesaRequest) (*dto.MesaResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("Mesa nao encontrada.")
	}
	if req.Descricao != nil {
		m.Descricao = req.Descricao
	}
	if req.Ativo != nil {
		m.Ativo = *req.Ativo
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return mesaToResponse(m), nil
}

func mesaToResponse(m *model.Mesa) *dto.MesaResponse {
	return &dto.MesaResponse{
		ID:        m.ID.String(),
		Numero:    m.Numero,
		Descricao: m.Descricao,
		Ativo:     m.Ativo,
		CriadoEm:  m.CriadoEm.Format(time.RFC3339),
	}
}
