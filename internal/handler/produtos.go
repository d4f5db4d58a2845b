package handler

import (
	"context"
	"net/http"

	"barcontrol/internal/apierror"
	"barcontrol/internal/dto"
	"barcontrol/internal/middleware"
	"barcontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProdutoHandler struct{ svc service.ProdutoService }

func NewProdutoHandler(svc service.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{svc: svc}
}

// Criar godoc
// @Summary Cria um produto simples ou combo
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos [post]
func (h *ProdutoHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Criar(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista produtos com saldo e disponibilidade
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param inativos query bool false "Incluir inativos"
// @Success 200 {array} dto.ProdutoResponse
// @Router /v1/produtos [get]
func (h *ProdutoHandler) Listar(c *gin.Context) {
	incluirInativos := c.Query("inativos") == "true"
	resp, err := h.svc.Listar(c.Request.Context(), incluirInativos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Devolve um produto por ID
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/produtos/{id} [get]
func (h *ProdutoHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/{id} [put]
func (h *ProdutoHandler) Atualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Atualizar(c.Request.Context(), claims.Username, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desativar godoc
// @Summary Desativa um produto (soft delete)
// @Tags produtos
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/{id} [delete]
func (h *ProdutoHandler) Desativar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Desativar(c.Request.Context(), claims.Username, id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Entrada godoc
// @Summary Registra entrada manual de estoque
// @Tags produtos
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.MovimentoEstoqueRequest true "Quantidade"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/{id}/entrada [post]
func (h *ProdutoHandler) Entrada(c *gin.Context) {
	h.movimentar(c, h.svc.EntradaEstoque)
}

// Saida godoc
// @Summary Registra saida manual de estoque
// @Tags produtos
// @Accept json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.MovimentoEstoqueRequest true "Quantidade"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/produtos/{id}/saida [post]
func (h *ProdutoHandler) Saida(c *gin.Context) {
	h.movimentar(c, h.svc.SaidaEstoque)
}

func (h *ProdutoHandler) movimentar(c *gin.Context, fn func(ctx context.Context, usuario string, id uuid.UUID, req dto.MovimentoEstoqueRequest) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.MovimentoEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := fn(c.Request.Context(), claims.Username, id, req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Movimentos godoc
// @Summary Lista movimentos de estoque com agregado por produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "YYYY-MM-DD"
// @Param data_fim query string false "YYYY-MM-DD"
// @Param produto_id query string false "Filtrar por produto"
// @Success 200 {object} dto.MovimentosEstoqueResponse
// @Router /v1/produtos/movimentos [get]
func (h *ProdutoHandler) Movimentos(c *gin.Context) {
	var filter dto.EstoqueFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Movimentos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
