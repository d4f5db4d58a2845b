package handler

import (
	"net/http"

	"barcontrol/internal/apierror"
	"barcontrol/internal/dto"
	"barcontrol/internal/middleware"
	"barcontrol/internal/model"
	"barcontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComandaHandler struct{ svc service.ComandaService }

func NewComandaHandler(svc service.ComandaService) *ComandaHandler {
	return &ComandaHandler{svc: svc}
}

// Criar godoc
// @Summary Abre uma nova comanda
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarComandaRequest true "Mesa e observacao"
// @Success 201 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas [post]
func (h *ComandaHandler) Criar(c *gin.Context) {
	var req dto.CriarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	vendedorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Usuario invalido."))
		return
	}
	// ADMIN pode abrir a comanda em nome de outro vendedor.
	if req.VendedorID != nil && claims.Role == model.RoleAdmin {
		if id, err := uuid.Parse(*req.VendedorID); err == nil {
			vendedorID = id
		}
	}
	resp, err := h.svc.Criar(c.Request.Context(), claims.Username, vendedorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista comandas (abertas por padrao)
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param status query string false "ABERTA | FINALIZADA | CANCELADA | all"
// @Param mesa query string false "Filtrar por mesa"
// @Success 200 {array} dto.ComandaResponse
// @Router /v1/comandas [get]
func (h *ComandaHandler) Listar(c *gin.Context) {
	var filter dto.ComandaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary Devolve uma comanda com itens
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/comandas/{id} [get]
func (h *ComandaHandler) Obter(c *gin.Context) {
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

// AdicionarItem godoc
// @Summary Adiciona um item a comanda (baixa o estoque)
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.AdicionarItemRequest true "Produto e quantidade"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/itens [post]
func (h *ComandaHandler) AdicionarItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.AdicionarItem(c.Request.Context(), claims.Username, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverItem godoc
// @Summary Remove um item da comanda (estorna o estoque)
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param itemId path string true "ID do item"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/itens/{itemId} [delete]
func (h *ComandaHandler) RemoverItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RemoverItem(c.Request.Context(), claims.Username, id, itemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela uma comanda aberta estornando todos os itens
// @Tags comandas
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/cancelar [post]
func (h *ComandaHandler) Cancelar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.Cancelar(c.Request.Context(), claims.Username, id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Finalizar godoc
// @Summary Finaliza a comanda e lanca a venda no caixa aberto
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.FinalizarComandaRequest true "Pagamento"
// @Success 200 {object} dto.FinalizarComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/comandas/{id}/finalizar [post]
func (h *ComandaHandler) Finalizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.FinalizarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Finalizar(c.Request.Context(), claims.Username, id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumoDia godoc
// @Summary Resumo das comandas finalizadas no dia corrente
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumoDiaResponse
// @Router /v1/comandas/resumo-dia [get]
func (h *ComandaHandler) ResumoDia(c *gin.Context) {
	resp, err := h.svc.ResumoDia(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
