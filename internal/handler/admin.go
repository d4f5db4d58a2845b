package handler

// admin.go concentra as rotas administrativas: usuários e mesas.

import (
	"net/http"

	"barcontrol/internal/apierror"
	"barcontrol/internal/dto"
	"barcontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	auth service.AuthService
	mesa service.MesaService
}

func NewAdminHandler(auth service.AuthService, mesa service.MesaService) *AdminHandler {
	return &AdminHandler{auth: auth, mesa: mesa}
}

// ── Usuários ─────────────────────────────────────────────────────────────────

// CriarUsuario godoc
// @Summary Cria um usuario
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarUsuarioRequest true "Usuario"
// @Success 201 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/usuarios [post]
func (h *AdminHandler) CriarUsuario(c *gin.Context) {
	var req dto.CriarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.CriarUsuario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarUsuarios godoc
// @Summary Lista usuarios ativos
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UsuarioResponse
// @Router /v1/usuarios [get]
func (h *AdminHandler) ListarUsuarios(c *gin.Context) {
	resp, err := h.auth.ListarUsuarios(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarUsuario godoc
// @Summary Atualiza um usuario
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do usuario"
// @Param body body dto.AtualizarUsuarioRequest true "Campos a atualizar"
// @Success 200 {object} dto.UsuarioResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/usuarios/{id} [put]
func (h *AdminHandler) AtualizarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.AtualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.auth.AtualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesativarUsuario godoc
// @Summary Desativa um usuario (soft delete)
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID do usuario"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/usuarios/{id} [delete]
func (h *AdminHandler) DesativarUsuario(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	if err := h.auth.DesativarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Mesas ────────────────────────────────────────────────────────────────────

// CriarMesa godoc
// @Summary Cria uma mesa
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarMesaRequest true "Mesa"
// @Success 201 {object} dto.MesaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas [post]
func (h *AdminHandler) CriarMesa(c *gin.Context) {
	var req dto.CriarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.mesa.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarMesas godoc
// @Summary Lista mesas
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param inativas query bool false "Incluir inativas"
// @Success 200 {array} dto.MesaResponse
// @Router /v1/mesas [get]
func (h *AdminHandler) ListarMesas(c *gin.Context) {
	incluirInativas := c.Query("inativas") == "true"
	resp, err := h.mesa.Listar(c.Request.Context(), incluirInativas)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarMesa godoc
// @Summary Atualiza uma mesa
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da mesa"
// @Param body body dto.AtualizarMesaRequest true "Campos a atualizar"
// @Success 200 {object} dto.MesaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/mesas/{id} [put]
func (h *AdminHandler) AtualizarMesa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	var req dto.AtualizarMesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.mesa.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
