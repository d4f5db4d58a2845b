package handler

import (
	"net/http"

	"barcontrol/internal/apierror"
	"barcontrol/internal/dto"
	"barcontrol/internal/middleware"
	"barcontrol/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

// Atual godoc
// @Summary Devolve o caixa aberto, ou null quando nao ha sessao
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CaixaResponse
// @Router /v1/caixa/atual [get]
func (h *CaixaHandler) Atual(c *gin.Context) {
	resp, err := h.svc.Atual(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre uma nova sessao de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Saldo inicial"
// @Success 201 {object} dto.CaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Abrir(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha a sessao de caixa aberta
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Saldo final declarado"
// @Success 200 {object} dto.CaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Fechar(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarMovimento godoc
// @Summary Registra reforco, sangria ou ajuste manual
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentoCaixaRequest true "Movimento"
// @Success 201 {object} dto.MovimentoCaixaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/movimentos [post]
func (h *CaixaHandler) RegistrarMovimento(c *gin.Context) {
	var req dto.MovimentoCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RegistrarMovimento(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Movimentos godoc
// @Summary Lista os movimentos da sessao aberta
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "YYYY-MM-DD"
// @Param data_fim query string false "YYYY-MM-DD"
// @Param tipo query string false "Tipo de movimento"
// @Success 200 {array} dto.MovimentoCaixaResponse
// @Router /v1/caixa/movimentos [get]
func (h *CaixaHandler) Movimentos(c *gin.Context) {
	var filter dto.MovimentoFilter
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

// VendaBalcao godoc
// @Summary Registra uma venda direta de balcao na sessao aberta
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.VendaBalcaoRequest true "Itens e pagamento"
// @Success 201 {object} dto.VendaBalcaoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/caixa/venda [post]
func (h *CaixaHandler) VendaBalcao(c *gin.Context) {
	var req dto.VendaBalcaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.VendaBalcao(c.Request.Context(), claims.Username, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Resumo godoc
// @Summary Resumo da sessao aberta com totais dobrados do livro
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param data_inicio query string false "YYYY-MM-DD"
// @Param data_fim query string false "YYYY-MM-DD"
// @Param tipo query string false "Tipo de movimento"
// @Success 200 {object} dto.ResumoCaixaResponse
// @Router /v1/caixa/resumo [get]
func (h *CaixaHandler) Resumo(c *gin.Context) {
	var filter dto.MovimentoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Resumo(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio godoc
// @Summary Gera o relatorio em PDF de uma sessao de caixa
// @Tags caixa
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/caixa/{id}/relatorio [get]
func (h *CaixaHandler) Relatorio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido."))
		return
	}
	path, err := h.svc.RelatorioPDF(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "relatorio-caixa.pdf")
}
