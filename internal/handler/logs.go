package handler

import (
	"net/http"

	"barcontrol/internal/apierror"
	"barcontrol/internal/dto"
	"barcontrol/internal/service"

	"github.com/gin-gonic/gin"
)

type LogHandler struct{ svc service.LogService }

func NewLogHandler(svc service.LogService) *LogHandler { return &LogHandler{svc: svc} }

// Listar godoc
// @Summary Lista o rastro de auditoria
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param usuario query string false "Filtrar por usuario"
// @Param acao query string false "Filtrar por acao"
// @Param data_inicio query string false "YYYY-MM-DD"
// @Param data_fim query string false "YYYY-MM-DD"
// @Param limit query int false "Maximo de entradas"
// @Success 200 {array} dto.LogResponse
// @Router /v1/logs [get]
func (h *LogHandler) Listar(c *gin.Context) {
	var filter dto.LogFilter
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
