package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workspacebcn/internal/apierror"
	"workspacebcn/internal/dto"
	"workspacebcn/internal/service"
)

type ContactHandler struct{ svc service.ContactService }

func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Create godoc
// @Summary      Enviar mensaje de contacto
// @Description  Formulario público, sin autenticación.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body body dto.ContactRequest true "Mensaje"
// @Success      201  {object} apierror.APIError
// @Failure      400  {object} apierror.APIError
// @Router       /api/contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Submit(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, apierror.New("Mensaje de contacto recibido correctamente"))
}
