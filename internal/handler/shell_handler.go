package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/response"
)

type shellService interface {
	State() state.AppState
	Refresh(ctx context.Context)
	Navigate(view models.ViewTab) (state.AppState, error)
	DismissToast(id string) state.AppState
	Settings(ctx context.Context) models.Settings
}

// ShellHandler exposes the application state and navigation.
type ShellHandler struct {
	service shellService
}

// NewShellHandler constructs the handler.
func NewShellHandler(svc shellService) *ShellHandler {
	return &ShellHandler{service: svc}
}

// State godoc
// @Summary Application state
// @Tags Shell
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state [get]
func (h *ShellHandler) State(c *gin.Context) {
	response.OK(c, dto.NewStateView(h.service.State()))
}

// Refresh godoc
// @Summary Reload students and settings from the backend
// @Tags Shell
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /refresh [post]
func (h *ShellHandler) Refresh(c *gin.Context) {
	h.service.Refresh(c.Request.Context())
	response.OK(c, dto.NewStateView(h.service.State()))
}

// Navigate godoc
// @Summary Switch the active view
// @Tags Shell
// @Accept json
// @Produce json
// @Param payload body dto.NavigateInput true "Target view"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /navigate [post]
func (h *ShellHandler) Navigate(c *gin.Context) {
	var req dto.NavigateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid navigation payload"))
		return
	}
	next, err := h.service.Navigate(req.View)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStateView(next))
}

// DismissToast godoc
// @Summary Dismiss the visible notification
// @Tags Shell
// @Accept json
// @Produce json
// @Param payload body dto.DismissToastInput false "Toast to dismiss"
// @Success 200 {object} response.Envelope
// @Router /toast/dismiss [post]
func (h *ShellHandler) DismissToast(c *gin.Context) {
	var req dto.DismissToastInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toast payload"))
			return
		}
	}
	response.OK(c, dto.NewStateView(h.service.DismissToast(req.ID)))
}

// Settings godoc
// @Summary Class, section and year lists
// @Tags Shell
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *ShellHandler) Settings(c *gin.Context) {
	response.OK(c, h.service.Settings(c.Request.Context()))
}
