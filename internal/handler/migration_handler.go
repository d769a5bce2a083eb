package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records/internal/dto"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/response"
)

type migrationService interface {
	State() dto.MigrationView
	SetSource(sel dto.MigrationSelection) dto.MigrationView
	SetTarget(sel dto.MigrationSelection) dto.MigrationView
	LoadCohort(ctx context.Context) (dto.MigrationView, error)
	Toggle(uid string) (dto.MigrationView, error)
	ToggleAll() dto.MigrationView
	SetRoll(uid, roll string) (dto.MigrationView, error)
	Submit(ctx context.Context, confirmed bool) (dto.MigrationView, error)
}

// MigrationHandler drives the bulk promotion workflow.
type MigrationHandler struct {
	service migrationService
}

// NewMigrationHandler constructs the handler.
func NewMigrationHandler(service migrationService) *MigrationHandler {
	return &MigrationHandler{service: service}
}

// State godoc
// @Summary Migration workflow state
// @Tags Migration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /migration [get]
func (h *MigrationHandler) State(c *gin.Context) {
	response.OK(c, h.service.State())
}

// SetSource godoc
// @Summary Select the source year, class and section
// @Tags Migration
// @Accept json
// @Produce json
// @Param payload body dto.MigrationSelection true "Source"
// @Success 200 {object} response.Envelope
// @Router /migration/source [put]
func (h *MigrationHandler) SetSource(c *gin.Context) {
	var req dto.MigrationSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection"))
		return
	}
	response.OK(c, h.service.SetSource(req))
}

// SetTarget godoc
// @Summary Select the target year, class and section
// @Tags Migration
// @Accept json
// @Produce json
// @Param payload body dto.MigrationSelection true "Target"
// @Success 200 {object} response.Envelope
// @Router /migration/target [put]
func (h *MigrationHandler) SetTarget(c *gin.Context) {
	var req dto.MigrationSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection"))
		return
	}
	response.OK(c, h.service.SetTarget(req))
}

// Load godoc
// @Summary Load the source cohort
// @Description Every loaded student starts selected
// @Tags Migration
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /migration/load [post]
func (h *MigrationHandler) Load(c *gin.Context) {
	view, err := h.service.LoadCohort(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Toggle godoc
// @Summary Select or deselect one student
// @Tags Migration
// @Produce json
// @Param uid path string true "Student UID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /migration/students/{uid}/toggle [post]
func (h *MigrationHandler) Toggle(c *gin.Context) {
	view, err := h.service.Toggle(c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// SelectAll godoc
// @Summary Select all, or clear when everyone is selected
// @Tags Migration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /migration/select-all [post]
func (h *MigrationHandler) SelectAll(c *gin.Context) {
	response.OK(c, h.service.ToggleAll())
}

// SetRoll godoc
// @Summary Override the new roll of a selected student
// @Tags Migration
// @Accept json
// @Produce json
// @Param uid path string true "Student UID"
// @Param payload body dto.MigrationRollInput true "Roll"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /migration/students/{uid}/roll [put]
func (h *MigrationHandler) SetRoll(c *gin.Context) {
	var req dto.MigrationRollInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid roll payload"))
		return
	}
	view, err := h.service.SetRoll(c.Param("uid"), req.Roll)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

// Submit godoc
// @Summary Promote the selected students
// @Description Requires confirm=true; without it the confirmation prompt is returned with 412
// @Tags Migration
// @Accept json
// @Produce json
// @Param payload body dto.ConfirmInput false "Confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /migration/submit [post]
func (h *MigrationHandler) Submit(c *gin.Context) {
	var req dto.ConfirmInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid confirmation payload"))
			return
		}
	}
	view, err := h.service.Submit(c.Request.Context(), req.Confirm)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}
