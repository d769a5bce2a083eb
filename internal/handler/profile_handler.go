package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/response"
)

type profileLister interface {
	Profiles(ctx context.Context, query dto.ProfileListQuery) []models.StudentData
}

type profileForm interface {
	Form() dto.ProfileForm
	Create(ctx context.Context, input dto.ProfileInput) (models.StudentProfile, error)
	Update(ctx context.Context, uid string, input dto.ProfileInput) (models.StudentProfile, error)
}

type profileShell interface {
	StartProfileEdit(uid string) (state.AppState, error)
	CancelProfileEdit() state.AppState
	DeleteStudent(ctx context.Context, uid string, confirmed bool) error
}

type detailService interface {
	Detail(uid string, mode models.ModalMode) (*dto.StudentDetail, error)
}

type detailPrinter interface {
	DetailPDF(uid string) ([]byte, string, error)
}

// ProfileHandler exposes the profile list, intake form and detail view.
type ProfileHandler struct {
	list    profileLister
	form    profileForm
	shell   profileShell
	detail  detailService
	printer detailPrinter
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(list profileLister, form profileForm, shell profileShell, detail detailService, printer detailPrinter) *ProfileHandler {
	return &ProfileHandler{list: list, form: form, shell: shell, detail: detail, printer: printer}
}

// List godoc
// @Summary List student profiles
// @Tags Profiles
// @Produce json
// @Param search query string false "Name or UID"
// @Param class query string false "Current class"
// @Success 200 {object} response.Envelope
// @Router /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var query dto.ProfileListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	students := h.list.Profiles(c.Request.Context(), query)
	response.OK(c, students, map[string]interface{}{"total": len(students)})
}

// Form godoc
// @Summary Prefilled profile form
// @Description Edit form for the targeted profile, otherwise a blank form carrying the next UID
// @Tags Profiles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profiles/form [get]
func (h *ProfileHandler) Form(c *gin.Context) {
	response.OK(c, h.form.Form())
}

// Create godoc
// @Summary Create a student profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param payload body dto.ProfileInput true "Profile"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	profile, err := h.form.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, profile)
}

// Update godoc
// @Summary Update a student profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param uid path string true "Student UID"
// @Param payload body dto.ProfileInput true "Profile"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /profiles/{uid} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
		return
	}
	profile, err := h.form.Update(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}

// StartEdit godoc
// @Summary Target a profile for editing
// @Tags Profiles
// @Produce json
// @Param uid path string true "Student UID"
// @Success 200 {object} response.Envelope
// @Router /profiles/{uid}/edit [post]
func (h *ProfileHandler) StartEdit(c *gin.Context) {
	next, err := h.shell.StartProfileEdit(c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStateView(next))
}

// CancelEdit godoc
// @Summary Leave the profile form
// @Tags Profiles
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profiles/cancel [post]
func (h *ProfileHandler) CancelEdit(c *gin.Context) {
	response.OK(c, dto.NewStateView(h.shell.CancelProfileEdit()))
}

// Delete godoc
// @Summary Delete a student and all records
// @Description Requires confirm=true; without it the confirmation prompt is returned with 412
// @Tags Profiles
// @Produce json
// @Param uid path string true "Student UID"
// @Param confirm query bool false "Operator confirmed the deletion"
// @Success 204
// @Failure 412 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /profiles/{uid} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.shell.DeleteStudent(c.Request.Context(), c.Param("uid"), confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Detail godoc
// @Summary Student detail view
// @Tags Profiles
// @Produce json
// @Param uid path string true "Student UID"
// @Param mode query string false "profile_only, admission_only or full"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /profiles/{uid} [get]
func (h *ProfileHandler) Detail(c *gin.Context) {
	detail, err := h.detail.Detail(c.Param("uid"), models.ModalMode(c.Query("mode")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Print godoc
// @Summary Printable student profile
// @Tags Profiles
// @Produce application/pdf
// @Param uid path string true "Student UID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /profiles/{uid}/print [get]
func (h *ProfileHandler) Print(c *gin.Context) {
	if h.printer == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	payload, filename, err := h.printer.DetailPDF(c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, models.ReportFormatPDF.ContentType(), payload)
}
