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

type admittedLister interface {
	Admitted(ctx context.Context, query dto.ListQuery) []models.StudentData
	DefaultYear(query dto.ListQuery) string
}

type enrollmentForm interface {
	Pending(ctx context.Context) []models.StudentData
	Form(ctx context.Context) dto.EnrollmentForm
	Enroll(ctx context.Context, input dto.EnrollmentInput) (models.AcademicRecord, error)
	Update(ctx context.Context, uid string, input dto.EnrollmentInput) (models.AcademicRecord, error)
}

type enrollmentShell interface {
	StartRecordEdit(uid string) (state.AppState, error)
	CancelRecordEdit() state.AppState
}

// EnrollmentHandler exposes the admission entry form and the admitted list.
type EnrollmentHandler struct {
	list  admittedLister
	form  enrollmentForm
	shell enrollmentShell
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(list admittedLister, form enrollmentForm, shell enrollmentShell) *EnrollmentHandler {
	return &EnrollmentHandler{list: list, form: form, shell: shell}
}

// List godoc
// @Summary Admitted students of a year
// @Tags Enrollments
// @Produce json
// @Param year query string false "Academic year, defaults to the current year"
// @Param search query string false "Name or UID"
// @Param class query string false "Class"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	students := h.list.Admitted(c.Request.Context(), query)
	response.OK(c, students, map[string]interface{}{
		"total": len(students),
		"year":  h.list.DefaultYear(query),
	})
}

// Pending godoc
// @Summary Profiles without an enrollment this year
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/pending [get]
func (h *EnrollmentHandler) Pending(c *gin.Context) {
	pending := h.form.Pending(c.Request.Context())
	response.OK(c, pending, map[string]interface{}{"total": len(pending)})
}

// Form godoc
// @Summary Prefilled enrollment form
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/form [get]
func (h *EnrollmentHandler) Form(c *gin.Context) {
	response.OK(c, h.form.Form(c.Request.Context()))
}

// Create godoc
// @Summary Enroll a student for the current year
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.EnrollmentInput true "Enrollment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req dto.EnrollmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}
	record, err := h.form.Enroll(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update the current enrollment of a student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param uid path string true "Student UID"
// @Param payload body dto.EnrollmentInput true "Enrollment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollments/{uid} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	var req dto.EnrollmentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}
	record, err := h.form.Update(c.Request.Context(), c.Param("uid"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// StartEdit godoc
// @Summary Target an enrollment for editing
// @Tags Enrollments
// @Produce json
// @Param uid path string true "Student UID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{uid}/edit [post]
func (h *EnrollmentHandler) StartEdit(c *gin.Context) {
	next, err := h.shell.StartRecordEdit(c.Param("uid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewStateView(next))
}

// CancelEdit godoc
// @Summary Leave the enrollment form
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments/cancel [post]
func (h *EnrollmentHandler) CancelEdit(c *gin.Context) {
	response.OK(c, dto.NewStateView(h.shell.CancelRecordEdit()))
}
