package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/service"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/response"
)

type finalLister interface {
	Final(ctx context.Context, query dto.ListQuery) []models.StudentData
	DefaultYear(query dto.ListQuery) string
}

type reportService interface {
	Columns() []dto.ReportColumn
	Preview(req dto.CustomReportRequest) (*dto.CustomReportPreview, error)
	ExportCustom(req dto.CustomReportRequest) (*dto.ExportResponse, error)
	FinalListPDF(ctx context.Context, query dto.ListQuery) ([]byte, string, error)
}

type downloadResolver interface {
	ResolveDownload(token string) (*service.ExportDownload, error)
}

// ReportHandler serves the final list, the custom report builder and export downloads.
type ReportHandler struct {
	lists   finalLister
	reports reportService
	exports downloadResolver
}

// NewReportHandler constructs the handler.
func NewReportHandler(lists finalLister, reports reportService, exports downloadResolver) *ReportHandler {
	return &ReportHandler{lists: lists, reports: reports, exports: exports}
}

// Final godoc
// @Summary Final list of enrolled students
// @Description Sorted by class order then numeric roll
// @Tags Reports
// @Produce json
// @Param year query string false "Academic year"
// @Param class query string false "Class"
// @Param section query string false "Section"
// @Success 200 {object} response.Envelope
// @Router /reports/final [get]
func (h *ReportHandler) Final(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	students := h.lists.Final(c.Request.Context(), query)
	response.OK(c, students, map[string]interface{}{
		"total": len(students),
		"year":  h.lists.DefaultYear(query),
	})
}

// FinalPrint godoc
// @Summary Printable final list
// @Tags Reports
// @Produce application/pdf
// @Param year query string false "Academic year"
// @Param class query string false "Class"
// @Param section query string false "Section"
// @Success 200 {file} binary
// @Failure 422 {object} response.Envelope
// @Router /reports/final/print [get]
func (h *ReportHandler) FinalPrint(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	payload, filename, err := h.reports.FinalListPDF(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, models.ReportFormatPDF.ContentType(), payload)
}

// Columns godoc
// @Summary Exportable custom report columns
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/custom/columns [get]
func (h *ReportHandler) Columns(c *gin.Context) {
	response.OK(c, h.reports.Columns())
}

// Preview godoc
// @Summary Preview a custom report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.CustomReportRequest true "Cohort and ordered columns"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/custom/preview [post]
func (h *ReportHandler) Preview(c *gin.Context) {
	var req dto.CustomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}
	preview, err := h.reports.Preview(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, preview)
}

// Export godoc
// @Summary Export a custom report
// @Description Renders the report and returns a signed download link
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.CustomReportRequest true "Cohort, ordered columns and format"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /reports/custom/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var req dto.CustomReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}
	result, err := h.reports.ExportCustom(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download a rendered report
// @Tags Reports
// @Produce application/octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /export/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	download, err := h.exports.ResolveDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(download.Filename)))
	c.Header("Content-Type", download.Format.ContentType())
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, download.File)
}
