package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
	"github.com/noah-isme/student-records/pkg/export"
)

const (
	msgNoExportData   = "এক্সপোর্ট করার জন্য কোনো ডাটা পাওয়া যায়নি।"
	reportSheet       = "Report"
	previewRowLimit   = 5
	serialColumn      = "Serial_No"
	finalListTitleFmt = "ফাইনাল শিক্ষার্থী তালিকা - %s সেশন"
)

// reportColumns is the exportable column catalog in display order.
var reportColumns = []dto.ReportColumn{
	{Key: "Serial_No", Heading: "ক্রমিক নং"},
	{Key: "Roll_No", Heading: "রোল নং"},
	{Key: "Student_UID", Heading: "আইডি (UID)"},
	{Key: "Name_Bangla", Heading: "শিক্ষার্থীর নাম (বাংলা)"},
	{Key: "Name_English", Heading: "নাম (ইংরেজি)"},
	{Key: "Father_Name_BN", Heading: "পিতার নাম"},
	{Key: "Mother_Name_BN", Heading: "মাতার নাম"},
	{Key: "DOB", Heading: "জন্ম তারিখ"},
	{Key: "Gender", Heading: "লিঙ্গ"},
	{Key: "Mobile_Primary", Heading: "মোবাইল"},
	{Key: "Village", Heading: "গ্রাম"},
	{Key: "Union_Post", Heading: "ইউনিয়ন/ডাকঘর"},
	{Key: "Upazila", Heading: "উপজেলা"},
	{Key: "District", Heading: "জেলা"},
	{Key: "Form_No", Heading: "ফরম নম্বর"},
	{Key: "Birth_Reg_No", Heading: "জন্ম নিবন্ধন"},
	{Key: "Current_Status", Heading: "অবস্থা"},
}

// DefaultReportColumns are preselected on the custom report screen.
var DefaultReportColumns = []string{"Serial_No", "Roll_No", "Student_UID", "Name_Bangla", "Mobile_Primary"}

type tableRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type sheetRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

type printRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderDocument(doc export.Document) ([]byte, error)
}

type finalLister interface {
	Final(ctx context.Context, query dto.ListQuery) []models.StudentData
	DefaultYear(query dto.ListQuery) string
}

type exportRecorder interface {
	RecordExport(format string)
}

type exportStore interface {
	Store(filename string, format models.ReportFormat, payload []byte) (*ExportResult, error)
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Source    studentSource
	Finder    studentFinder
	Lists     finalLister
	Exports   exportStore
	CSV       tableRenderer
	XLSX      sheetRenderer
	PDF       printRenderer
	Metrics   exportRecorder
	Validator *validator.Validate
	Logger    *zap.Logger
}

// ReportService builds the custom column report and the printable documents.
type ReportService struct {
	source    studentSource
	finder    studentFinder
	lists     finalLister
	exports   exportStore
	csv       tableRenderer
	xlsx      sheetRenderer
	pdf       printRenderer
	metrics   exportRecorder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(params ReportServiceParams) *ReportService {
	svc := &ReportService{
		source:    params.Source,
		finder:    params.Finder,
		lists:     params.Lists,
		exports:   params.Exports,
		csv:       params.CSV,
		xlsx:      params.XLSX,
		pdf:       params.PDF,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		now:       time.Now,
	}
	if svc.csv == nil {
		svc.csv = export.NewCSVExporter()
	}
	if svc.xlsx == nil {
		svc.xlsx = export.NewXLSXExporter()
	}
	if svc.pdf == nil {
		svc.pdf = export.NewPDFExporter("")
	}
	if svc.validator == nil {
		svc.validator = NewValidator()
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// Columns returns the column catalog.
func (s *ReportService) Columns() []dto.ReportColumn {
	out := make([]dto.ReportColumn, len(reportColumns))
	copy(out, reportColumns)
	return out
}

// CustomRows returns the students of class enrolled in year, ordered by numeric roll.
func (s *ReportService) CustomRows(year, class string) []models.StudentData {
	year = strings.TrimSpace(year)
	out := make([]models.StudentData, 0)
	if class == "" {
		return out
	}
	for _, student := range s.source.Students() {
		current := currentEnrollment(student)
		if current.Year == year && current.Class == class {
			out = append(out, student)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return models.Text(currentEnrollment(out[i]).Roll).Int() < models.Text(currentEnrollment(out[j]).Roll).Int()
	})
	return out
}

// Preview renders the first rows of a custom report.
func (s *ReportService) Preview(req dto.CustomReportRequest) (*dto.CustomReportPreview, error) {
	req, columns, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	rows := s.CustomRows(req.Year, req.Class)
	limited := rows
	if len(limited) > previewRowLimit {
		limited = limited[:previewRowLimit]
	}
	dataset := BuildCustomDataset(limited, columns)
	return &dto.CustomReportPreview{Headers: dataset.Headers, Rows: dataset.Rows, Total: len(rows)}, nil
}

// ExportCustom renders the full custom report and stores it for download.
func (s *ReportService) ExportCustom(req dto.CustomReportRequest) (*dto.ExportResponse, error) {
	req, columns, err := s.prepare(req)
	if err != nil {
		return nil, err
	}
	format := models.ReportFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == "" {
		format = models.ReportFormatXLSX
	}
	if format != models.ReportFormatXLSX && format != models.ReportFormatCSV {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be xlsx or csv")
	}

	rows := s.CustomRows(req.Year, req.Class)
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoData, msgNoExportData)
	}
	dataset := BuildCustomDataset(rows, columns)

	var payload []byte
	switch format {
	case models.ReportFormatCSV:
		payload, err = s.csv.Render(dataset)
	default:
		payload, err = s.xlsx.Render(dataset, reportSheet)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	filename := fmt.Sprintf("Report_%s_%s.%s", req.Class, req.Year, format)
	result, err := s.exports.Store(filename, format, payload)
	if err != nil {
		return nil, err
	}
	s.recordExport(format)
	s.logger.Info("custom report exported",
		zap.String("class", req.Class),
		zap.String("year", req.Year),
		zap.Int("rows", len(rows)),
		zap.String("format", string(format)),
	)
	return &dto.ExportResponse{
		Filename:  filename,
		URL:       result.URL,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		Rows:      len(rows),
	}, nil
}

// FinalListPDF prints the final list for the query. It returns the document and its filename.
func (s *ReportService) FinalListPDF(ctx context.Context, query dto.ListQuery) ([]byte, string, error) {
	year := s.lists.DefaultYear(query)
	query.Year = year
	students := s.lists.Final(ctx, query)
	if len(students) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrNoData, msgNoExportData)
	}

	headers := []string{"ক্রমিক নং", "রোল নং", "আইডি (UID)", "শিক্ষার্থীর নাম (বাংলা)", "শ্রেণী", "শাখা", "পিতার নাম", "মোবাইল"}
	rows := make([]map[string]string, 0, len(students))
	for i, student := range students {
		current := currentEnrollment(student)
		rows = append(rows, map[string]string{
			headers[0]: strconv.Itoa(i + 1),
			headers[1]: orMissing(current.Roll),
			headers[2]: orMissing(student.StudentUID),
			headers[3]: orMissing(student.NameBangla),
			headers[4]: orMissing(current.Class),
			headers[5]: orMissing(current.Section),
			headers[6]: orMissing(student.FatherNameBN),
			headers[7]: orMissing(student.MobilePrimary.String()),
		})
	}
	title := InstitutionName + " - " + fmt.Sprintf(finalListTitleFmt, year)
	payload, err := s.pdf.Render(export.Dataset{Headers: headers, Rows: rows}, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render final list")
	}
	s.recordExport(models.ReportFormatPDF)
	return payload, fmt.Sprintf("Final_List_%s.pdf", year), nil
}

// DetailPDF prints the full detail sheet of one student.
func (s *ReportService) DetailPDF(uid string) ([]byte, string, error) {
	student, err := s.finder.FindStudent(uid)
	if err != nil {
		return nil, "", err
	}
	detail := BuildStudentDetail(student, models.ModalFull)
	doc := export.Document{
		Title:    InstitutionName,
		Subtitle: "শিক্ষার্থী প্রোফাইল নথিপত্র | Student UID: " + student.StudentUID,
	}
	for _, section := range detail.Sections {
		out := export.DocumentSection{Heading: section.Heading}
		for _, f := range section.Fields {
			out.Fields = append(out.Fields, export.DocumentField{Label: f.Label, Value: f.Value})
		}
		doc.Sections = append(doc.Sections, out)
	}
	payload, err := s.pdf.RenderDocument(doc)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render detail sheet")
	}
	s.recordExport(models.ReportFormatPDF)
	return payload, fmt.Sprintf("Student_%s.pdf", student.StudentUID), nil
}

func (s *ReportService) recordExport(format models.ReportFormat) {
	if s.metrics != nil {
		s.metrics.RecordExport(string(format))
	}
}

// prepare validates the request and resolves its columns, defaulting year and columns.
func (s *ReportService) prepare(req dto.CustomReportRequest) (dto.CustomReportRequest, []dto.ReportColumn, error) {
	req.Class = strings.TrimSpace(req.Class)
	req.Year = strings.TrimSpace(req.Year)
	if req.Year == "" {
		req.Year = fmt.Sprintf("%d", s.now().Year())
	}
	if err := s.validator.Struct(req); err != nil {
		return req, nil, validationError(err, "invalid report request")
	}
	keys := req.Columns
	if len(keys) == 0 {
		keys = DefaultReportColumns
	}
	columns, err := ResolveColumns(keys)
	if err != nil {
		return req, nil, err
	}
	return req, columns, nil
}

// ResolveColumns maps column keys to catalog entries, keeping the given order.
func ResolveColumns(keys []string) ([]dto.ReportColumn, error) {
	out := make([]dto.ReportColumn, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		col, ok := lookupColumn(key)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown report column %q", key))
		}
		seen[key] = struct{}{}
		out = append(out, col)
	}
	return out, nil
}

// ToggleColumn adds key at the end of selected or removes it when present.
func ToggleColumn(selected []string, key string) []string {
	out := make([]string, 0, len(selected)+1)
	removed := false
	for _, k := range selected {
		if k == key {
			removed = true
			continue
		}
		out = append(out, k)
	}
	if !removed {
		out = append(out, key)
	}
	return out
}

// MoveColumn swaps the column at index with its neighbour; out of range moves are ignored.
func MoveColumn(selected []string, index int, up bool) []string {
	out := append([]string(nil), selected...)
	target := index + 1
	if up {
		target = index - 1
	}
	if index < 0 || index >= len(out) || target < 0 || target >= len(out) {
		return out
	}
	out[index], out[target] = out[target], out[index]
	return out
}

// BuildCustomDataset lays out students under the headings of columns.
// Serial_No is the 1-based row position; missing values render as ---.
func BuildCustomDataset(students []models.StudentData, columns []dto.ReportColumn) export.Dataset {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Heading
	}
	rows := make([]map[string]string, 0, len(students))
	for i, student := range students {
		row := make(map[string]string, len(columns))
		for _, col := range columns {
			if col.Key == serialColumn {
				row[col.Heading] = strconv.Itoa(i + 1)
				continue
			}
			row[col.Heading] = orMissing(columnValue(student, col.Key))
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func lookupColumn(key string) (dto.ReportColumn, bool) {
	for _, col := range reportColumns {
		if col.Key == key {
			return col, true
		}
	}
	return dto.ReportColumn{}, false
}

func columnValue(s models.StudentData, key string) string {
	switch key {
	case "Roll_No":
		return currentEnrollment(s).Roll
	case "Student_UID":
		return s.StudentUID
	case "Name_Bangla":
		return s.NameBangla
	case "Name_English":
		return s.NameEnglish
	case "Father_Name_BN":
		return s.FatherNameBN
	case "Mother_Name_BN":
		return s.MotherNameBN
	case "DOB":
		return s.DOB.String()
	case "Gender":
		return s.Gender
	case "Mobile_Primary":
		return s.MobilePrimary.String()
	case "Village":
		return s.Village
	case "Union_Post":
		return s.UnionPost
	case "Upazila":
		return s.Upazila
	case "District":
		return s.District
	case "Form_No":
		return s.FormNo.String()
	case "Birth_Reg_No":
		return s.BirthRegNo.String()
	case "Current_Status":
		return string(s.CurrentStatus)
	}
	return ""
}

func orMissing(v string) string {
	if strings.TrimSpace(v) == "" {
		return missingValue
	}
	return v
}
