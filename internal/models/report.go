package models

// ReportFormat enumerates supported export formats.
type ReportFormat string

// Export formats.
const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatPDF  ReportFormat = "pdf"
)

// ContentType returns the MIME type served for the format.
func (f ReportFormat) ContentType() string {
	switch f {
	case ReportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ReportFormatCSV:
		return "text/csv; charset=utf-8"
	case ReportFormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}
