package dto

// ReportColumn is an exportable column with its display heading.
type ReportColumn struct {
	Key     string `json:"key"`
	Heading string `json:"heading"`
}

// CustomReportRequest selects the cohort and ordered columns of a custom report.
type CustomReportRequest struct {
	Year    string   `json:"year"`
	Class   string   `json:"class" validate:"required"`
	Columns []string `json:"columns"`
	Format  string   `json:"format"`
}

// CustomReportPreview shows the first rows of a custom report.
type CustomReportPreview struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

// ExportResponse points at a rendered report file.
type ExportResponse struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
	Rows      int    `json:"rows"`
}
