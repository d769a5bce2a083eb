package dto

import "github.com/noah-isme/student-records/internal/models"

// EnrollmentInput is the enrollment form payload.
type EnrollmentInput struct {
	StudentUID   string      `json:"Student_UID" validate:"required"`
	RecordID     models.Text `json:"Record_ID"`
	AcademicYear models.Text `json:"Academic_Year"`
	ClassName    string      `json:"Class_Name" validate:"required"`
	Section      string      `json:"Section"`
	RollNo       models.Text `json:"Roll_No" validate:"required"`
	EntryDate    models.Text `json:"Entry_Date"`
}

// EnrollmentForm is the prefilled enrollment form. Pending is only set in create mode.
type EnrollmentForm struct {
	Mode    string                `json:"mode"`
	Year    string                `json:"year"`
	Record  models.AcademicRecord `json:"record"`
	Profile *models.StudentData   `json:"profile,omitempty"`
	Pending []models.StudentData  `json:"pending,omitempty"`
}

// ListQuery filters the admitted and final lists.
type ListQuery struct {
	Year    string `form:"year"`
	Search  string `form:"search"`
	Class   string `form:"class"`
	Section string `form:"section"`
}
