package models

import "strings"

// AcademicRecord is one class/section/roll assignment for an academic year.
type AcademicRecord struct {
	RecordID     Text   `json:"Record_ID"`
	StudentUID   string `json:"Student_UID"`
	AcademicYear Text   `json:"Academic_Year"`
	ClassName    string `json:"Class_Name"`
	Section      string `json:"Section"`
	RollNo       Text   `json:"Roll_No"`
	Session      string `json:"Session,omitempty"`
	Status       string `json:"Status,omitempty"`
	EntryDate    Text   `json:"Entry_Date"`
}

// Complete reports whether the record has both a class and a roll number.
func (r AcademicRecord) Complete() bool {
	return strings.TrimSpace(r.ClassName) != "" && r.RollNo.Trim() != ""
}

// Enrollment is the canonical year/class/section/roll view of a student.
type Enrollment struct {
	Year      string `json:"year"`
	Class     string `json:"class"`
	Section   string `json:"section"`
	Roll      string `json:"roll"`
	RecordID  string `json:"record_id,omitempty"`
	EntryDate string `json:"entry_date,omitempty"`
}

// EnrollmentFromRecord converts a raw record into its canonical view.
func EnrollmentFromRecord(r AcademicRecord) Enrollment {
	return Enrollment{
		Year:      r.AcademicYear.Trim(),
		Class:     r.ClassName,
		Section:   r.Section,
		Roll:      r.RollNo.Trim(),
		RecordID:  r.RecordID.String(),
		EntryDate: r.EntryDate.String(),
	}
}

// Matches reports whether the enrollment is in the given class and, when set, section.
func (e Enrollment) Matches(class, section string) bool {
	if e.Class != class {
		return false
	}
	return section == "" || e.Section == section
}

// BulkEnrollEntry is one row of a batch enrollment.
type BulkEnrollEntry struct {
	StudentUID   string `json:"Student_UID"`
	AcademicYear string `json:"Academic_Year"`
	ClassName    string `json:"Class_Name"`
	Section      string `json:"Section"`
	RollNo       string `json:"Roll_No"`
}
