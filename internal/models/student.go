package models

import (
	"sort"
	"strings"
)

// StudentStatus is the lifecycle status of a profile.
type StudentStatus string

// Possible profile statuses.
const (
	StudentStatusActive    StudentStatus = "Active"
	StudentStatusTC        StudentStatus = "TC"
	StudentStatusGraduated StudentStatus = "Graduated"
)

// StudentProfile is a student's biographical record. JSON names follow the backend columns.
type StudentProfile struct {
	StudentUID       string        `json:"Student_UID"`
	FormNo           Text          `json:"Form_No"`
	RegNo            Text          `json:"Reg_No"`
	NameBangla       string        `json:"Name_Bangla"`
	NameEnglish      string        `json:"Name_English"`
	BirthRegNo       Text          `json:"Birth_Reg_No"`
	DOB              Text          `json:"DOB"`
	DOBDay           Text          `json:"DOB_Day"`
	DOBMonth         Text          `json:"DOB_Month"`
	DOBYear          Text          `json:"DOB_Year"`
	Gender           string        `json:"Gender"`
	FatherNameBN     string        `json:"Father_Name_BN"`
	FatherNameEN     string        `json:"Father_Name_EN"`
	FatherNID        Text          `json:"Father_NID"`
	MotherNameBN     string        `json:"Mother_Name_BN"`
	MotherNameEN     string        `json:"Mother_Name_EN"`
	MotherNID        Text          `json:"Mother_NID"`
	MobilePrimary    Text          `json:"Mobile_Primary"`
	MobileOptional   Text          `json:"Mobile_Optional"`
	Village          string        `json:"Village"`
	UnionPost        string        `json:"Union_Post"`
	Upazila          string        `json:"Upazila"`
	District         string        `json:"District"`
	PhotoURL         string        `json:"Photo_URL"`
	CurrentStatus    StudentStatus `json:"Current_Status"`
	ProfileCreatedAt Text          `json:"Profile_Created_At"`
}

// StudentData is a profile merged with its latest or selected academic record.
// Enrollments and Current are resolved once by the gateway from the flat fields and History.
type StudentData struct {
	StudentProfile

	AcademicYear Text             `json:"Academic_Year,omitempty"`
	ClassName    string           `json:"Class_Name,omitempty"`
	Section      string           `json:"Section,omitempty"`
	RollNo       Text             `json:"Roll_No,omitempty"`
	Session      string           `json:"Session,omitempty"`
	EntryDate    Text             `json:"Entry_Date,omitempty"`
	RecordID     Text             `json:"Record_ID,omitempty"`
	History      []AcademicRecord `json:"History,omitempty"`

	Enrollments map[string]Enrollment `json:"enrollments,omitempty"`
	Current     *Enrollment           `json:"current,omitempty"`
}

// FlatRecord returns the record merged onto the student, if any.
func (s StudentData) FlatRecord() (AcademicRecord, bool) {
	if s.AcademicYear.Trim() == "" && s.ClassName == "" {
		return AcademicRecord{}, false
	}
	return AcademicRecord{
		RecordID:     s.RecordID,
		StudentUID:   s.StudentUID,
		AcademicYear: s.AcademicYear,
		ClassName:    s.ClassName,
		Section:      s.Section,
		RollNo:       s.RollNo,
		Session:      s.Session,
		EntryDate:    s.EntryDate,
	}, true
}

// LatestRecord returns the history entry with the greatest academic year,
// falling back to the flat record when there is no history.
func (s StudentData) LatestRecord() (AcademicRecord, bool) {
	if len(s.History) == 0 {
		if s.ClassName == "" {
			return AcademicRecord{}, false
		}
		return s.FlatRecord()
	}
	history := make([]AcademicRecord, len(s.History))
	copy(history, s.History)
	sort.SliceStable(history, func(i, j int) bool {
		return strings.Compare(history[i].AcademicYear.Trim(), history[j].AcademicYear.Trim()) > 0
	})
	return history[0], true
}

// EnrollmentFor returns the resolved enrollment for an academic year.
func (s StudentData) EnrollmentFor(year string) (Enrollment, bool) {
	e, ok := s.Enrollments[strings.TrimSpace(year)]
	return e, ok
}

// UIDYear returns the year prefix and numeric sequence of a UID such as 2025-001.
func UIDYear(uid string) (year string, seq int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(uid), "-", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", 0, false
	}
	seqText := Text(parts[1])
	if seqText.Trim() == "" || seqText.Trim()[0] < '0' || seqText.Trim()[0] > '9' {
		return parts[0], 0, false
	}
	return parts[0], seqText.Int(), true
}
