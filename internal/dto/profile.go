package dto

import "github.com/noah-isme/student-records/internal/models"

// ProfileInput is the profile form payload. Column names follow the backend.
type ProfileInput struct {
	FormNo         models.Text          `json:"Form_No" validate:"required"`
	RegNo          models.Text          `json:"Reg_No"`
	NameBangla     string               `json:"Name_Bangla" validate:"required"`
	NameEnglish    string               `json:"Name_English" validate:"required"`
	BirthRegNo     models.Text          `json:"Birth_Reg_No"`
	DOBDay         models.Text          `json:"DOB_Day" validate:"required"`
	DOBMonth       models.Text          `json:"DOB_Month" validate:"required"`
	DOBYear        models.Text          `json:"DOB_Year" validate:"required"`
	Gender         string               `json:"Gender"`
	FatherNameBN   string               `json:"Father_Name_BN" validate:"required"`
	FatherNameEN   string               `json:"Father_Name_EN"`
	FatherNID      models.Text          `json:"Father_NID"`
	MotherNameBN   string               `json:"Mother_Name_BN" validate:"required"`
	MotherNameEN   string               `json:"Mother_Name_EN"`
	MotherNID      models.Text          `json:"Mother_NID"`
	MobilePrimary  models.Text          `json:"Mobile_Primary" validate:"required"`
	MobileOptional models.Text          `json:"Mobile_Optional"`
	Village        string               `json:"Village"`
	UnionPost      string               `json:"Union_Post"`
	Upazila        string               `json:"Upazila"`
	District       string               `json:"District"`
	PhotoURL       string               `json:"Photo_URL"`
	CurrentStatus  models.StudentStatus `json:"Current_Status" validate:"omitempty,oneof=Active TC Graduated"`
}

// ProfileForm is the prefilled profile form. Mode is "create" or "edit".
type ProfileForm struct {
	Mode    string                `json:"mode"`
	Profile models.StudentProfile `json:"profile"`
}

// ProfileListQuery filters the profile list.
type ProfileListQuery struct {
	Search string `form:"search"`
	Class  string `form:"class"`
}

// StudentDetail is the detail view of one student.
type StudentDetail struct {
	Mode         models.ModalMode       `json:"mode"`
	Student      models.StudentData     `json:"student"`
	LatestRecord *models.AcademicRecord `json:"latest_record,omitempty"`
	Sections     []DetailSection        `json:"sections"`
}

// DetailSection groups labelled values of the detail view.
type DetailSection struct {
	Heading string        `json:"heading"`
	Fields  []DetailField `json:"fields"`
}

// DetailField is one labelled value, already formatted for display.
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
