package dto

import "github.com/noah-isme/student-records/internal/models"

// DashboardSummary aggregates headline numbers for the current year.
type DashboardSummary struct {
	Year              string              `json:"year"`
	Total             int                 `json:"total"`
	CurrentYear       int                 `json:"current_year"`
	NewAdmissions     int                 `json:"new_admissions"`
	Active            int                 `json:"active"`
	Classes           int                 `json:"classes"`
	ClassDistribution []ClassShare        `json:"class_distribution"`
	Gender            GenderBreakdown     `json:"gender"`
	Recent            []RecentStudentItem `json:"recent"`
}

// ClassShare is the current-year headcount of a class.
type ClassShare struct {
	Class      string  `json:"class"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GenderBreakdown counts current-year students by gender.
type GenderBreakdown struct {
	Female int `json:"female"`
	Male   int `json:"male"`
}

// RecentStudentItem is a recently created profile.
type RecentStudentItem struct {
	StudentUID       string      `json:"Student_UID"`
	NameBangla       string      `json:"Name_Bangla"`
	ClassName        string      `json:"Class_Name,omitempty"`
	ProfileCreatedAt models.Text `json:"Profile_Created_At"`
}
