package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

func TestFormatBanglaDate(t *testing.T) {
	assert.Equal(t, "৫ মার্চ, ২০২৫", FormatBanglaDate("2025-03-05"))
	assert.Equal(t, "১৫ জানুয়ারি, ২০২৪", FormatBanglaDate("2024-01-15T08:00:00Z"))
	assert.Equal(t, "৫ মার্চ, ২০১৪", FormatBanglaDate("05/03/2014"))
	assert.Equal(t, missingValue, FormatBanglaDate(""))
	assert.Equal(t, missingValue, FormatBanglaDate("undefined"))
	assert.Equal(t, "soon", FormatBanglaDate("soon"))
}

func TestFormatDOB(t *testing.T) {
	assert.Equal(t, "05 মার্চ, 2014", FormatDOB(models.StudentProfile{DOBDay: "5", DOBMonth: "3", DOBYear: "2014"}))
	assert.Equal(t, "২৫ ডিসেম্বর, ২০১৩", FormatDOB(models.StudentProfile{DOB: "2013-12-25"}))
	assert.Equal(t, missingValue, FormatDOB(models.StudentProfile{DOBDay: "---", DOBMonth: "3", DOBYear: "2014"}))
}

func findField(sections []dto.DetailSection, label string) (string, bool) {
	for _, section := range sections {
		for _, f := range section.Fields {
			if f.Label == label {
				return f.Value, true
			}
		}
	}
	return "", false
}

func TestBuildStudentDetailModes(t *testing.T) {
	student := historyStudent("2024-007", "রহিমা",
		models.AcademicRecord{StudentUID: "2024-007", AcademicYear: "2024", ClassName: "ইবতেদায়ী পঞ্চম", RollNo: "3", EntryDate: "2024-01-02"},
		models.AcademicRecord{StudentUID: "2024-007", AcademicYear: "2025", ClassName: classSix, Section: "বালিকা", RollNo: "7", EntryDate: "2025-01-05"},
	)
	student.NameEnglish = "rahima"
	student.Gender = genderFemale

	full := BuildStudentDetail(student, models.ModalFull)
	require.Len(t, full.Sections, 4)
	require.NotNil(t, full.LatestRecord)
	assert.Equal(t, classSix, full.LatestRecord.ClassName)
	value, ok := findField(full.Sections, "বর্তমান শ্রেণী")
	require.True(t, ok)
	assert.Equal(t, classSix, value)
	value, _ = findField(full.Sections, "নাম (ইংরেজিতে)")
	assert.Equal(t, "RAHIMA", value)
	value, _ = findField(full.Sections, "পিতার নাম (বাংলা)")
	assert.Equal(t, missingValue, value)

	compact := BuildStudentDetail(student, models.ModalProfileOnly)
	value, ok = findField(compact.Sections, "সর্বশেষ ভর্তি")
	require.True(t, ok)
	assert.Equal(t, "৫ জানুয়ারি, ২০২৫", value)
	value, _ = findField(compact.Sections, "বর্তমান অবস্থা")
	assert.Equal(t, "সক্রিয়", value)

	assert.Equal(t, compact.Sections, BuildStudentDetail(student, models.ModalAdmissionOnly).Sections)
}

func TestDetailServiceDetail(t *testing.T) {
	gw := newFakeGateway()
	gw.students = []models.StudentData{flatStudent("2025-001", "রহিম", "2025", classSix, "বালক", "1")}
	svc := NewDetailService(newTestShell(gw))

	detail, err := svc.Detail("2025-001", "")
	require.NoError(t, err)
	assert.Equal(t, models.ModalFull, detail.Mode)

	_, err = svc.Detail("2025-001", models.ModalMode("sideways"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Detail("2099-001", models.ModalProfileOnly)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
