package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

const (
	entryDateLayout       = "2006-01-02"
	msgEnrollmentRequired = "দয়া করে সকল প্রয়োজনীয় তথ্য প্রদান করুন।"
)

type enrollmentShell interface {
	State() state.AppState
	FindStudent(uid string) (models.StudentData, error)
	EnrollRecord(ctx context.Context, record models.AcademicRecord) error
	UpdateRecord(ctx context.Context, record models.AcademicRecord) error
}

type pendingReader interface {
	GetPending(ctx context.Context, year string) []models.StudentData
}

// EnrollmentFormService prepares and submits the academic enrollment form.
type EnrollmentFormService struct {
	shell     enrollmentShell
	pending   pendingReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentFormService constructs the enrollment form service.
func NewEnrollmentFormService(shell enrollmentShell, pending pendingReader, validate *validator.Validate, logger *zap.Logger) *EnrollmentFormService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentFormService{shell: shell, pending: pending, validator: validate, logger: logger, now: time.Now}
}

func (s *EnrollmentFormService) currentYear() string {
	return fmt.Sprintf("%d", s.now().Year())
}

// Pending lists current-year profiles that have no record yet.
func (s *EnrollmentFormService) Pending(ctx context.Context) []models.StudentData {
	return s.pending.GetPending(ctx, s.currentYear())
}

// Form returns the edit form when a record is targeted, otherwise a blank form with the pending pool.
func (s *EnrollmentFormService) Form(ctx context.Context) dto.EnrollmentForm {
	year := s.currentYear()
	if editing := s.shell.State().EditingRecord; editing != nil {
		form := dto.EnrollmentForm{Mode: FormModeEdit, Year: editing.AcademicYear.Trim(), Record: *editing}
		if student, err := s.shell.FindStudent(editing.StudentUID); err == nil {
			form.Profile = &student
		}
		return form
	}
	return dto.EnrollmentForm{
		Mode:    FormModeCreate,
		Year:    year,
		Record:  models.AcademicRecord{AcademicYear: models.Text(year)},
		Pending: s.Pending(ctx),
	}
}

// Enroll creates a current-year record dated today.
func (s *EnrollmentFormService) Enroll(ctx context.Context, input dto.EnrollmentInput) (models.AcademicRecord, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.AcademicRecord{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgEnrollmentRequired)
	}
	now := s.now()
	uid := strings.TrimSpace(input.StudentUID)
	record := models.AcademicRecord{
		RecordID:     models.Text(fmt.Sprintf("REC_%d_%s", now.UnixMilli(), uid)),
		StudentUID:   uid,
		AcademicYear: models.Text(fmt.Sprintf("%d", now.Year())),
		ClassName:    strings.TrimSpace(input.ClassName),
		Section:      strings.TrimSpace(input.Section),
		RollNo:       models.Text(input.RollNo.Trim()),
		EntryDate:    models.Text(now.Format(entryDateLayout)),
	}
	if err := s.shell.EnrollRecord(ctx, record); err != nil {
		return models.AcademicRecord{}, err
	}
	return record, nil
}

// Update rewrites a student's record, keeping its identifier, year and entry date.
func (s *EnrollmentFormService) Update(ctx context.Context, uid string, input dto.EnrollmentInput) (models.AcademicRecord, error) {
	input.StudentUID = uid
	if err := s.validator.Struct(input); err != nil {
		return models.AcademicRecord{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msgEnrollmentRequired)
	}
	base := s.editBase(uid)

	record := models.AcademicRecord{
		RecordID:     firstText(input.RecordID, base.RecordID),
		StudentUID:   strings.TrimSpace(uid),
		AcademicYear: firstText(input.AcademicYear, base.AcademicYear, models.Text(s.currentYear())),
		ClassName:    strings.TrimSpace(input.ClassName),
		Section:      strings.TrimSpace(input.Section),
		RollNo:       models.Text(input.RollNo.Trim()),
		EntryDate:    firstText(input.EntryDate, base.EntryDate, models.Text(s.now().Format(entryDateLayout))),
	}
	if err := s.shell.UpdateRecord(ctx, record); err != nil {
		return models.AcademicRecord{}, err
	}
	return record, nil
}

// editBase returns the targeted record for uid, or the student's merged record.
func (s *EnrollmentFormService) editBase(uid string) models.AcademicRecord {
	if editing := s.shell.State().EditingRecord; editing != nil && editing.StudentUID == strings.TrimSpace(uid) {
		return *editing
	}
	student, err := s.shell.FindStudent(uid)
	if err != nil {
		return models.AcademicRecord{}
	}
	record, _ := student.FlatRecord()
	return record
}

func firstText(values ...models.Text) models.Text {
	for _, v := range values {
		if v.Trim() != "" {
			return models.Text(v.Trim())
		}
	}
	return ""
}
