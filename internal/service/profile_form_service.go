package service

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
)

// Form modes.
const (
	FormModeCreate = "create"
	FormModeEdit   = "edit"
)

// New-profile defaults.
const (
	defaultGender   = "Female"
	defaultVillage  = "উত্তর ঝাপুয়া"
	defaultUnion    = "কালারমারছড়া"
	defaultUpazila  = "মহেশখালী"
	defaultDistrict = "কক্সবাজার"
	defaultPhotoURL = "https://ui-avatars.com/api/?background=random&name=Student"
)

var (
	nonDigits    = regexp.MustCompile(`\D`)
	dobSeparator = regexp.MustCompile(`[-/T. ]`)
	textPolicy   = bluemonday.StrictPolicy()
)

type profileShell interface {
	State() state.AppState
	Students() []models.StudentData
	FindStudent(uid string) (models.StudentData, error)
	CreateProfile(ctx context.Context, profile models.StudentProfile) error
	UpdateProfile(ctx context.Context, profile models.StudentProfile) error
}

// ProfileFormService prepares and submits the profile intake form.
type ProfileFormService struct {
	shell     profileShell
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileFormService constructs the profile form service.
func NewProfileFormService(shell profileShell, validate *validator.Validate, logger *zap.Logger) *ProfileFormService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileFormService{shell: shell, validator: validate, logger: logger, now: time.Now}
}

// Form returns the edit form when a profile is targeted, otherwise a blank form with the next UID.
func (s *ProfileFormService) Form() dto.ProfileForm {
	if editing := s.shell.State().EditingProfile; editing != nil {
		profile := editing.StudentProfile
		profile.DOBDay, profile.DOBMonth, profile.DOBYear = splitDOB(profile)
		return dto.ProfileForm{Mode: FormModeEdit, Profile: profile}
	}
	year := fmt.Sprintf("%d", s.now().Year())
	return dto.ProfileForm{
		Mode: FormModeCreate,
		Profile: models.StudentProfile{
			StudentUID:    NextStudentUID(s.shell.Students(), year),
			Gender:        defaultGender,
			Village:       defaultVillage,
			UnionPost:     defaultUnion,
			Upazila:       defaultUpazila,
			District:      defaultDistrict,
			PhotoURL:      defaultPhotoURL,
			CurrentStatus: models.StudentStatusActive,
		},
	}
}

// Create assigns the next UID of the current year and submits a new profile.
func (s *ProfileFormService) Create(ctx context.Context, input dto.ProfileInput) (models.StudentProfile, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.StudentProfile{}, validationError(err, "invalid profile payload")
	}
	now := s.now()
	uid := NextStudentUID(s.shell.Students(), fmt.Sprintf("%d", now.Year()))
	profile := buildProfile(input, uid)
	profile.ProfileCreatedAt = models.Text(now.UTC().Format(time.RFC3339))

	if err := s.shell.CreateProfile(ctx, profile); err != nil {
		return models.StudentProfile{}, err
	}
	s.logger.Info("profile created", zap.String("uid", uid))
	return profile, nil
}

// Update submits changes to an existing profile. The UID and creation time never change.
func (s *ProfileFormService) Update(ctx context.Context, uid string, input dto.ProfileInput) (models.StudentProfile, error) {
	if err := s.validator.Struct(input); err != nil {
		return models.StudentProfile{}, validationError(err, "invalid profile payload")
	}
	existing, err := s.shell.FindStudent(uid)
	if err != nil {
		return models.StudentProfile{}, err
	}
	profile := buildProfile(input, existing.StudentUID)
	profile.ProfileCreatedAt = existing.ProfileCreatedAt

	if err := s.shell.UpdateProfile(ctx, profile); err != nil {
		return models.StudentProfile{}, err
	}
	return profile, nil
}

// NextStudentUID returns <year>-<max sequence of that year + 1>, padded to three digits.
func NextStudentUID(students []models.StudentData, year string) string {
	max := 0
	for _, student := range students {
		y, seq, ok := models.UIDYear(student.StudentUID)
		if !ok || y != year {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s-%03d", year, max+1)
}

// NormalizeMobile prefixes Bangladeshi numbers with +88.
func NormalizeMobile(raw string) string {
	m := strings.TrimSpace(raw)
	if m == "" {
		return ""
	}
	digits := nonDigits.ReplaceAllString(m, "")
	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+88" + digits
	case len(digits) == 13 && strings.HasPrefix(digits, "88"):
		return "+" + digits
	}
	return m
}

// splitDOB derives day, month and year from the DOB_* fields or the composed DOB.
// DOB is accepted as YYYY-MM-DD or DD-MM-YYYY.
func splitDOB(p models.StudentProfile) (models.Text, models.Text, models.Text) {
	if p.DOBDay.Trim() != "" && p.DOBMonth.Trim() != "" && p.DOBYear.Trim() != "" {
		return models.Text(pad2(p.DOBDay.Trim())), models.Text(pad2(p.DOBMonth.Trim())), models.Text(p.DOBYear.Trim())
	}
	parts := dobSeparator.Split(p.DOB.Trim(), -1)
	if len(parts) < 3 {
		return "", "", ""
	}
	if len(parts[0]) == 4 {
		return models.Text(pad2(parts[2])), models.Text(pad2(parts[1])), models.Text(parts[0])
	}
	year := parts[2]
	if len(year) > 4 {
		year = year[:4]
	}
	return models.Text(pad2(parts[0])), models.Text(pad2(parts[1])), models.Text(year)
}

func buildProfile(in dto.ProfileInput, uid string) models.StudentProfile {
	day, month, year := pad2(in.DOBDay.Trim()), pad2(in.DOBMonth.Trim()), in.DOBYear.Trim()
	profile := models.StudentProfile{
		StudentUID:     uid,
		FormNo:         models.Text(cleanText(in.FormNo.String())),
		RegNo:          models.Text(cleanText(in.RegNo.String())),
		NameBangla:     cleanText(in.NameBangla),
		NameEnglish:    strings.ToUpper(cleanText(in.NameEnglish)),
		BirthRegNo:     models.Text(cleanText(in.BirthRegNo.String())),
		DOB:            models.Text(fmt.Sprintf("%s-%s-%s", year, month, day)),
		DOBDay:         models.Text(day),
		DOBMonth:       models.Text(month),
		DOBYear:        models.Text(year),
		Gender:         cleanText(in.Gender),
		FatherNameBN:   cleanText(in.FatherNameBN),
		FatherNameEN:   strings.ToUpper(cleanText(in.FatherNameEN)),
		FatherNID:      models.Text(cleanText(in.FatherNID.String())),
		MotherNameBN:   cleanText(in.MotherNameBN),
		MotherNameEN:   strings.ToUpper(cleanText(in.MotherNameEN)),
		MotherNID:      models.Text(cleanText(in.MotherNID.String())),
		MobilePrimary:  models.Text(NormalizeMobile(in.MobilePrimary.String())),
		MobileOptional: models.Text(NormalizeMobile(in.MobileOptional.String())),
		Village:        cleanText(in.Village),
		UnionPost:      cleanText(in.UnionPost),
		Upazila:        cleanText(in.Upazila),
		District:       cleanText(in.District),
		PhotoURL:       strings.TrimSpace(in.PhotoURL),
		CurrentStatus:  in.CurrentStatus,
	}
	if profile.Gender == "" {
		profile.Gender = defaultGender
	}
	if profile.CurrentStatus == "" {
		profile.CurrentStatus = models.StudentStatusActive
	}
	if profile.PhotoURL == "" {
		profile.PhotoURL = defaultPhotoURL
	}
	return profile
}

// cleanText strips markup from operator-entered text.
func cleanText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}

func pad2(v string) string {
	if len(v) == 1 {
		return "0" + v
	}
	return v
}
