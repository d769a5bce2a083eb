package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

// Operator-facing messages.
const (
	msgLoginSuccess      = "%s হিসেবে লগইন সফল হয়েছে!"
	msgLoadFailed        = "সার্ভার থেকে ডাটা লোড করা যায়নি"
	msgProfileCreated    = "প্রোফাইল তৈরি হয়েছে! UID: %s"
	msgProfileUpdated    = "প্রোফাইল আপডেট সফল হয়েছে!"
	msgProfileFailed     = "অপারেশন সফল হয়নি। আবার চেষ্টা করুন।"
	msgEnrolled          = "শিক্ষার্থীর ভর্তি সফলভাবে সম্পন্ন হয়েছে!"
	msgRecordUpdated     = "একাডেমিক তথ্য আপডেট হয়েছে!"
	msgEnrollmentFailed  = "প্রক্রিয়াটি ব্যর্থ হয়েছে"
	msgDeleted           = "রেকর্ড সফলভাবে মুছে ফেলা হয়েছে"
	msgDeleteFailed      = "মুছে ফেলতে ব্যর্থ হয়েছে"
	msgMigrated          = "বাল্ক মাইগ্রেশন সফল হয়েছে!"
	msgMigrationFailed   = "মাইগ্রেশন ব্যর্থ হয়েছে।"
	msgConfirmDelete     = "আপনি কি নিশ্চিতভাবে এই শিক্ষার্থীকে মুছে ফেলতে চান? এটি স্থায়ীভাবে ডাটা ডিলিট করবে।"
	msgConfirmLogout     = "আপনি কি নিশ্চিতভাবে লগ-আউট করতে চান?"
	defaultToastDuration = 3 * time.Second
)

// RecordsGateway is the remote backend as seen by the services.
type RecordsGateway interface {
	ReadProfiles(ctx context.Context, year string) []models.StudentData
	GetPending(ctx context.Context, year string) []models.StudentData
	FetchSettings(ctx context.Context) models.Settings
	CreateProfile(ctx context.Context, profile models.StudentProfile) bool
	UpdateProfile(ctx context.Context, profile models.StudentProfile) bool
	EnrollStudent(ctx context.Context, record models.AcademicRecord) bool
	UpdateHistory(ctx context.Context, record models.AcademicRecord) bool
	BulkEnroll(ctx context.Context, entries []models.BulkEnrollEntry) bool
	DeleteFull(ctx context.Context, uid string) bool
	LoginUser(ctx context.Context, email, password string) models.LoginResult
}

type sessionManager interface {
	Create(ctx context.Context, user models.User) (*SessionToken, error)
	Load(ctx context.Context) (*models.Session, error)
	Delete(ctx context.Context) error
	Issue(session models.Session) (*SessionToken, error)
}

// mutation describes one create/update/delete/bulk call and its outcome handling.
type mutation struct {
	name    string
	call    func(ctx context.Context) bool
	success string
	failure string
	// navigate is the listing shown after success; empty keeps the current view.
	navigate models.ViewTab
}

// ShellService is the application shell: it owns the state store and runs every
// mutation through the same begin/await/refresh/notify/end sequence.
type ShellService struct {
	gateway   RecordsGateway
	store     *state.Store
	sessions  sessionManager
	validator *validator.Validate
	toastTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewShellService constructs the shell.
func NewShellService(gateway RecordsGateway, store *state.Store, sessions sessionManager, toastTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *ShellService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if toastTTL <= 0 {
		toastTTL = defaultToastDuration
	}
	return &ShellService{
		gateway:   gateway,
		store:     store,
		sessions:  sessions,
		validator: validate,
		toastTTL:  toastTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// State returns the current application state.
func (s *ShellService) State() state.AppState {
	return s.store.Snapshot()
}

// Students returns the loaded student list.
func (s *ShellService) Students() []models.StudentData {
	return s.store.Snapshot().Students
}

// Settings returns the loaded settings, falling back to the gateway before the first load.
func (s *ShellService) Settings(ctx context.Context) models.Settings {
	if snap := s.store.Snapshot(); snap.Settings != nil {
		return *snap.Settings
	}
	return s.gateway.FetchSettings(ctx)
}

// CurrentYear returns the calendar year used as the default academic year.
func (s *ShellService) CurrentYear() string {
	return fmt.Sprintf("%d", s.now().Year())
}

// Login authenticates the operator, persists the session and loads the data.
func (s *ShellService) Login(ctx context.Context, req models.LoginRequest) (*SessionToken, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	result := s.gateway.LoginUser(ctx, req.Email, req.Password)
	if !result.Succeeded() {
		message := result.Message
		if message == "" {
			message = appErrors.ErrInvalidCredentials.Message
		}
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, message)
	}

	token, err := s.sessions.Create(ctx, *result.User)
	if err != nil {
		return nil, err
	}
	s.store.Dispatch(state.LoggedIn{User: *result.User})
	s.Notify(fmt.Sprintf(msgLoginSuccess, result.User.Name), models.ToastSuccess)
	s.Refresh(ctx)
	s.logger.Info("operator logged in", zap.String("email", result.User.Email))
	return token, nil
}

// Restore reloads a persisted session at start-up. It reports whether one was found.
func (s *ShellService) Restore(ctx context.Context) (bool, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}
	s.store.Dispatch(state.LoggedIn{User: session.User})
	s.Refresh(ctx)
	s.logger.Info("operator session restored", zap.String("email", session.User.Email))
	return true, nil
}

// CurrentSession returns the persisted session with a freshly signed token.
func (s *ShellService) CurrentSession(ctx context.Context) (*SessionToken, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || !s.store.Snapshot().LoggedIn() {
		return nil, appErrors.ErrUnauthorized
	}
	return s.sessions.Issue(*session)
}

// Logout ends the session after explicit confirmation and clears all loaded data.
func (s *ShellService) Logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmation, msgConfirmLogout)
	}
	if err := s.sessions.Delete(ctx); err != nil {
		return err
	}
	s.store.Dispatch(state.LoggedOut{})
	s.logger.Info("operator logged out")
	return nil
}

// Refresh re-reads every student and the settings, replacing the loaded lists.
func (s *ShellService) Refresh(ctx context.Context) {
	snap := s.store.Snapshot()
	if !snap.LoggedIn() {
		return
	}
	done := s.begin("refresh")
	defer done()

	students := s.gateway.ReadProfiles(ctx, "")
	settings := s.gateway.FetchSettings(ctx)
	if ctx.Err() != nil {
		s.Notify(msgLoadFailed, models.ToastError)
		return
	}
	s.store.Dispatch(state.DataLoaded{Students: students, Settings: settings, Session: snap.Session})
}

// Navigate switches the active view.
func (s *ShellService) Navigate(view models.ViewTab) (state.AppState, error) {
	if !view.Valid() {
		return state.AppState{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown view %q", view))
	}
	return s.store.Dispatch(state.Navigated{View: view}), nil
}

// Notify shows a toast and arms its dismissal timer. The timer only clears this toast.
func (s *ShellService) Notify(message string, kind models.ToastType) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Type:      kind,
		ExpiresAt: s.now().Add(s.toastTTL),
	}
	s.store.Dispatch(state.ToastShown{Toast: toast})
	time.AfterFunc(s.toastTTL, func() {
		s.store.Dispatch(state.ToastDismissed{ID: toast.ID})
	})
	return toast
}

// DismissToast clears the toast with id, or the visible one when id is empty.
func (s *ShellService) DismissToast(id string) state.AppState {
	return s.store.Dispatch(state.ToastDismissed{ID: id})
}

// FindStudent looks a student up in the loaded list.
func (s *ShellService) FindStudent(uid string) (models.StudentData, error) {
	uid = strings.TrimSpace(uid)
	for _, student := range s.store.Snapshot().Students {
		if student.StudentUID == uid {
			return student, nil
		}
	}
	return models.StudentData{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", uid))
}

// StartProfileEdit targets a student for the profile form.
func (s *ShellService) StartProfileEdit(uid string) (state.AppState, error) {
	student, err := s.FindStudent(uid)
	if err != nil {
		return state.AppState{}, err
	}
	return s.store.Dispatch(state.ProfileEditStarted{Student: student}), nil
}

// CancelProfileEdit drops the edit target and returns to the profile list.
func (s *ShellService) CancelProfileEdit() state.AppState {
	s.store.Dispatch(state.ProfileEditCleared{})
	return s.store.Dispatch(state.Navigated{View: models.ViewProfileList})
}

// StartRecordEdit targets a student's merged record for the enrollment form.
func (s *ShellService) StartRecordEdit(uid string) (state.AppState, error) {
	student, err := s.FindStudent(uid)
	if err != nil {
		return state.AppState{}, err
	}
	year := student.AcademicYear
	if year.Trim() == "" {
		year = models.Text(s.CurrentYear())
	}
	record := models.AcademicRecord{
		RecordID:     student.RecordID,
		StudentUID:   student.StudentUID,
		AcademicYear: year,
		ClassName:    student.ClassName,
		Section:      student.Section,
		RollNo:       student.RollNo,
		EntryDate:    student.EntryDate,
	}
	return s.store.Dispatch(state.RecordEditStarted{Record: record}), nil
}

// CancelRecordEdit drops the edit target and returns to the admitted list.
func (s *ShellService) CancelRecordEdit() state.AppState {
	s.store.Dispatch(state.RecordEditCleared{})
	return s.store.Dispatch(state.Navigated{View: models.ViewAdmissionList})
}

// CreateProfile submits a new profile.
func (s *ShellService) CreateProfile(ctx context.Context, profile models.StudentProfile) error {
	return s.run(ctx, mutation{
		name:     "create_profile",
		call:     func(ctx context.Context) bool { return s.gateway.CreateProfile(ctx, profile) },
		success:  fmt.Sprintf(msgProfileCreated, profile.StudentUID),
		failure:  msgProfileFailed,
		navigate: models.ViewProfileList,
	})
}

// UpdateProfile submits changes to an existing profile.
func (s *ShellService) UpdateProfile(ctx context.Context, profile models.StudentProfile) error {
	return s.run(ctx, mutation{
		name:     "update_profile",
		call:     func(ctx context.Context) bool { return s.gateway.UpdateProfile(ctx, profile) },
		success:  msgProfileUpdated,
		failure:  msgProfileFailed,
		navigate: models.ViewProfileList,
	})
}

// EnrollRecord creates an academic record.
func (s *ShellService) EnrollRecord(ctx context.Context, record models.AcademicRecord) error {
	return s.run(ctx, mutation{
		name:     "enroll_student",
		call:     func(ctx context.Context) bool { return s.gateway.EnrollStudent(ctx, record) },
		success:  msgEnrolled,
		failure:  msgEnrollmentFailed,
		navigate: models.ViewAdmissionList,
	})
}

// UpdateRecord updates an academic record.
func (s *ShellService) UpdateRecord(ctx context.Context, record models.AcademicRecord) error {
	return s.run(ctx, mutation{
		name:     "update_history",
		call:     func(ctx context.Context) bool { return s.gateway.UpdateHistory(ctx, record) },
		success:  msgRecordUpdated,
		failure:  msgEnrollmentFailed,
		navigate: models.ViewAdmissionList,
	})
}

// DeleteStudent removes a profile and all of its records after explicit confirmation.
func (s *ShellService) DeleteStudent(ctx context.Context, uid string, confirmed bool) error {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return appErrors.Clone(appErrors.ErrValidation, "Student_UID is required")
	}
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmation, msgConfirmDelete)
	}
	return s.run(ctx, mutation{
		name:    "delete_full",
		call:    func(ctx context.Context) bool { return s.gateway.DeleteFull(ctx, uid) },
		success: msgDeleted,
		failure: msgDeleteFailed,
	})
}

// BulkMigrate writes a migration batch and shows the admitted list on success.
func (s *ShellService) BulkMigrate(ctx context.Context, entries []models.BulkEnrollEntry) error {
	return s.run(ctx, mutation{
		name:     "bulk_enroll",
		call:     func(ctx context.Context) bool { return s.gateway.BulkEnroll(ctx, entries) },
		success:  msgMigrated,
		failure:  msgMigrationFailed,
		navigate: models.ViewAdmissionList,
	})
}

// RequireLogin rejects calls made without an operator.
func (s *ShellService) RequireLogin() error {
	if !s.store.Snapshot().LoggedIn() {
		return appErrors.ErrUnauthorized
	}
	return nil
}

func (s *ShellService) run(ctx context.Context, m mutation) error {
	if err := s.RequireLogin(); err != nil {
		return err
	}
	done := s.begin(m.name)
	defer done()

	if !m.call(ctx) {
		s.Notify(m.failure, models.ToastError)
		s.logger.Warn("mutation failed", zap.String("operation", m.name))
		return appErrors.Clone(appErrors.ErrOperationFailed, m.failure)
	}

	s.Notify(m.success, models.ToastSuccess)
	s.Refresh(ctx)
	if m.navigate != "" {
		s.store.Dispatch(state.Navigated{View: m.navigate})
	}
	return nil
}

// begin registers an in-flight operation and returns its release function.
func (s *ShellService) begin(name string) func() {
	token := uuid.NewString()
	s.store.Dispatch(state.OperationStarted{Token: token, Name: name})
	return func() {
		s.store.Dispatch(state.OperationFinished{Token: token})
	}
}
