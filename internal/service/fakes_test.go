package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/gateway"
	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	"github.com/noah-isme/student-records/pkg/config"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

type fakeGateway struct {
	mu sync.Mutex

	students  []models.StudentData
	pending   []models.StudentData
	settings  models.Settings
	login     models.LoginResult
	mutateOK  bool
	readYears []string
	calls     []string

	profiles []models.StudentProfile
	records  []models.AcademicRecord
	batches  [][]models.BulkEnrollEntry
	deleted  []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		mutateOK: true,
		settings: models.Settings{
			ClassList:   append([]string(nil), config.DefaultClasses...),
			SectionList: append([]string(nil), config.DefaultSections...),
			YearList:    append([]string(nil), config.DefaultYears...),
		},
		login: models.LoginResult{Status: models.LoginStatusSuccess, User: &models.User{Name: "Admin", Email: "admin@example.com", Role: "admin"}},
	}
}

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeGateway) callCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeGateway) ReadProfiles(_ context.Context, year string) []models.StudentData {
	f.record("read_joined")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readYears = append(f.readYears, year)
	out := make([]models.StudentData, len(f.students))
	copy(out, f.students)
	return out
}

func (f *fakeGateway) GetPending(_ context.Context, _ string) []models.StudentData {
	f.record("get_pending")
	return append([]models.StudentData{}, f.pending...)
}

func (f *fakeGateway) FetchSettings(context.Context) models.Settings {
	return f.settings
}

func (f *fakeGateway) CreateProfile(_ context.Context, profile models.StudentProfile) bool {
	f.record("create_profile")
	f.profiles = append(f.profiles, profile)
	return f.mutateOK
}

func (f *fakeGateway) UpdateProfile(_ context.Context, profile models.StudentProfile) bool {
	f.record("update_profile")
	f.profiles = append(f.profiles, profile)
	return f.mutateOK
}

func (f *fakeGateway) EnrollStudent(_ context.Context, record models.AcademicRecord) bool {
	f.record("enroll_student")
	f.records = append(f.records, record)
	return f.mutateOK
}

func (f *fakeGateway) UpdateHistory(_ context.Context, record models.AcademicRecord) bool {
	f.record("update_history")
	f.records = append(f.records, record)
	return f.mutateOK
}

func (f *fakeGateway) BulkEnroll(_ context.Context, entries []models.BulkEnrollEntry) bool {
	f.record("bulk_enroll")
	f.batches = append(f.batches, entries)
	return f.mutateOK
}

func (f *fakeGateway) DeleteFull(_ context.Context, uid string) bool {
	f.record("delete_full")
	f.deleted = append(f.deleted, uid)
	return f.mutateOK
}

func (f *fakeGateway) LoginUser(_ context.Context, _, _ string) models.LoginResult {
	f.record("login")
	return f.login
}

type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	setErr   error
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: map[string]models.Session{}}
}

func (r *memorySessionRepo) Get(_ context.Context, key string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[key]
	if !ok {
		return nil, appErrors.ErrCacheMiss
	}
	return &session, nil
}

func (r *memorySessionRepo) Set(_ context.Context, key string, session models.Session, _ time.Duration) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[key] = session
	return nil
}

func (r *memorySessionRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, key)
	return nil
}

func fixedClock(year int) func() time.Time {
	return func() time.Time {
		return time.Date(year, time.March, 15, 9, 30, 0, 0, time.UTC)
	}
}

// newTestShell returns a shell over gw with an operator already logged in and
// the gateway's students loaded.
func newTestShell(gw *fakeGateway) *ShellService {
	store := state.NewStore(state.Initial(), zap.NewNop())
	sessions := NewSessionService(newMemorySessionRepo(), config.SessionConfig{Key: "user_session", Secret: "test-secret", TTL: time.Hour}, zap.NewNop())
	shell := NewShellService(gw, store, sessions, time.Hour, nil, zap.NewNop())
	shell.now = fixedClock(2025)
	store.Dispatch(state.LoggedIn{User: models.User{Name: "Admin", Email: "admin@example.com"}})
	shell.Refresh(context.Background())
	return shell
}

func flatStudent(uid, name, year, class, section, roll string) models.StudentData {
	s := models.StudentData{
		StudentProfile: models.StudentProfile{StudentUID: uid, NameBangla: name, CurrentStatus: models.StudentStatusActive},
		AcademicYear:   models.Text(year),
		ClassName:      class,
		Section:        section,
		RollNo:         models.Text(roll),
	}
	return gateway.Normalize(s)
}

func historyStudent(uid, name string, records ...models.AcademicRecord) models.StudentData {
	s := models.StudentData{
		StudentProfile: models.StudentProfile{StudentUID: uid, NameBangla: name, CurrentStatus: models.StudentStatusActive},
		History:        records,
	}
	return gateway.Normalize(s)
}
