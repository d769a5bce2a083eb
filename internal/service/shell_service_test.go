package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
	"github.com/noah-isme/student-records/pkg/config"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

func newLoggedOutShell(gw *fakeGateway, toastTTL time.Duration) (*ShellService, *memorySessionRepo) {
	repo := newMemorySessionRepo()
	store := state.NewStore(state.Initial(), zap.NewNop())
	sessions := NewSessionService(repo, config.SessionConfig{Key: "user_session", Secret: "test-secret", TTL: time.Hour}, zap.NewNop())
	shell := NewShellService(gw, store, sessions, toastTTL, nil, zap.NewNop())
	shell.now = fixedClock(2025)
	return shell, repo
}

func TestShellServiceLoginSuccess(t *testing.T) {
	gw := newFakeGateway()
	gw.students = []models.StudentData{flatStudent("2025-001", "রহিম", "2025", "দাখিল ষষ্ঠ", "ক", "1")}
	shell, repo := newLoggedOutShell(gw, time.Hour)

	token, err := shell.Login(context.Background(), models.LoginRequest{Email: " admin@example.com ", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.NotEmpty(t, token.Token)

	snap := shell.State()
	require.True(t, snap.LoggedIn())
	assert.Equal(t, "Admin", snap.User.Name)
	assert.Len(t, snap.Students, 1)
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Toast)
	assert.Equal(t, models.ToastSuccess, snap.Toast.Type)
	assert.Contains(t, snap.Toast.Message, "Admin")

	_, persisted := repo.sessions["user_session"]
	assert.True(t, persisted)
}

func TestShellServiceLoginFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.login = models.LoginResult{Status: models.LoginStatusError, Message: "ভুল পাসওয়ার্ড"}
	shell, repo := newLoggedOutShell(gw, time.Hour)

	_, err := shell.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, "ভুল পাসওয়ার্ড", appErrors.FromError(err).Message)
	assert.False(t, shell.State().LoggedIn())
	assert.Empty(t, repo.sessions)
	assert.Equal(t, 0, gw.callCount("read_joined"))
}

func TestShellServiceLoginValidation(t *testing.T) {
	gw := newFakeGateway()
	shell, _ := newLoggedOutShell(gw, time.Hour)

	_, err := shell.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 0, gw.callCount("login"))
}

func TestShellServiceRestore(t *testing.T) {
	gw := newFakeGateway()
	shell, repo := newLoggedOutShell(gw, time.Hour)

	found, err := shell.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	repo.sessions["user_session"] = models.Session{ID: "s1", User: models.User{Name: "Admin", Email: "admin@example.com"}}
	found, err = shell.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, shell.State().LoggedIn())
	assert.Equal(t, 1, gw.callCount("read_joined"))
}

func TestShellServiceLogoutRequiresConfirmation(t *testing.T) {
	gw := newFakeGateway()
	gw.students = []models.StudentData{flatStudent("2025-001", "রহিম", "2025", "দাখিল ষষ্ঠ", "ক", "1")}
	shell := newTestShell(gw)

	err := shell.Logout(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConfirmation)
	assert.True(t, shell.State().LoggedIn())

	require.NoError(t, shell.Logout(context.Background(), true))
	snap := shell.State()
	assert.False(t, snap.LoggedIn())
	assert.Empty(t, snap.Students)
	assert.Nil(t, snap.Settings)
}

type blockingReads struct {
	*fakeGateway
	started chan struct{}
	release chan struct{}
}

func (b *blockingReads) ReadProfiles(ctx context.Context, year string) []models.StudentData {
	b.started <- struct{}{}
	<-b.release
	return b.fakeGateway.ReadProfiles(ctx, year)
}

func TestShellServiceRefreshAfterLogoutIsDropped(t *testing.T) {
	gw := newFakeGateway()
	gw.students = []models.StudentData{flatStudent("2025-001", "রহিম", "2025", "দাখিল ষষ্ঠ", "ক", "1")}
	slow := &blockingReads{fakeGateway: gw, started: make(chan struct{}, 1), release: make(chan struct{})}
	store := state.NewStore(state.Initial(), zap.NewNop())
	sessions := NewSessionService(newMemorySessionRepo(), config.SessionConfig{Key: "user_session", Secret: "test-secret", TTL: time.Hour}, zap.NewNop())
	shell := NewShellService(slow, store, sessions, time.Hour, nil, zap.NewNop())
	store.Dispatch(state.LoggedIn{User: models.User{Name: "Admin", Email: "admin@example.com"}})

	done := make(chan struct{})
	go func() {
		shell.Refresh(context.Background())
		close(done)
	}()
	<-slow.started

	require.NoError(t, shell.Logout(context.Background(), true))
	close(slow.release)
	<-done

	snap := shell.State()
	assert.False(t, snap.LoggedIn())
	assert.Empty(t, snap.Students)
	assert.Nil(t, snap.Settings)
	assert.False(t, snap.Loading)
}

func TestShellServiceMutationRequiresLogin(t *testing.T) {
	gw := newFakeGateway()
	shell, _ := newLoggedOutShell(gw, time.Hour)

	err := shell.CreateProfile(context.Background(), models.StudentProfile{StudentUID: "2025-001"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	assert.Equal(t, 0, gw.callCount("create_profile"))
}

func TestShellServiceMutationSuccessRefreshesAndNavigates(t *testing.T) {
	gw := newFakeGateway()
	shell := newTestShell(gw)
	reads := gw.callCount("read_joined")

	err := shell.CreateProfile(context.Background(), models.StudentProfile{StudentUID: "2025-001", NameBangla: "রহিম"})
	require.NoError(t, err)

	snap := shell.State()
	assert.Equal(t, models.ViewProfileList, snap.ActiveView)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.InFlight)
	require.NotNil(t, snap.Toast)
	assert.Equal(t, models.ToastSuccess, snap.Toast.Type)
	assert.Contains(t, snap.Toast.Message, "2025-001")
	assert.Equal(t, reads+1, gw.callCount("read_joined"))
}

func TestShellServiceMutationFailureKeepsView(t *testing.T) {
	gw := newFakeGateway()
	gw.mutateOK = false
	shell := newTestShell(gw)
	_, err := shell.Navigate(models.ViewAdmissionEntry)
	require.NoError(t, err)
	reads := gw.callCount("read_joined")

	err = shell.EnrollRecord(context.Background(), models.AcademicRecord{StudentUID: "2025-001", ClassName: "দাখিল ষষ্ঠ", RollNo: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrOperationFailed)
	assert.Equal(t, msgEnrollmentFailed, appErrors.FromError(err).Message)

	snap := shell.State()
	assert.Equal(t, models.ViewAdmissionEntry, snap.ActiveView)
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Toast)
	assert.Equal(t, models.ToastError, snap.Toast.Type)
	assert.Equal(t, reads, gw.callCount("read_joined"))
}

func TestShellServiceDeleteStudent(t *testing.T) {
	gw := newFakeGateway()
	shell := newTestShell(gw)
	_, err := shell.Navigate(models.ViewFinalList)
	require.NoError(t, err)

	err = shell.DeleteStudent(context.Background(), "2025-001", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConfirmation)
	assert.Equal(t, 0, gw.callCount("delete_full"))

	err = shell.DeleteStudent(context.Background(), " ", true)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, shell.DeleteStudent(context.Background(), "2025-001", true))
	assert.Equal(t, []string{"2025-001"}, gw.deleted)
	assert.Equal(t, models.ViewFinalList, shell.State().ActiveView)
}

func TestShellServiceToastTimerDismissesOnlyItsToast(t *testing.T) {
	gw := newFakeGateway()
	shell, _ := newLoggedOutShell(gw, 200*time.Millisecond)

	first := shell.Notify("প্রথম", models.ToastSuccess)
	time.Sleep(100 * time.Millisecond)
	second := shell.Notify("দ্বিতীয়", models.ToastError)

	// The first timer fires while the second toast is visible and must leave it alone.
	time.Sleep(130 * time.Millisecond)
	snap := shell.State()
	require.NotNil(t, snap.Toast)
	assert.Equal(t, second.ID, snap.Toast.ID)
	assert.NotEqual(t, first.ID, snap.Toast.ID)

	assert.Eventually(t, func() bool {
		return shell.State().Toast == nil
	}, time.Second, 5*time.Millisecond)
}

func TestShellServiceNavigateAndEditTargets(t *testing.T) {
	gw := newFakeGateway()
	gw.students = []models.StudentData{flatStudent("2025-001", "রহিম", "2025", "দাখিল ষষ্ঠ", "ক", "7")}
	shell := newTestShell(gw)

	_, err := shell.Navigate(models.ViewTab("nowhere"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	snap, err := shell.StartRecordEdit("2025-001")
	require.NoError(t, err)
	assert.Equal(t, models.ViewAdmissionEntry, snap.ActiveView)
	require.NotNil(t, snap.EditingRecord)
	assert.Equal(t, "7", snap.EditingRecord.RollNo.Trim())

	snap = shell.CancelRecordEdit()
	assert.Nil(t, snap.EditingRecord)
	assert.Equal(t, models.ViewAdmissionList, snap.ActiveView)

	snap, err = shell.StartProfileEdit("2025-001")
	require.NoError(t, err)
	assert.Equal(t, models.ViewProfileEntry, snap.ActiveView)
	snap, err = shell.Navigate(models.ViewDashboard)
	require.NoError(t, err)
	assert.Nil(t, snap.EditingProfile)

	_, err = shell.StartProfileEdit("2030-999")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestShellServiceCurrentYear(t *testing.T) {
	shell := newTestShell(newFakeGateway())
	assert.Equal(t, "2025", shell.CurrentYear())
}
