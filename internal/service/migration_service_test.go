package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

const (
	classSix   = "দাখিল ষষ্ঠ"
	classSeven = "দাখিল সপ্তম"
)

func migrationCohort() []models.StudentData {
	return []models.StudentData{
		flatStudent("2025-001", "রহিম", "2025", classSix, "ক", "1"),
		flatStudent("2025-002", "করিম", "2025", classSix, "খ", "2"),
		historyStudent("2024-010", "সালমা",
			models.AcademicRecord{StudentUID: "2024-010", AcademicYear: "2024", ClassName: "ইবতেদায়ী ৫ম", Section: "ক", RollNo: "4"},
			models.AcademicRecord{StudentUID: "2024-010", AcademicYear: "2025", ClassName: classSix, Section: "ক", RollNo: "3"},
		),
		flatStudent("2025-050", "জামাল", "2025", classSeven, "ক", "1"),
		flatStudent("2024-020", "নাসির", "2024", classSix, "ক", "9"),
	}
}

func newTestMigration(t *testing.T, gw *fakeGateway) (*MigrationService, *ShellService) {
	t.Helper()
	shell := newTestShell(gw)
	svc := NewMigrationService(gw, shell, zap.NewNop())
	svc.SetSource(dto.MigrationSelection{Year: "2025", Class: classSix})
	svc.SetTarget(dto.MigrationSelection{Year: "2026", Class: classSeven})
	return svc, shell
}

func TestFilterCohortMatchesFlatAndHistoryShapes(t *testing.T) {
	cohort := FilterCohort(migrationCohort(), dto.MigrationSelection{Year: "2025", Class: classSix})
	uids := make([]string, 0, len(cohort))
	for _, s := range cohort {
		uids = append(uids, s.StudentUID)
	}
	assert.Equal(t, []string{"2025-001", "2025-002", "2024-010"}, uids)

	withSection := FilterCohort(migrationCohort(), dto.MigrationSelection{Year: "2025", Class: classSix, Section: "খ"})
	require.Len(t, withSection, 1)
	assert.Equal(t, "2025-002", withSection[0].StudentUID)

	assert.Empty(t, FilterCohort(migrationCohort(), dto.MigrationSelection{Year: "2023", Class: classSix}))
}

func TestMigrationLoadCohortSelectsEveryone(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, _ := newTestMigration(t, gw)

	view, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)
	assert.Equal(t, MigrationCohortLoaded, view.Phase)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 3, view.Selected)
	for _, s := range view.Students {
		assert.True(t, s.Selected)
		assert.Equal(t, s.Roll, s.NewRoll)
	}
	assert.Contains(t, gw.readYears, "2025")
}

func TestMigrationLoadCohortRequiresSource(t *testing.T) {
	gw := newFakeGateway()
	svc, _ := newTestMigration(t, gw)
	svc.SetSource(dto.MigrationSelection{Year: "2025"})
	reads := gw.callCount("read_joined")

	_, err := svc.LoadCohort(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, reads, gw.callCount("read_joined"))
}

func TestMigrationEmptyCohortNotifies(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, shell := newTestMigration(t, gw)
	svc.SetSource(dto.MigrationSelection{Year: "2025", Class: "আলিম ১ম বর্ষ"})

	view, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)
	assert.Zero(t, view.Total)
	toast := shell.State().Toast
	require.NotNil(t, toast)
	assert.Equal(t, models.ToastError, toast.Type)
	assert.Equal(t, msgMigrationEmptyCohort, toast.Message)
}

func TestMigrationToggleAllIsNeverPartial(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, _ := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)

	view := svc.ToggleAll()
	assert.Zero(t, view.Selected)

	_, err = svc.Toggle("2025-002")
	require.NoError(t, err)
	view = svc.ToggleAll()
	assert.Equal(t, view.Total, view.Selected)

	view = svc.ToggleAll()
	assert.Zero(t, view.Selected)
}

func TestMigrationRollEditRequiresSelection(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, _ := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)

	_, err = svc.SetRoll("2025-001", "15")
	require.NoError(t, err)
	_, err = svc.Toggle("2025-001")
	require.NoError(t, err)

	_, err = svc.SetRoll("2025-001", "20")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	view, err := svc.Toggle("2025-001")
	require.NoError(t, err)
	for _, s := range view.Students {
		if s.StudentUID == "2025-001" {
			assert.True(t, s.Selected)
			assert.Equal(t, "15", s.NewRoll)
		}
	}

	_, err = svc.SetRoll("2030-001", "1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestMigrationSubmitValidatesBeforeNetwork(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, _ := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)

	svc.ToggleAll()
	_, err = svc.Submit(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, msgMigrationNoneSelected, appErrors.FromError(err).Message)

	svc.ToggleAll()
	svc.SetTarget(dto.MigrationSelection{Year: "2026"})
	_, err = svc.Submit(context.Background(), true)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, msgMigrationTargetRequired, appErrors.FromError(err).Message)

	svc.SetTarget(dto.MigrationSelection{Year: "2026", Class: classSeven})
	_, err = svc.Submit(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrConfirmation)
	assert.Contains(t, appErrors.FromError(err).Message, "3")

	assert.Zero(t, gw.callCount("bulk_enroll"))
}

func TestMigrationSubmitPromotesSelectedStudents(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, shell := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)

	_, err = svc.SetRoll("2024-010", "5")
	require.NoError(t, err)
	_, err = svc.SetRoll("2025-002", "12")
	require.NoError(t, err)
	_, err = svc.Toggle("2025-002")
	require.NoError(t, err)

	view, err := svc.Submit(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, MigrationIdle, view.Phase)
	assert.Zero(t, view.Total)

	require.Len(t, gw.batches, 1)
	assert.Equal(t, []models.BulkEnrollEntry{
		{StudentUID: "2025-001", AcademicYear: "2026", ClassName: classSeven, Section: "ক", RollNo: "1"},
		{StudentUID: "2024-010", AcademicYear: "2026", ClassName: classSeven, Section: "ক", RollNo: "5"},
	}, gw.batches[0])

	snap := shell.State()
	assert.Equal(t, models.ViewAdmissionList, snap.ActiveView)
	require.NotNil(t, snap.Toast)
	assert.Equal(t, models.ToastSuccess, snap.Toast.Type)
}

func TestMigrationSubmitFailureKeepsCohort(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, shell := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)
	_, err = svc.Toggle("2025-002")
	require.NoError(t, err)
	_, err = svc.SetRoll("2025-001", "8")
	require.NoError(t, err)
	before := svc.State()

	gw.mutateOK = false
	after, err := svc.Submit(context.Background(), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrOperationFailed)

	assert.Equal(t, before, after)
	assert.Equal(t, MigrationCohortLoaded, after.Phase)
	assert.Equal(t, models.ToastError, shell.State().Toast.Type)
}

func TestMigrationSubmitUsesLoadedSelectionAfterSourceChange(t *testing.T) {
	gw := newFakeGateway()
	gw.students = migrationCohort()
	svc, _ := newTestMigration(t, gw)
	_, err := svc.LoadCohort(context.Background())
	require.NoError(t, err)

	view := svc.SetSource(dto.MigrationSelection{Year: "2026", Class: classSix})
	assert.Equal(t, "2026", view.Source.Year)
	require.Len(t, view.Students, 3)
	assert.Equal(t, classSix, view.Students[0].Class)
	assert.Equal(t, "ক", view.Students[0].Section)
	assert.Equal(t, "2", view.Students[1].Roll)

	_, err = svc.Submit(context.Background(), true)
	require.NoError(t, err)

	require.Len(t, gw.batches, 1)
	sections := map[string]string{}
	for _, entry := range gw.batches[0] {
		sections[entry.StudentUID] = entry.Section
	}
	assert.Equal(t, map[string]string{"2025-001": "ক", "2025-002": "খ", "2024-010": "ক"}, sections)
}

func TestBuildMigrationPayloadSectionFallback(t *testing.T) {
	cohort := []models.StudentData{
		flatStudent("2025-001", "রহিম", "2025", classSix, "খ", "1"),
		flatStudent("2025-002", "করিম", "2025", classSix, "", "2"),
	}
	selected := map[string]bool{"2025-001": true, "2025-002": true}
	rolls := map[string]string{"2025-001": "1", "2025-002": "2"}
	source := dto.MigrationSelection{Year: "2025", Class: classSix, Section: "ক"}

	entries := BuildMigrationPayload(cohort, source, dto.MigrationSelection{Year: "2026", Class: classSeven, Section: "গ"}, selected, rolls)
	assert.Equal(t, "গ", entries[0].Section)
	assert.Equal(t, "গ", entries[1].Section)

	entries = BuildMigrationPayload(cohort, source, dto.MigrationSelection{Year: "2026", Class: classSeven}, selected, rolls)
	assert.Equal(t, "খ", entries[0].Section)
	assert.Equal(t, "ক", entries[1].Section)
	for i, e := range entries {
		assert.Equal(t, cohort[i].StudentUID, e.StudentUID)
	}
}

type gatedReader struct {
	mu      sync.Mutex
	gates   []chan struct{}
	started chan struct{}
	result  map[string][]models.StudentData
	classOf []string
}

func (r *gatedReader) ReadProfiles(_ context.Context, _ string) []models.StudentData {
	r.mu.Lock()
	gate := make(chan struct{})
	r.gates = append(r.gates, gate)
	class := r.classOf[len(r.gates)-1]
	r.mu.Unlock()
	r.started <- struct{}{}
	<-gate
	return r.result[class]
}

func TestMigrationStaleLoadIsDiscarded(t *testing.T) {
	gw := newFakeGateway()
	shell := newTestShell(gw)
	reader := &gatedReader{
		started: make(chan struct{}, 2),
		classOf: []string{classSix, classSeven},
		result: map[string][]models.StudentData{
			classSix:   {flatStudent("2025-001", "রহিম", "2025", classSix, "ক", "1")},
			classSeven: {flatStudent("2025-050", "জামাল", "2025", classSeven, "ক", "1")},
		},
	}
	svc := NewMigrationService(reader, shell, zap.NewNop())
	svc.SetSource(dto.MigrationSelection{Year: "2025", Class: classSix})

	firstDone := make(chan dto.MigrationView, 1)
	go func() {
		view, _ := svc.LoadCohort(context.Background())
		firstDone <- view
	}()
	<-reader.started

	svc.SetSource(dto.MigrationSelection{Year: "2025", Class: classSeven})
	secondDone := make(chan dto.MigrationView, 1)
	go func() {
		view, _ := svc.LoadCohort(context.Background())
		secondDone <- view
	}()
	<-reader.started

	reader.mu.Lock()
	close(reader.gates[1])
	reader.mu.Unlock()
	second := <-secondDone
	require.Len(t, second.Students, 1)
	assert.Equal(t, "2025-050", second.Students[0].StudentUID)

	reader.mu.Lock()
	close(reader.gates[0])
	reader.mu.Unlock()
	<-firstDone

	final := svc.State()
	require.Len(t, final.Students, 1)
	assert.Equal(t, "2025-050", final.Students[0].StudentUID)
}
