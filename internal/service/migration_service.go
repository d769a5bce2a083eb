package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

// Migration phases.
const (
	MigrationIdle          = "idle"
	MigrationCohortLoading = "cohort_loading"
	MigrationCohortLoaded  = "cohort_loaded"
	MigrationSubmitting    = "submitting"
)

const (
	msgMigrationSourceRequired = "দয়া করে বর্তমান বছর এবং শ্রেণী নির্বাচন করুন।"
	msgMigrationEmptyCohort    = "নির্বাচিত শ্রেণী ও শাখায় কোনো শিক্ষার্থী পাওয়া যায়নি।"
	msgMigrationTargetRequired = "টার্গেট শ্রেণী এবং শিক্ষাবর্ষ নির্বাচন করুন।"
	msgMigrationNoneSelected   = "কমপক্ষে একজন শিক্ষার্থী নির্বাচন করুন।"
	msgMigrationConfirm        = "আপনি কি নিশ্চিতভাবে %d জন শিক্ষার্থীকে পরবর্তী শ্রেণীতে মাইগ্রেট করতে চান?"
	msgMigrationDeselected     = "নির্বাচিত নয় এমন শিক্ষার্থীর রোল পরিবর্তন করা যাবে না।"
)

type cohortReader interface {
	ReadProfiles(ctx context.Context, year string) []models.StudentData
}

type migrationShell interface {
	RequireLogin() error
	BulkMigrate(ctx context.Context, entries []models.BulkEnrollEntry) error
	Notify(message string, kind models.ToastType) models.Toast
}

// MigrationService promotes a cohort of one year/class/section into a target
// year/class/section as a single batch.
type MigrationService struct {
	reader cohortReader
	shell  migrationShell
	logger *zap.Logger

	mu         sync.Mutex
	phase      string
	source     dto.MigrationSelection
	loaded     dto.MigrationSelection
	target     dto.MigrationSelection
	cohort     []models.StudentData
	selected   map[string]bool
	rolls      map[string]string
	generation uint64
}

// NewMigrationService constructs the workflow with the source year set to the
// current year and the target year to the next one.
func NewMigrationService(reader cohortReader, shell migrationShell, logger *zap.Logger) *MigrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	year := time.Now().Year()
	return &MigrationService{
		reader:   reader,
		shell:    shell,
		logger:   logger,
		phase:    MigrationIdle,
		source:   dto.MigrationSelection{Year: fmt.Sprintf("%d", year)},
		target:   dto.MigrationSelection{Year: fmt.Sprintf("%d", year+1)},
		selected: map[string]bool{},
		rolls:    map[string]string{},
	}
}

// State returns the current migration view.
func (s *MigrationService) State() dto.MigrationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// SetSource changes the cohort filter. The loaded cohort, and the selection it
// was loaded with, are kept until the next load.
func (s *MigrationService) SetSource(sel dto.MigrationSelection) dto.MigrationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = trimSelection(sel)
	return s.viewLocked()
}

// SetTarget changes the promotion target.
func (s *MigrationService) SetTarget(sel dto.MigrationSelection) dto.MigrationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = trimSelection(sel)
	return s.viewLocked()
}

// LoadCohort reads the source year and keeps the students enrolled in the
// source class and section. Every loaded student starts selected with its
// current roll. A load superseded by a newer one is discarded.
func (s *MigrationService) LoadCohort(ctx context.Context) (dto.MigrationView, error) {
	if err := s.shell.RequireLogin(); err != nil {
		return dto.MigrationView{}, err
	}

	s.mu.Lock()
	source := s.source
	if source.Year == "" || source.Class == "" {
		s.mu.Unlock()
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrValidation, msgMigrationSourceRequired)
	}
	s.generation++
	gen := s.generation
	s.phase = MigrationCohortLoading
	s.cohort = nil
	s.loaded = dto.MigrationSelection{}
	s.selected = map[string]bool{}
	s.rolls = map[string]string{}
	s.mu.Unlock()

	cohort := FilterCohort(s.reader.ReadProfiles(ctx, source.Year), source)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("stale cohort load discarded", zap.Uint64("generation", gen))
		return s.viewLocked(), nil
	}
	s.cohort = cohort
	s.loaded = source
	for _, student := range cohort {
		s.selected[student.StudentUID] = true
		e, _ := student.EnrollmentFor(source.Year)
		s.rolls[student.StudentUID] = e.Roll
	}
	s.phase = MigrationCohortLoaded
	if len(cohort) == 0 {
		s.shell.Notify(msgMigrationEmptyCohort, models.ToastError)
	}
	s.logger.Info("migration cohort loaded",
		zap.String("year", source.Year),
		zap.String("class", source.Class),
		zap.String("section", source.Section),
		zap.Int("students", len(cohort)),
	)
	return s.viewLocked(), nil
}

// Toggle flips the selection of one student.
func (s *MigrationService) Toggle(uid string) (dto.MigrationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid = strings.TrimSpace(uid)
	if !s.inCohortLocked(uid) {
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s is not in the loaded cohort", uid))
	}
	s.selected[uid] = !s.selected[uid]
	return s.viewLocked(), nil
}

// ToggleAll selects everyone unless everyone is already selected, in which case it clears the selection.
func (s *MigrationService) ToggleAll() dto.MigrationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.selectedCountLocked() == len(s.cohort)
	for _, student := range s.cohort {
		s.selected[student.StudentUID] = !all
	}
	return s.viewLocked()
}

// SetRoll edits the new roll of a selected student.
func (s *MigrationService) SetRoll(uid, roll string) (dto.MigrationView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid = strings.TrimSpace(uid)
	if !s.inCohortLocked(uid) {
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s is not in the loaded cohort", uid))
	}
	if !s.selected[uid] {
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrValidation, msgMigrationDeselected)
	}
	s.rolls[uid] = strings.TrimSpace(roll)
	return s.viewLocked(), nil
}

// Submit promotes the selected students. Without confirmation it returns the
// confirmation prompt. On success the cohort is cleared; on failure it is kept
// as it was.
func (s *MigrationService) Submit(ctx context.Context, confirmed bool) (dto.MigrationView, error) {
	if err := s.shell.RequireLogin(); err != nil {
		return dto.MigrationView{}, err
	}

	s.mu.Lock()
	if s.target.Class == "" || s.target.Year == "" {
		s.mu.Unlock()
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrValidation, msgMigrationTargetRequired)
	}
	count := s.selectedCountLocked()
	if count == 0 {
		s.mu.Unlock()
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrValidation, msgMigrationNoneSelected)
	}
	if !confirmed {
		s.mu.Unlock()
		return dto.MigrationView{}, appErrors.Clone(appErrors.ErrConfirmation, fmt.Sprintf(msgMigrationConfirm, count))
	}
	entries := BuildMigrationPayload(s.cohort, s.loaded, s.target, s.selected, s.rolls)
	gen := s.generation
	s.phase = MigrationSubmitting
	s.mu.Unlock()

	err := s.shell.BulkMigrate(ctx, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if gen == s.generation {
			s.phase = MigrationCohortLoaded
		}
		return s.viewLocked(), err
	}
	if gen == s.generation {
		s.cohort = nil
		s.loaded = dto.MigrationSelection{}
		s.selected = map[string]bool{}
		s.rolls = map[string]string{}
		s.phase = MigrationIdle
	}
	s.logger.Info("migration submitted",
		zap.String("target_year", s.target.Year),
		zap.String("target_class", s.target.Class),
		zap.Int("students", len(entries)),
	)
	return s.viewLocked(), nil
}

// FilterCohort keeps the students whose enrollment for the source year is in
// the source class and, when set, the source section.
func FilterCohort(students []models.StudentData, source dto.MigrationSelection) []models.StudentData {
	year := strings.TrimSpace(source.Year)
	out := make([]models.StudentData, 0)
	for _, student := range students {
		e, ok := student.EnrollmentFor(year)
		if !ok || !e.Matches(source.Class, source.Section) {
			continue
		}
		out = append(out, student)
	}
	return out
}

// BuildMigrationPayload produces one entry per selected student, in cohort order.
// source is the selection the cohort was loaded with. Section falls back from
// the target to the student's section in the source year, then to the source filter.
func BuildMigrationPayload(cohort []models.StudentData, source, target dto.MigrationSelection, selected map[string]bool, rolls map[string]string) []models.BulkEnrollEntry {
	entries := make([]models.BulkEnrollEntry, 0, len(cohort))
	for _, student := range cohort {
		if !selected[student.StudentUID] {
			continue
		}
		section := target.Section
		if section == "" {
			if e, ok := student.EnrollmentFor(source.Year); ok {
				section = e.Section
			}
		}
		if section == "" {
			section = source.Section
		}
		entries = append(entries, models.BulkEnrollEntry{
			StudentUID:   student.StudentUID,
			AcademicYear: target.Year,
			ClassName:    target.Class,
			Section:      section,
			RollNo:       rolls[student.StudentUID],
		})
	}
	return entries
}

func (s *MigrationService) viewLocked() dto.MigrationView {
	view := dto.MigrationView{
		Phase:    s.phase,
		Source:   s.source,
		Target:   s.target,
		Students: make([]dto.MigrationStudent, 0, len(s.cohort)),
		Total:    len(s.cohort),
	}
	for _, student := range s.cohort {
		e, _ := student.EnrollmentFor(s.loaded.Year)
		uid := student.StudentUID
		view.Students = append(view.Students, dto.MigrationStudent{
			StudentUID: uid,
			NameBangla: student.NameBangla,
			Class:      e.Class,
			Section:    e.Section,
			Roll:       e.Roll,
			Selected:   s.selected[uid],
			NewRoll:    s.rolls[uid],
		})
		if s.selected[uid] {
			view.Selected++
		}
	}
	return view
}

func (s *MigrationService) selectedCountLocked() int {
	count := 0
	for _, student := range s.cohort {
		if s.selected[student.StudentUID] {
			count++
		}
	}
	return count
}

func (s *MigrationService) inCohortLocked(uid string) bool {
	for _, student := range s.cohort {
		if student.StudentUID == uid {
			return true
		}
	}
	return false
}

func trimSelection(sel dto.MigrationSelection) dto.MigrationSelection {
	return dto.MigrationSelection{
		Year:    strings.TrimSpace(sel.Year),
		Class:   strings.TrimSpace(sel.Class),
		Section: strings.TrimSpace(sel.Section),
	}
}
