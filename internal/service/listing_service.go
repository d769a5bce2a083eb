package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
)

type studentSource interface {
	Students() []models.StudentData
	Settings(ctx context.Context) models.Settings
}

// ListingService filters and orders the loaded student list for the list views.
type ListingService struct {
	source studentSource
	now    func() time.Time
}

// NewListingService constructs the listing service.
func NewListingService(source studentSource) *ListingService {
	return &ListingService{source: source, now: time.Now}
}

// Profiles lists every profile, optionally filtered by name/UID and class.
func (s *ListingService) Profiles(ctx context.Context, query dto.ProfileListQuery) []models.StudentData {
	search := strings.TrimSpace(query.Search)
	out := make([]models.StudentData, 0)
	for _, student := range s.source.Students() {
		current := currentEnrollment(student)
		if !matchesSearch(student, search) {
			continue
		}
		if query.Class != "" && current.Class != query.Class {
			continue
		}
		out = append(out, student)
	}
	sortByClassAndRoll(out, s.source.Settings(ctx))
	return out
}

// Admitted lists students with a class for the given year, the current year by default.
func (s *ListingService) Admitted(ctx context.Context, query dto.ListQuery) []models.StudentData {
	query.Section = ""
	return s.enrolled(ctx, query)
}

// Final lists students enrolled in a year, filterable by class and section.
func (s *ListingService) Final(ctx context.Context, query dto.ListQuery) []models.StudentData {
	return s.enrolled(ctx, query)
}

// DefaultYear returns the year a list query resolves to.
func (s *ListingService) DefaultYear(query dto.ListQuery) string {
	if year := strings.TrimSpace(query.Year); year != "" {
		return year
	}
	return fmt.Sprintf("%d", s.now().Year())
}

func (s *ListingService) enrolled(ctx context.Context, query dto.ListQuery) []models.StudentData {
	year := s.DefaultYear(query)
	search := strings.TrimSpace(query.Search)
	out := make([]models.StudentData, 0)
	for _, student := range s.source.Students() {
		current := currentEnrollment(student)
		if current.Year != year || current.Class == "" {
			continue
		}
		if !matchesSearch(student, search) {
			continue
		}
		if query.Class != "" && current.Class != query.Class {
			continue
		}
		if query.Section != "" && current.Section != query.Section {
			continue
		}
		out = append(out, student)
	}
	sortByClassAndRoll(out, s.source.Settings(ctx))
	return out
}

// currentEnrollment returns the student's resolved current enrollment, or the
// zero value when the student has none.
func currentEnrollment(student models.StudentData) models.Enrollment {
	if student.Current != nil {
		return *student.Current
	}
	if record, ok := student.FlatRecord(); ok {
		return models.EnrollmentFromRecord(record)
	}
	return models.Enrollment{}
}

func matchesSearch(student models.StudentData, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(student.NameBangla), needle) ||
		strings.Contains(strings.ToLower(student.StudentUID), needle)
}

// sortByClassAndRoll orders by class position in the settings, then by numeric roll.
// Unknown classes sort first.
func sortByClassAndRoll(students []models.StudentData, settings models.Settings) {
	sort.SliceStable(students, func(i, j int) bool {
		a, b := currentEnrollment(students[i]), currentEnrollment(students[j])
		ra, rb := settings.ClassRank(a.Class), settings.ClassRank(b.Class)
		if ra != rb {
			return ra < rb
		}
		return models.Text(a.Roll).Int() < models.Text(b.Roll).Int()
	})
}
