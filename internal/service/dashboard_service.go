package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
)

const (
	genderFemale = "Female"
	genderMale   = "Male"
)

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	RecentLimit int
}

// DashboardService composes the headline numbers shown after login.
type DashboardService struct {
	source studentSource
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(source studentSource, cfg DashboardServiceConfig, logger *zap.Logger) *DashboardService {
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{source: source, logger: logger, now: time.Now, cfg: cfg}
}

// Summary aggregates the loaded students for the current calendar year.
func (s *DashboardService) Summary(ctx context.Context) dto.DashboardSummary {
	year := fmt.Sprintf("%d", s.now().Year())
	students := s.source.Students()
	settings := s.source.Settings(ctx)

	summary := dto.DashboardSummary{
		Year:              year,
		Total:             len(students),
		ClassDistribution: []dto.ClassShare{},
		Recent:            []dto.RecentStudentItem{},
	}

	perClass := make(map[string]int)
	for _, student := range students {
		if strings.HasPrefix(student.ProfileCreatedAt.Trim(), year) {
			summary.NewAdmissions++
		}
		if student.CurrentStatus == models.StudentStatusActive {
			summary.Active++
		}

		current := currentEnrollment(student)
		if current.Year != year {
			continue
		}
		summary.CurrentYear++
		if current.Class != "" {
			perClass[current.Class]++
		}
		switch student.Gender {
		case genderFemale:
			summary.Gender.Female++
		case genderMale:
			summary.Gender.Male++
		}
	}
	summary.Classes = len(perClass)

	for _, class := range settings.ClassList {
		count := perClass[class]
		if count == 0 {
			continue
		}
		summary.ClassDistribution = append(summary.ClassDistribution, dto.ClassShare{
			Class:      class,
			Count:      count,
			Percentage: percentage(count, summary.CurrentYear),
		})
	}

	summary.Recent = s.recent(students)
	return summary
}

func (s *DashboardService) recent(students []models.StudentData) []dto.RecentStudentItem {
	sorted := make([]models.StudentData, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProfileCreatedAt.Trim() > sorted[j].ProfileCreatedAt.Trim()
	})
	if len(sorted) > s.cfg.RecentLimit {
		sorted = sorted[:s.cfg.RecentLimit]
	}
	items := make([]dto.RecentStudentItem, 0, len(sorted))
	for _, student := range sorted {
		items = append(items, dto.RecentStudentItem{
			StudentUID:       student.StudentUID,
			NameBangla:       student.NameBangla,
			ClassName:        currentEnrollment(student).Class,
			ProfileCreatedAt: student.ProfileCreatedAt,
		})
	}
	return items
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
