package gateway

import (
	"strings"

	"github.com/noah-isme/student-records/internal/models"
)

// Normalize resolves a student's per-year enrollments and current enrollment.
// History entries are indexed by year; the flat record merged by the backend
// takes precedence for its own year. Current is the flat record when present,
// otherwise the history entry with the greatest year.
func Normalize(s models.StudentData) models.StudentData {
	enrollments := make(map[string]models.Enrollment, len(s.History)+1)
	for _, rec := range s.History {
		e := models.EnrollmentFromRecord(rec)
		if e.Year == "" {
			continue
		}
		enrollments[e.Year] = e
	}

	var current *models.Enrollment
	if flat, ok := s.FlatRecord(); ok {
		e := models.EnrollmentFromRecord(flat)
		if e.Year != "" {
			enrollments[e.Year] = e
		}
		current = &e
	} else if latest, ok := s.LatestRecord(); ok {
		e := models.EnrollmentFromRecord(latest)
		current = &e
	}

	if len(enrollments) == 0 {
		enrollments = nil
	}
	s.Enrollments = enrollments
	s.Current = current
	s.StudentUID = strings.TrimSpace(s.StudentUID)
	return s
}

// NormalizeAll normalizes a slice in place and returns it.
func NormalizeAll(students []models.StudentData) []models.StudentData {
	for i := range students {
		students[i] = Normalize(students[i])
	}
	return students
}
