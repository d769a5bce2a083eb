package dto

import (
	"time"

	"github.com/noah-isme/student-records/internal/models"
	"github.com/noah-isme/student-records/internal/state"
)

// NavigateInput switches the active view.
type NavigateInput struct {
	View models.ViewTab `json:"view" validate:"required"`
}

// DismissToastInput dismisses a toast; an empty ID dismisses the visible one.
type DismissToastInput struct {
	ID string `json:"id"`
}

// StateView is the public shape of the application state.
type StateView struct {
	state.AppState
	StudentCount int `json:"student_count"`
}

// NewStateView wraps an AppState for responses.
func NewStateView(s state.AppState) StateView {
	return StateView{AppState: s, StudentCount: len(s.Students)}
}

// MetricsSnapshot summarises process metrics for the health endpoint.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	BackendCalls             uint64    `json:"backend_calls"`
	BackendFailures          uint64    `json:"backend_failures"`
	AverageBackendDurationMs float64   `json:"average_backend_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
