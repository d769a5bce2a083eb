package models

import "time"

// ViewTab names a screen of the application shell.
type ViewTab string

// Available views.
const (
	ViewDashboard      ViewTab = "dashboard"
	ViewProfileEntry   ViewTab = "profile_entry"
	ViewProfileList    ViewTab = "profile_list"
	ViewAdmissionEntry ViewTab = "admission_entry"
	ViewAdmissionList  ViewTab = "admission_list"
	ViewFinalList      ViewTab = "final_list"
	ViewCustomReport   ViewTab = "custom_report"
	ViewMigration      ViewTab = "migration"
)

// Valid reports whether v is a known view.
func (v ViewTab) Valid() bool {
	switch v {
	case ViewDashboard, ViewProfileEntry, ViewProfileList, ViewAdmissionEntry,
		ViewAdmissionList, ViewFinalList, ViewCustomReport, ViewMigration:
		return true
	}
	return false
}

// ModalMode selects which parts of a student the detail view shows.
type ModalMode string

// Detail view modes.
const (
	ModalProfileOnly   ModalMode = "profile_only"
	ModalAdmissionOnly ModalMode = "admission_only"
	ModalFull          ModalMode = "full"
)

// Valid reports whether m is a known mode.
func (m ModalMode) Valid() bool {
	return m == ModalProfileOnly || m == ModalAdmissionOnly || m == ModalFull
}

// ToastType distinguishes success and error notifications.
type ToastType string

// Toast types.
const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// Toast is the single notification slot shown to the operator.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      ToastType `json:"type"`
	ExpiresAt time.Time `json:"expires_at"`
}
