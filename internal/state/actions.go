package state

import "github.com/noah-isme/student-records/internal/models"

// Action is a state transition request handled by Reduce.
type Action interface {
	actionName() string
}

// LoggedIn stores the operator after a successful login or session restore.
type LoggedIn struct{ User models.User }

// LoggedOut clears the operator together with every loaded dataset.
type LoggedOut struct{}

// DataLoaded replaces the student list and settings wholesale. It is ignored
// unless Session matches the session that is current when it is reduced.
type DataLoaded struct {
	Students []models.StudentData
	Settings models.Settings
	Session  uint64
}

// Navigated switches the active view and drops edit targets of views left behind.
type Navigated struct{ View models.ViewTab }

// OperationStarted registers an in-flight operation.
type OperationStarted struct {
	Token string
	Name  string
}

// OperationFinished releases an in-flight operation.
type OperationFinished struct{ Token string }

// ToastShown replaces the notification slot.
type ToastShown struct{ Toast models.Toast }

// ToastDismissed clears the slot when it still holds the toast with ID.
// An empty ID dismisses whatever is visible.
type ToastDismissed struct{ ID string }

// ProfileEditStarted sets the profile edit target and opens the profile form.
type ProfileEditStarted struct{ Student models.StudentData }

// ProfileEditCleared drops the profile edit target.
type ProfileEditCleared struct{}

// RecordEditStarted sets the record edit target and opens the enrollment form.
type RecordEditStarted struct{ Record models.AcademicRecord }

// RecordEditCleared drops the record edit target.
type RecordEditCleared struct{}

func (LoggedIn) actionName() string           { return "logged_in" }
func (LoggedOut) actionName() string          { return "logged_out" }
func (DataLoaded) actionName() string         { return "data_loaded" }
func (Navigated) actionName() string          { return "navigated" }
func (OperationStarted) actionName() string   { return "operation_started" }
func (OperationFinished) actionName() string  { return "operation_finished" }
func (ToastShown) actionName() string         { return "toast_shown" }
func (ToastDismissed) actionName() string     { return "toast_dismissed" }
func (ProfileEditStarted) actionName() string { return "profile_edit_started" }
func (ProfileEditCleared) actionName() string { return "profile_edit_cleared" }
func (RecordEditStarted) actionName() string  { return "record_edit_started" }
func (RecordEditCleared) actionName() string  { return "record_edit_cleared" }

// Name returns the action's log name.
func Name(a Action) string {
	if a == nil {
		return ""
	}
	return a.actionName()
}
