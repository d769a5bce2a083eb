package state

import "github.com/noah-isme/student-records/internal/models"

// AppState is the operator's application state.
type AppState struct {
	User           *models.User           `json:"user,omitempty"`
	ActiveView     models.ViewTab         `json:"active_view"`
	Students       []models.StudentData   `json:"-"`
	Settings       *models.Settings       `json:"settings,omitempty"`
	Loading        bool                   `json:"loading"`
	InFlight       map[string]string      `json:"in_flight,omitempty"`
	Toast          *models.Toast          `json:"toast,omitempty"`
	EditingProfile *models.StudentData    `json:"editing_profile,omitempty"`
	EditingRecord  *models.AcademicRecord `json:"editing_record,omitempty"`
	Session        uint64                 `json:"-"`
}

// Initial returns the logged-out state.
func Initial() AppState {
	return AppState{ActiveView: models.ViewDashboard, Students: []models.StudentData{}}
}

// LoggedIn reports whether an operator is present.
func (s AppState) LoggedIn() bool {
	return s.User != nil
}

// Reduce applies an action and returns the next state. It never mutates s.
func Reduce(s AppState, action Action) AppState {
	switch a := action.(type) {
	case LoggedIn:
		user := a.User
		s.User = &user
		s.Session++
		s.ActiveView = models.ViewDashboard
	case LoggedOut:
		s.User = nil
		s.Session++
		s.Students = []models.StudentData{}
		s.Settings = nil
		s.ActiveView = models.ViewDashboard
		s.EditingProfile = nil
		s.EditingRecord = nil
	case DataLoaded:
		if s.User == nil || a.Session != s.Session {
			return s
		}
		students := a.Students
		if students == nil {
			students = []models.StudentData{}
		}
		settings := a.Settings
		s.Students = students
		s.Settings = &settings
	case Navigated:
		if !a.View.Valid() {
			return s
		}
		if a.View != models.ViewProfileEntry {
			s.EditingProfile = nil
		}
		if a.View != models.ViewAdmissionEntry {
			s.EditingRecord = nil
		}
		s.ActiveView = a.View
	case OperationStarted:
		inFlight := copyInFlight(s.InFlight)
		inFlight[a.Token] = a.Name
		s.InFlight = inFlight
	case OperationFinished:
		if _, ok := s.InFlight[a.Token]; !ok {
			return s
		}
		inFlight := copyInFlight(s.InFlight)
		delete(inFlight, a.Token)
		if len(inFlight) == 0 {
			inFlight = nil
		}
		s.InFlight = inFlight
	case ToastShown:
		toast := a.Toast
		s.Toast = &toast
	case ToastDismissed:
		if s.Toast != nil && (a.ID == "" || s.Toast.ID == a.ID) {
			s.Toast = nil
		}
	case ProfileEditStarted:
		student := a.Student
		s.EditingProfile = &student
		s.EditingRecord = nil
		s.ActiveView = models.ViewProfileEntry
	case ProfileEditCleared:
		s.EditingProfile = nil
	case RecordEditStarted:
		record := a.Record
		s.EditingRecord = &record
		s.EditingProfile = nil
		s.ActiveView = models.ViewAdmissionEntry
	case RecordEditCleared:
		s.EditingRecord = nil
	}
	s.Loading = len(s.InFlight) > 0
	return s
}

func copyInFlight(src map[string]string) map[string]string {
	out := make(map[string]string, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}
