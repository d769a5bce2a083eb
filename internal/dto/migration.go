package dto

// MigrationSelection picks a year, class and optional section.
type MigrationSelection struct {
	Year    string `json:"year"`
	Class   string `json:"class"`
	Section string `json:"section"`
}

// MigrationRollInput overrides the new roll of one student.
type MigrationRollInput struct {
	Roll string `json:"roll"`
}

// ConfirmInput carries the explicit confirmation of a destructive action.
type ConfirmInput struct {
	Confirm bool `json:"confirm" form:"confirm"`
}

// MigrationView is the migration screen: both selections and the loaded cohort.
type MigrationView struct {
	Phase    string             `json:"phase"`
	Source   MigrationSelection `json:"source"`
	Target   MigrationSelection `json:"target"`
	Students []MigrationStudent `json:"students"`
	Selected int                `json:"selected"`
	Total    int                `json:"total"`
}

// MigrationStudent is one cohort member with its selection and edited roll.
type MigrationStudent struct {
	StudentUID string `json:"Student_UID"`
	NameBangla string `json:"Name_Bangla"`
	Class      string `json:"class"`
	Section    string `json:"section"`
	Roll       string `json:"roll"`
	Selected   bool   `json:"selected"`
	NewRoll    string `json:"new_roll"`
}
