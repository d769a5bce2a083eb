package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/student-records/internal/dto"
	"github.com/noah-isme/student-records/internal/models"
	appErrors "github.com/noah-isme/student-records/pkg/errors"
)

// InstitutionName heads printed documents.
const InstitutionName = "আল-ঈমান আদর্শ মহিলা আলিম মাদ্রাসা"

const missingValue = "---"

var (
	banglaMonths = [12]string{"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন", "জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর"}
	banglaDigits = strings.NewReplacer("0", "০", "1", "১", "2", "২", "3", "৩", "4", "৪", "5", "৫", "6", "৬", "7", "৭", "8", "৮", "9", "৯")
)

type studentFinder interface {
	FindStudent(uid string) (models.StudentData, error)
}

// DetailService renders the read-only detail view of a student.
type DetailService struct {
	finder studentFinder
}

// NewDetailService constructs the detail service.
func NewDetailService(finder studentFinder) *DetailService {
	return &DetailService{finder: finder}
}

// Detail builds the detail view of uid in the requested mode; an empty mode means full.
func (s *DetailService) Detail(uid string, mode models.ModalMode) (*dto.StudentDetail, error) {
	if mode == "" {
		mode = models.ModalFull
	}
	if !mode.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mode must be one of profile_only, admission_only, full")
	}
	student, err := s.finder.FindStudent(uid)
	if err != nil {
		return nil, err
	}
	return BuildStudentDetail(student, mode), nil
}

// BuildStudentDetail lays out a student's fields for the given mode.
func BuildStudentDetail(student models.StudentData, mode models.ModalMode) *dto.StudentDetail {
	detail := &dto.StudentDetail{Mode: mode, Student: student}
	latest, ok := student.LatestRecord()
	if ok {
		detail.LatestRecord = &latest
	}
	if mode == models.ModalFull {
		detail.Sections = fullSections(student, detail.LatestRecord)
	} else {
		detail.Sections = compactSections(student, detail.LatestRecord)
	}
	return detail
}

func fullSections(s models.StudentData, latest *models.AcademicRecord) []dto.DetailSection {
	var record models.AcademicRecord
	if latest != nil {
		record = *latest
	}
	return []dto.DetailSection{
		{
			Heading: "১. শিক্ষার্থীর ব্যক্তিগত পরিচিতি",
			Fields: []dto.DetailField{
				field("নাম (বাংলায়)", s.NameBangla),
				field("নাম (ইংরেজিতে)", strings.ToUpper(s.NameEnglish)),
				field("জন্ম নিবন্ধন নম্বর", s.BirthRegNo.String()),
				field("জন্ম তারিখ", FormatDOB(s.StudentProfile)),
				field("লিঙ্গ", genderLabel(s.Gender)),
				field("ফরম নম্বর", s.FormNo.String()),
			},
		},
		{
			Heading: "২. অভিভাবকের বিস্তারিত তথ্য",
			Fields: []dto.DetailField{
				field("পিতার নাম (বাংলা)", s.FatherNameBN),
				field("পিতার নাম (ইংরেজি)", strings.ToUpper(s.FatherNameEN)),
				field("পিতার এনআইডি", s.FatherNID.String()),
				field("মাতার নাম (বাংলা)", s.MotherNameBN),
				field("মাতার নাম (ইংরেজি)", strings.ToUpper(s.MotherNameEN)),
				field("মাতার এনআইডি", s.MotherNID.String()),
			},
		},
		{
			Heading: "বর্তমান শ্রেণী",
			Fields: []dto.DetailField{
				field("বর্তমান শ্রেণী", record.ClassName),
				field("রোল", record.RollNo.Trim()),
				field("শাখা", record.Section),
				field("অ্যাকাডেমিক সেশন", record.AcademicYear.Trim()),
			},
		},
		{
			Heading: "৩. যোগাযোগ ও স্থায়ী ঠিকানা",
			Fields: []dto.DetailField{
				field("প্রধান মোবাইল", s.MobilePrimary.String()),
				field("বিকল্প মোবাইল", s.MobileOptional.String()),
				field("গ্রাম / এলাকা", s.Village),
				field("ইউনিয়ন / ডাকঘর", s.UnionPost),
				field("উপজেলা", s.Upazila),
				field("জেলা", s.District),
			},
		},
	}
}

func compactSections(s models.StudentData, latest *models.AcademicRecord) []dto.DetailSection {
	entryDate := ""
	if latest != nil {
		entryDate = latest.EntryDate.String()
	}
	return []dto.DetailSection{
		{
			Heading: "ব্যক্তিগত ও পরিচিতি",
			Fields: []dto.DetailField{
				field("লিঙ্গ", genderLabel(s.Gender)),
				field("জন্ম তারিখ", FormatDOB(s.StudentProfile)),
				field("জন্ম নিবন্ধন", s.BirthRegNo.String()),
				field("ফরম নম্বর", s.FormNo.String()),
				field("রেজিস্ট্রেশন", s.RegNo.String()),
				field("প্রধান মোবাইল", s.MobilePrimary.String()),
				field("বিকল্প মোবাইল", s.MobileOptional.String()),
			},
		},
		{
			Heading: "অভিভাবকের তথ্য",
			Fields: []dto.DetailField{
				field("পিতার নাম (বাংলা)", s.FatherNameBN),
				field("পিতার নাম (ইংরেজি)", s.FatherNameEN),
				field("পিতার এনআইডি", s.FatherNID.String()),
				field("মাতার নাম (বাংলা)", s.MotherNameBN),
				field("মাতার নাম (ইংরেজি)", s.MotherNameEN),
				field("মাতার এনআইডি", s.MotherNID.String()),
			},
		},
		{
			Heading: "স্থায়ী ঠিকানা",
			Fields: []dto.DetailField{
				field("গ্রাম", s.Village),
				field("ইউনিয়ন / ডাকঘর", s.UnionPost),
				field("উপজেলা", s.Upazila),
				field("জেলা", s.District),
			},
		},
		{
			Heading: "সিস্টেম অডিট",
			Fields: []dto.DetailField{
				field("প্রোফাইল তৈরি", FormatBanglaDate(s.ProfileCreatedAt.String())),
				field("বর্তমান অবস্থা", statusLabel(s.CurrentStatus)),
				field("সর্বশেষ ভর্তি", FormatBanglaDate(entryDate)),
			},
		},
	}
}

// FormatDOB renders the date of birth as "dd <month>, yyyy" from the DOB parts,
// falling back to the composed DOB.
func FormatDOB(p models.StudentProfile) string {
	d, m, y := p.DOBDay.Trim(), p.DOBMonth.Trim(), p.DOBYear.Trim()
	if d != "" && m != "" && y != "" && d != missingValue && m != missingValue && y != missingValue {
		month := models.Text(m).Int()
		if month >= 1 && month <= 12 {
			return pad2(d) + " " + banglaMonths[month-1] + ", " + y
		}
	}
	return FormatBanglaDate(p.DOB.String())
}

// FormatBanglaDate renders a date as "d <month>, yyyy" in Bangla digits.
// Values that cannot be parsed are returned unchanged; empty values render as ---.
func FormatBanglaDate(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || value == missingValue || value == "undefined" || value == "null" {
		return missingValue
	}
	t, ok := parseLooseDate(value)
	if !ok {
		return value
	}
	return banglaDigits.Replace(strconv.Itoa(t.Day())) + " " + banglaMonths[t.Month()-1] + ", " + banglaDigits.Replace(strconv.Itoa(t.Year()))
}

func parseLooseDate(value string) (time.Time, bool) {
	if strings.Contains(value, "T") {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t, true
		}
		if t, err := time.Parse("2006-01-02T15:04:05.000Z", value); err == nil {
			return t, true
		}
	}
	parts := dobSeparator.Split(value, -1)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	var y, m, d int
	if len(parts[0]) == 4 {
		y, m, d = models.Text(parts[0]).Int(), models.Text(parts[1]).Int(), models.Text(parts[2]).Int()
	} else {
		d, m, y = models.Text(parts[0]).Int(), models.Text(parts[1]).Int(), models.Text(parts[2]).Int()
	}
	if y == 0 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

func field(label, value string) dto.DetailField {
	value = strings.TrimSpace(value)
	if value == "" {
		value = missingValue
	}
	return dto.DetailField{Label: label, Value: value}
}

func genderLabel(gender string) string {
	if gender == genderMale {
		return "পুরুষ"
	}
	return "মহিলা"
}

func statusLabel(status models.StudentStatus) string {
	if status == models.StudentStatusActive {
		return "সক্রিয়"
	}
	return string(status)
}
