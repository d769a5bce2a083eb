package models

// Settings carries the enumerations used by every selector.
// The order of ClassList defines class sort order.
type Settings struct {
	ClassList   []string `json:"Class_List"`
	SectionList []string `json:"Section_List"`
	YearList    []string `json:"Year_List"`
}

// ClassRank returns the position of a class in ClassList, or -1 when unknown.
func (s Settings) ClassRank(class string) int {
	for i, c := range s.ClassList {
		if c == class {
			return i
		}
	}
	return -1
}
