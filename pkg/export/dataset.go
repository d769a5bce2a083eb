package export

// Dataset defines tabular export content. Headers fix the column order; rows
// are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Document is a titled, sectioned key/value sheet used for single-record prints.
type Document struct {
	Title    string
	Subtitle string
	Sections []DocumentSection
}

// DocumentSection groups labelled values under a heading.
type DocumentSection struct {
	Heading string
	Fields  []DocumentField
}

// DocumentField is a single label/value line.
type DocumentField struct {
	Label string
	Value string
}
