// Package entity defines the domain models for the blog feature.
package entity

// Blog is a published blog record.
// ID is generated by the store on insert and never changes afterwards.
// Update overwrites every other field at once; there is no partial update.
type Blog struct {
	ID       uint
	Title    string
	Category string
	Date     string
	ReadTime string
	Image    string
}

// HasRequiredFields reports whether title, category and date are all set.
func (b Blog) HasRequiredFields() bool {
	return b.Title != "" && b.Category != "" && b.Date != ""
}
