package models

// PublicationModel stores an academic publication listed on the site.
// Note is an optional free-form remark (award, preprint status, ...)
// carried verbatim into summary prompts.
type PublicationModel struct {
	Base
	Title   string `json:"title"   gorm:"not null"`
	Authors string `json:"authors" gorm:"not null"`
	Journal string `json:"journal"`
	Year    string `json:"year"    gorm:"size:16"`
	Note    string `json:"note,omitempty"`
	Link    string `json:"link,omitempty"`
}

func (PublicationModel) TableName() string { return "publications" }
