package models

// ProjectModel stores personal projects shown on the site.
type ProjectModel struct {
	Base
	Name        string      `json:"name"        gorm:"uniqueIndex;not null"`
	Description string      `json:"description"`
	PreviewURL  string      `json:"preview_url"`
	RepoURL     string      `json:"repo_url"`
	Images      StringArray `json:"images"      gorm:"type:longtext"`
	Text        string      `json:"text"        gorm:"type:text"` // markdown body
}

func (ProjectModel) TableName() string { return "projects" }
