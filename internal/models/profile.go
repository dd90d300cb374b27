package models

// ProfileModel holds the single biographical record the site is built
// around. Exactly one row is expected; Bio is markdown.
type ProfileModel struct {
	Base
	Name      string      `json:"name"      gorm:"not null"`
	Headline  string      `json:"headline"`
	Bio       string      `json:"bio"       gorm:"type:text"`
	Location  string      `json:"location"`
	Email     string      `json:"email"`
	Links     StringArray `json:"links"     gorm:"type:longtext"`
	Education []Education `json:"education" gorm:"type:longtext;serializer:json"`
	Skills    StringArray `json:"skills"    gorm:"type:longtext"`
}

func (ProfileModel) TableName() string { return "profiles" }

// Education is one academic entry embedded in the profile.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Note        string `json:"note,omitempty"`
}
