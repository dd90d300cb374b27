package models

// DocumentModel stores namespaced JSON documents, one row per logical path.
// The preference tier writes documents under
// artifacts/<appId>/users/<identity>/preferences/<key>.
type DocumentModel struct {
	Base
	Namespace string `json:"namespace" gorm:"not null;size:191;index:idx_documents_ns_key,unique"`
	Key       string `json:"key"       gorm:"not null;size:191;index:idx_documents_ns_key,unique"`
	Value     string `json:"value"     gorm:"type:longtext"`
}

func (DocumentModel) TableName() string { return "documents" }
