package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentCategory struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`
}

// Document is the master entity of the document library. FilePath, FileType,
// FileSize and CurrentVersion always point at the latest version's file.
type Document struct {
	gorm.Model
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	FilePath       string         `gorm:"not null" json:"filePath"`
	FileType       string         `gorm:"default:''" json:"fileType"`
	FileSize       int64          `gorm:"default:0" json:"fileSize"`
	CategoryID     *uint          `gorm:"index" json:"categoryId"`
	OwnerID        uint           `gorm:"not null;index" json:"ownerId"`
	Encrypted      bool           `gorm:"default:false" json:"encrypted"`
	Metadata       datatypes.JSON `json:"metadata,omitempty"`
	Keywords       string         `gorm:"type:text;default:''" json:"keywords"` // comma separated
	CurrentVersion int            `gorm:"default:0" json:"currentVersion"`
	IsDeleted      bool           `gorm:"default:false" json:"isDeleted"`

	// Relations
	Category *DocumentCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Versions []DocumentVersion `gorm:"foreignKey:DocumentID" json:"versions,omitempty"`
}

// DocumentVersion is an immutable snapshot of a document's file. Version
// numbers per document are unique and gapless: next = max existing + 1.
type DocumentVersion struct {
	gorm.Model
	DocumentID    uint   `gorm:"not null;uniqueIndex:idx_document_version" json:"documentId"`
	VersionNumber int    `gorm:"not null;uniqueIndex:idx_document_version" json:"versionNumber"`
	FilePath      string `gorm:"not null" json:"filePath"`
	FileType      string `gorm:"default:''" json:"fileType"`
	FileSize      int64  `gorm:"default:0" json:"fileSize"`
	CreatedBy     uint   `gorm:"not null" json:"createdBy"`
	ChangeSummary string `gorm:"type:text" json:"changeSummary"`
}

func (DocumentVersion) TableName() string {
	return "document_versions"
}
