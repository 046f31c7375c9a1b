package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationType enum values
const (
	NotifRequestSubmitted = "request_submitted"
	NotifRequestApproved  = "request_approved"
	NotifRequestRejected  = "request_rejected"
	NotifIDGenerated      = "id_generated"
	NotifMissingDocuments = "missing_documents"
	NotifDocumentRejected = "document_rejected"
	NotifAdminAlert       = "admin_alert"
)

// Notification is an in-app notification record. Rows are created once per
// workflow event and only ever mutated to flip the read flag.
type Notification struct {
	gorm.Model
	RecipientID uint           `gorm:"not null;index" json:"recipientId"`
	Type        string         `gorm:"not null;type:varchar(30)" json:"type"`
	Title       string         `gorm:"not null" json:"title"`
	Message     string         `gorm:"type:text" json:"message"`
	IsRead      bool           `gorm:"default:false" json:"isRead"`
	ReadAt      *time.Time     `json:"readAt"`
	Metadata    datatypes.JSON `json:"metadata,omitempty"`
	RequestID   *uint          `gorm:"index" json:"requestId"`
	IsDeleted   bool           `gorm:"default:false" json:"isDeleted"`
}
