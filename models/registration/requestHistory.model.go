package registration

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HistoryAction enum values
const (
	ActionSubmitted        = "SUBMITTED"
	ActionDocumentAttached = "DOCUMENT_ATTACHED"
	ActionDocumentVerified = "DOCUMENT_VERIFIED"
	ActionDocumentRejected = "DOCUMENT_REJECTED"
	ActionApproved         = "APPROVED"
	ActionRejected         = "REJECTED"
	ActionIDGenerated      = "ID_GENERATED"
	ActionIDPrinted        = "ID_PRINTED"
	ActionIDCollected      = "ID_COLLECTED"
)

// ActorType enum values
const (
	ActorApplicant = "APPLICANT"
	ActorReviewer  = "REVIEWER"
	ActorSystem    = "SYSTEM"
)

// RequestHistory is the append-only audit log for a registration request.
// Snapshot carries the request's state as it was before the action.
type RequestHistory struct {
	gorm.Model
	RequestID uint           `gorm:"not null;index" json:"requestId"`
	Action    string         `gorm:"not null;type:varchar(30)" json:"action"`
	ActorID   uint           `gorm:"not null" json:"actorId"`
	ActorType string         `gorm:"not null;type:varchar(10)" json:"actorType"`
	Comments  string         `gorm:"type:text" json:"comments"`
	Snapshot  datatypes.JSON `json:"snapshot,omitempty"`
}

func (RequestHistory) TableName() string {
	return "request_history"
}
