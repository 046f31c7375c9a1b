package registration

import (
	"time"

	"gorm.io/gorm"
)

// RequestType enum values
const (
	TypeEmployee = "EMPLOYEE"
	TypeCompany  = "COMPANY"
)

// RequestStatus enum values. PENDING is the only non-terminal state:
// approved and rejected requests are never transitioned again, a
// resubmission is a brand new request row.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// RegistrationRequest is one subject's submission pending review. Employee
// and company submissions share the table, discriminated by RequestType.
// Rows are never hard-deleted.
type RegistrationRequest struct {
	gorm.Model
	RequestNumber       string     `gorm:"uniqueIndex;not null" json:"requestNumber"`
	RequestType         string     `gorm:"not null;type:varchar(10)" json:"requestType"` // EMPLOYEE, COMPANY
	SubmittedBy         uint       `gorm:"not null;index" json:"submittedBy"`
	SubjectName         string     `gorm:"not null" json:"subjectName"`
	NationalID          string     `gorm:"not null;index" json:"nationalId"`
	CompanyID           *uint      `gorm:"index" json:"companyId"` // employee requests only
	Position            string     `gorm:"default:''" json:"position"`
	Phone               string     `gorm:"default:''" json:"phone"`
	Status              string     `gorm:"not null;type:varchar(10);default:'PENDING';index" json:"status"`
	SubmittedAt         time.Time  `gorm:"not null" json:"submittedAt"`
	ReviewedBy          *uint      `json:"reviewedBy"`
	ReviewedAt          *time.Time `json:"reviewedAt"`
	RejectionReason     string     `gorm:"type:text" json:"rejectionReason"` // set iff REJECTED
	Notes               string     `gorm:"type:text" json:"notes"`
	ReminderSent        bool       `gorm:"default:false" json:"reminderSent"`
	MissingDocsNotified bool       `gorm:"default:false" json:"missingDocsNotified"`
	IsDeleted           bool       `gorm:"default:false" json:"isDeleted"`

	// Relations
	Documents []RequestDocument `gorm:"foreignKey:RequestID" json:"documents,omitempty"`
	History   []RequestHistory  `gorm:"foreignKey:RequestID" json:"history,omitempty"`
	DigitalID *DigitalID        `gorm:"foreignKey:RequestID" json:"digitalId,omitempty"`
}

func (RegistrationRequest) TableName() string {
	return "registration_requests"
}
