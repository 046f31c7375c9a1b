package registration

import (
	"time"

	"gorm.io/gorm"
)

// DigitalID is the printable identity derived from an approved request.
// It materializes once per request and is mutated only by print/collect
// operator actions.
type DigitalID struct {
	gorm.Model
	RequestID          uint       `gorm:"not null;uniqueIndex" json:"requestId"`
	FullName           string     `gorm:"not null" json:"fullName"`
	NationalID         string     `gorm:"not null" json:"nationalId"`
	CompanyName        string     `gorm:"default:''" json:"companyName"`
	Position           string     `gorm:"default:''" json:"position"`
	PhotoPath          string     `gorm:"default:''" json:"photoPath"`
	QRPayload          string     `gorm:"type:text" json:"qrPayload"`
	IssueDate          time.Time  `gorm:"not null" json:"issueDate"`
	ExpiryDate         time.Time  `gorm:"not null;index" json:"expiryDate"`
	Printed            bool       `gorm:"default:false" json:"printed"`
	PrintedAt          *time.Time `json:"printedAt"`
	CollectedAt        *time.Time `json:"collectedAt"`
	CollectorName      string     `gorm:"default:''" json:"collectorName"`
	ExpiryReminderSent bool       `gorm:"default:false" json:"expiryReminderSent"`
	IsDeleted          bool       `gorm:"default:false" json:"isDeleted"`
}

func (DigitalID) TableName() string {
	return "digital_ids"
}

// ExpiryFromIssue returns the expiry date for an ID issued at the given
// time: same month and day of the next year. A Feb 29 issue date clamps to
// Feb 28 rather than rolling over to Mar 1.
func ExpiryFromIssue(issue time.Time) time.Time {
	y, m, d := issue.Date()
	if m == time.February && d == 29 {
		d = 28
	}
	return time.Date(y+1, m, d, issue.Hour(), issue.Minute(), issue.Second(), 0, issue.Location())
}
