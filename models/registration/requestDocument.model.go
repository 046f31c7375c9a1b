package registration

import (
	"gorm.io/gorm"
)

// Document slot names. Each request type has a fixed set of slots so that an
// unknown slot is rejected at the boundary instead of landing in a loose map.
const (
	SlotIDCard              = "id_card"
	SlotPersonalPhoto       = "personal_photo"
	SlotInsuranceDoc        = "insurance_doc"
	SlotAuthorizationLetter = "authorization_letter"
	SlotCommercialRecord    = "commercial_record"
	SlotTaxCard             = "tax_card"
)

var employeeSlots = map[string]bool{
	SlotIDCard:              true,
	SlotPersonalPhoto:       true,
	SlotInsuranceDoc:        true,
	SlotAuthorizationLetter: true,
}

var companySlots = map[string]bool{
	SlotCommercialRecord:    true,
	SlotTaxCard:             true,
	SlotAuthorizationLetter: true,
	SlotIDCard:              true, // representative's ID
}

var requiredSlots = map[string][]string{
	TypeEmployee: {SlotIDCard, SlotPersonalPhoto, SlotInsuranceDoc},
	TypeCompany:  {SlotCommercialRecord, SlotTaxCard, SlotAuthorizationLetter},
}

// KnownSlot reports whether slot is valid for the given request type
func KnownSlot(requestType, slot string) bool {
	switch requestType {
	case TypeEmployee:
		return employeeSlots[slot]
	case TypeCompany:
		return companySlots[slot]
	}
	return false
}

// RequiredSlots returns the slots a request of the given type must fill
// before its digital ID can be considered complete
func RequiredSlots(requestType string) []string {
	return requiredSlots[requestType]
}

// RequestDocument is one filled document slot on a request. One row per
// (request, slot); re-attaching replaces the row.
type RequestDocument struct {
	gorm.Model
	RequestID  uint   `gorm:"not null;uniqueIndex:idx_request_slot" json:"requestId"`
	Slot       string `gorm:"not null;type:varchar(30);uniqueIndex:idx_request_slot" json:"slot"`
	FilePath   string `gorm:"not null" json:"filePath"`
	FileType   string `gorm:"default:''" json:"fileType"`
	FileSize   int64  `gorm:"default:0" json:"fileSize"`
	Verified   bool   `gorm:"default:false" json:"verified"`
	UploadedBy uint   `gorm:"not null" json:"uploadedBy"`
}

func (RequestDocument) TableName() string {
	return "request_documents"
}
