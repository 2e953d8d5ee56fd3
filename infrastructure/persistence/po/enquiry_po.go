package po

import (
	"time"

	"propertyhub/domain/enquiry"
)

// EnquiryPO Enquiry persistence object, a flat record with a status column
type EnquiryPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	ListingID  int64     `gorm:"not null;index"`
	CustomerID string    `gorm:"size:64;not null;index"`
	OwnerID    string    `gorm:"size:64;not null;index"`
	Message    string    `gorm:"type:text;not null"`
	Status     string    `gorm:"size:20;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false;not null"`
}

// TableName Specify table name
func (EnquiryPO) TableName() string {
	return "enquiries"
}

// FromEnquiryDomain Convert domain model to persistence object
func FromEnquiryDomain(e *enquiry.Enquiry) *EnquiryPO {
	return &EnquiryPO{
		ID:         e.ID(),
		ListingID:  e.ListingID(),
		CustomerID: e.CustomerID(),
		OwnerID:    e.OwnerID(),
		Message:    e.Message(),
		Status:     string(e.Status()),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *EnquiryPO) ToDomain() *enquiry.Enquiry {
	return enquiry.RebuildFromDTO(enquiry.ReconstructionDTO{
		ID:         po.ID,
		ListingID:  po.ListingID,
		CustomerID: po.CustomerID,
		OwnerID:    po.OwnerID,
		Message:    po.Message,
		Status:     enquiry.Status(po.Status),
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	})
}
