package enquiry

import "context"

// Repository Enquiry repository interface
// List methods return enquiries newest first
type Repository interface {
	// Save Insert or update the enquiry row
	Save(ctx context.Context, enquiry *Enquiry) error

	// FindByID Returns ErrEnquiryNotFound when absent
	FindByID(ctx context.Context, id string) (*Enquiry, error)

	// FindByCustomerID Enquiries written by customerID
	FindByCustomerID(ctx context.Context, customerID string) ([]*Enquiry, error)

	// FindByOwnerID Enquiries addressed to ownerID
	FindByOwnerID(ctx context.Context, ownerID string) ([]*Enquiry, error)

	// FindAll Every enquiry, for administrators
	FindAll(ctx context.Context) ([]*Enquiry, error)
}
