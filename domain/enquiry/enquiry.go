/*
Package enquiry Enquiry subdomain.

An Enquiry records a customer's interest in a listing and is addressed to
the listing's owner. Its status moves between NEW, RESPONDED and CLOSED in
any order; only administrators change it.
*/
package enquiry

import (
	"fmt"
	"strings"
	"time"

	"propertyhub/domain/identity"
	"propertyhub/domain/shared"

	"github.com/google/uuid"
)

// Status Enquiry status enum
type Status string

const (
	StatusNew       Status = "NEW"
	StatusResponded Status = "RESPONDED"
	StatusClosed    Status = "CLOSED"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusNew, StatusResponded, StatusClosed}

// ParseStatus matches value against the known statuses ignoring case and
// surrounding whitespace.
func ParseStatus(value string) (Status, error) {
	trimmed := strings.TrimSpace(value)
	for _, s := range Statuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", NewInvalidStatusError(value)
}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Enquiry Enquiry aggregate root
type Enquiry struct {
	shared.EventRecorder

	id         string
	listingID  int64
	customerID string
	ownerID    string
	message    string
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// PostOptions Create enquiry options
// CustomerID must come from the validated caller, never from the payload.
type PostOptions struct {
	ListingID  int64
	CustomerID string
	OwnerID    string
	Message    string
}

// NewEnquiry Create a NEW enquiry
func NewEnquiry(opts PostOptions) (*Enquiry, error) {
	message := strings.TrimSpace(opts.Message)
	if message == "" {
		return nil, NewValidationError(ErrEmptyMessage, "message", "Message is required")
	}
	if opts.ListingID <= 0 {
		return nil, NewValidationError(ErrInvalidListing, "listing_id", fmt.Sprintf("listing id must be positive, got %d", opts.ListingID))
	}
	customerID := strings.TrimSpace(opts.CustomerID)
	ownerID := strings.TrimSpace(opts.OwnerID)
	if customerID == "" {
		return nil, NewValidationError(ErrMissingParty, "customer_id", "customer is required")
	}
	if ownerID == "" {
		return nil, NewValidationError(ErrMissingParty, "owner_id", "owner_id is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate enquiry ID: %w", err)
	}

	now := time.Now().UTC()
	e := &Enquiry{
		id:         id.String(),
		listingID:  opts.ListingID,
		customerID: customerID,
		ownerID:    ownerID,
		message:    message,
		status:     StatusNew,
		createdAt:  now,
		updatedAt:  now,
	}
	e.Record(NewCreatedEvent(e.id, e.listingID, e.customerID, e.ownerID, now))

	return e, nil
}

// ReconstructionDTO Enquiry reconstruction data transfer object
// ⚠️ Repository layer only
type ReconstructionDTO struct {
	ID         string
	ListingID  int64
	CustomerID string
	OwnerID    string
	Message    string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RebuildFromDTO Reconstruct Enquiry aggregate root from storage
func RebuildFromDTO(dto ReconstructionDTO) *Enquiry {
	return &Enquiry{
		id:         dto.ID,
		listingID:  dto.ListingID,
		customerID: dto.CustomerID,
		ownerID:    dto.OwnerID,
		message:    dto.Message,
		status:     dto.Status,
		createdAt:  dto.CreatedAt,
		updatedAt:  dto.UpdatedAt,
	}
}

// UpdateStatus sets the status and refreshes updatedAt.
// Any transition is accepted, including to the current status.
func (e *Enquiry) UpdateStatus(status Status, changedBy string) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}

	from := e.status
	e.status = parsed
	e.updatedAt = time.Now().UTC()
	e.Record(NewStatusChangedEvent(e.id, from, parsed, changedBy, e.updatedAt))

	return nil
}

// VisibleTo reports whether caller may read this enquiry:
// administrators, the customer who wrote it and the owner it is addressed to.
func (e *Enquiry) VisibleTo(caller identity.Context) bool {
	if caller.IsAdmin() {
		return true
	}
	return caller.CallerID() == e.customerID || caller.CallerID() == e.ownerID
}

func (e *Enquiry) ID() string           { return e.id }
func (e *Enquiry) ListingID() int64     { return e.listingID }
func (e *Enquiry) CustomerID() string   { return e.customerID }
func (e *Enquiry) OwnerID() string      { return e.ownerID }
func (e *Enquiry) Message() string      { return e.message }
func (e *Enquiry) Status() Status       { return e.status }
func (e *Enquiry) CreatedAt() time.Time { return e.createdAt }
func (e *Enquiry) UpdatedAt() time.Time { return e.updatedAt }

var _ shared.AggregateRoot = (*Enquiry)(nil)
