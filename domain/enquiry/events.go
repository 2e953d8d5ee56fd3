package enquiry

import "time"

type CreatedEvent struct {
	enquiryID  string
	listingID  int64
	customerID string
	ownerID    string
	occurredOn time.Time
}

func NewCreatedEvent(enquiryID string, listingID int64, customerID, ownerID string, at time.Time) *CreatedEvent {
	return &CreatedEvent{
		enquiryID:  enquiryID,
		listingID:  listingID,
		customerID: customerID,
		ownerID:    ownerID,
		occurredOn: at,
	}
}

func (e *CreatedEvent) EventName() string      { return "enquiry.created" }
func (e *CreatedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *CreatedEvent) GetAggregateID() string { return e.enquiryID }
func (e *CreatedEvent) ListingID() int64       { return e.listingID }
func (e *CreatedEvent) CustomerID() string     { return e.customerID }
func (e *CreatedEvent) OwnerID() string        { return e.ownerID }

func (e *CreatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"listing_id":  e.listingID,
		"customer_id": e.customerID,
		"owner_id":    e.ownerID,
	}
}

type StatusChangedEvent struct {
	enquiryID  string
	from       Status
	to         Status
	changedBy  string
	occurredOn time.Time
}

func NewStatusChangedEvent(enquiryID string, from, to Status, changedBy string, at time.Time) *StatusChangedEvent {
	return &StatusChangedEvent{
		enquiryID:  enquiryID,
		from:       from,
		to:         to,
		changedBy:  changedBy,
		occurredOn: at,
	}
}

func (e *StatusChangedEvent) EventName() string      { return "enquiry.status_changed" }
func (e *StatusChangedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *StatusChangedEvent) GetAggregateID() string { return e.enquiryID }
func (e *StatusChangedEvent) From() Status           { return e.from }
func (e *StatusChangedEvent) To() Status             { return e.to }
func (e *StatusChangedEvent) ChangedBy() string      { return e.changedBy }

func (e *StatusChangedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"from":       string(e.from),
		"to":         string(e.to),
		"changed_by": e.changedBy,
	}
}
