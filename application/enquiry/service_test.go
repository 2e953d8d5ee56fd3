package enquiry_test

import (
	"context"
	"errors"
	"testing"

	appenquiry "propertyhub/application/enquiry"
	"propertyhub/domain/enquiry"
	"propertyhub/domain/identity"
	"propertyhub/domain/shared"
	"propertyhub/infrastructure/persistence/memory"
	"propertyhub/infrastructure/persistence/retry"
)

func newService() (*appenquiry.ApplicationService, *memory.OutboxRepository) {
	store := memory.NewStore()
	service := appenquiry.NewApplicationService(
		memory.NewEnquiryRepository(store),
		memory.NewUnitOfWorkFactory(store, retry.DefaultConfig),
	)
	return service, memory.NewOutboxRepository(store)
}

func as(t *testing.T, id, role string) identity.Context {
	t.Helper()
	caller, err := identity.Validate(id, role)
	if err != nil {
		t.Fatal(err)
	}
	return caller
}

func TestCreateEnquiry(t *testing.T) {
	ctx := context.Background()
	service, outbox := newService()

	resp, err := service.CreateEnquiry(ctx, as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{
		ListingID:  42,
		OwnerID:    "o1",
		Message:    "Is it still available?",
		CustomerID: "someone-else",
	})
	if err != nil {
		t.Fatalf("CreateEnquiry() error = %v", err)
	}
	if resp.CustomerID != "c1" {
		t.Errorf("CustomerID = %q, want the caller", resp.CustomerID)
	}
	if resp.Status != "NEW" || resp.ID == "" {
		t.Errorf("response = %+v", resp)
	}
	if events := outbox.Events(); len(events) != 1 || events[0].EventType != "enquiry.created" {
		t.Errorf("outbox = %+v", events)
	}

	tests := []struct {
		name    string
		caller  identity.Context
		req     appenquiry.CreateEnquiryRequest
		wantErr error
	}{
		{"admin cannot create", as(t, "a1", "ADMIN"), appenquiry.CreateEnquiryRequest{ListingID: 1, OwnerID: "o1", Message: "hi"}, shared.ErrForbidden},
		{"anonymous", identity.Context{}, appenquiry.CreateEnquiryRequest{ListingID: 1, OwnerID: "o1", Message: "hi"}, shared.ErrUnauthenticated},
		{"blank message", as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{ListingID: 1, OwnerID: "o1", Message: "   "}, enquiry.ErrEmptyMessage},
		{"bad listing", as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{ListingID: 0, OwnerID: "o1", Message: "hi"}, shared.ErrInvalidInput},
		{"missing owner", as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{ListingID: 1, Message: "hi"}, enquiry.ErrMissingParty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := service.CreateEnquiry(ctx, tt.caller, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateEnquiry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if n := len(outbox.Events()); n != 1 {
		t.Errorf("failed creations wrote events: %d", n)
	}
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	for _, req := range []struct{ customer, owner string }{
		{"c1", "o1"}, {"c1", "o2"}, {"c2", "o1"},
	} {
		if _, err := service.CreateEnquiry(ctx, as(t, req.customer, "CUSTOMER"), appenquiry.CreateEnquiryRequest{
			ListingID: 42, OwnerID: req.owner, Message: "hello",
		}); err != nil {
			t.Fatal(err)
		}
	}

	mine, err := service.ListForCustomer(ctx, as(t, "c1", "CUSTOMER"))
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListForCustomer() = %d, %v", len(mine), err)
	}
	if mine[0].OwnerID != "o2" {
		t.Errorf("newest first expected, got owner %s first", mine[0].OwnerID)
	}

	if _, err := service.ListForCustomer(ctx, as(t, "a1", "ADMIN")); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("admin ListForCustomer() = %v, want forbidden", err)
	}

	all, err := service.ListForAdmin(ctx, as(t, "a1", "ADMIN"), "")
	if err != nil || len(all) != 3 {
		t.Errorf("ListForAdmin() = %d, %v", len(all), err)
	}
	filtered, _ := service.ListForAdmin(ctx, as(t, "a1", "ADMIN"), "o1")
	if len(filtered) != 2 {
		t.Errorf("ListForAdmin(o1) = %d, want 2", len(filtered))
	}
	if _, err := service.ListForAdmin(ctx, as(t, "c1", "CUSTOMER"), ""); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("customer ListForAdmin() = %v, want forbidden", err)
	}

	owned, err := service.ListForOwner(ctx, as(t, "o1", "CUSTOMER"))
	if err != nil || len(owned) != 2 {
		t.Errorf("ListForOwner() = %d, %v", len(owned), err)
	}

	none, err := service.ListForCustomer(ctx, as(t, "c9", "CUSTOMER"))
	if err != nil || len(none) != 0 {
		t.Errorf("ListForCustomer(c9) = %v, %v", none, err)
	}
}

func TestGetEnquiryVisibility(t *testing.T) {
	ctx := context.Background()
	service, _ := newService()

	created, _ := service.CreateEnquiry(ctx, as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{
		ListingID: 42, OwnerID: "o1", Message: "hello",
	})

	for _, caller := range []identity.Context{as(t, "c1", "CUSTOMER"), as(t, "o1", "CUSTOMER"), as(t, "a1", "ADMIN")} {
		if _, err := service.GetEnquiry(ctx, caller, created.ID); err != nil {
			t.Errorf("GetEnquiry() as %s = %v", caller.CallerID(), err)
		}
	}
	if _, err := service.GetEnquiry(ctx, as(t, "c2", "CUSTOMER"), created.ID); !errors.Is(err, shared.ErrForbidden) {
		t.Errorf("stranger GetEnquiry() = %v, want forbidden", err)
	}
	if _, err := service.GetEnquiry(ctx, as(t, "a1", "ADMIN"), "missing"); !errors.Is(err, enquiry.ErrEnquiryNotFound) {
		t.Errorf("GetEnquiry(missing) = %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	service, outbox := newService()
	admin := as(t, "a1", "ADMIN")

	created, _ := service.CreateEnquiry(ctx, as(t, "c1", "CUSTOMER"), appenquiry.CreateEnquiryRequest{
		ListingID: 42, OwnerID: "o1", Message: "hello",
	})

	resp, err := service.UpdateStatus(ctx, admin, created.ID, appenquiry.UpdateStatusRequest{Status: " responded "})
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.Status != "RESPONDED" || resp.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("response = %+v", resp)
	}

	// any transition is allowed, including back to NEW
	if _, err := service.UpdateStatus(ctx, admin, created.ID, appenquiry.UpdateStatusRequest{Status: "NEW"}); err != nil {
		t.Errorf("UpdateStatus(NEW) = %v", err)
	}

	events := outbox.Events()
	if got := events[len(events)-1].EventType; got != "enquiry.status_changed" {
		t.Errorf("last event = %s", got)
	}

	tests := []struct {
		name    string
		caller  identity.Context
		id      string
		status  string
		wantErr error
	}{
		{"customer is forbidden", as(t, "c1", "CUSTOMER"), created.ID, "CLOSED", shared.ErrForbidden},
		{"role checked before existence", as(t, "c1", "CUSTOMER"), "missing", "CLOSED", shared.ErrForbidden},
		{"existence checked before status", admin, "missing", "bogus", enquiry.ErrEnquiryNotFound},
		{"invalid status", admin, created.ID, "ARCHIVED", enquiry.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.UpdateStatus(ctx, tt.caller, tt.id, appenquiry.UpdateStatusRequest{Status: tt.status})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateStatus() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	got, _ := service.GetEnquiry(ctx, admin, created.ID)
	if got.Status != "NEW" {
		t.Errorf("failed updates changed status to %s", got.Status)
	}
}
