/*
Package enquiry Application Layer - enquiry use cases

Role checks happen before any storage access. Status updates check role,
then existence, then the status value.
*/
package enquiry

import (
	"context"

	"propertyhub/domain/enquiry"
	"propertyhub/domain/identity"
	"propertyhub/domain/shared"
)

// ApplicationService Enquiry application service
type ApplicationService struct {
	enquiryRepo enquiry.Repository
	uowFactory  shared.UnitOfWorkFactory
}

// NewApplicationService Create enquiry application service
func NewApplicationService(enquiryRepo enquiry.Repository, uowFactory shared.UnitOfWorkFactory) *ApplicationService {
	return &ApplicationService{
		enquiryRepo: enquiryRepo,
		uowFactory:  uowFactory,
	}
}

// CreateEnquiry records a NEW enquiry from a customer.
// The customer is always the caller; req.CustomerID is ignored.
func (s *ApplicationService) CreateEnquiry(ctx context.Context, caller identity.Context, req CreateEnquiryRequest) (*EnquiryResponse, error) {
	if err := caller.RequireRole(identity.RoleCustomer); err != nil {
		return nil, err
	}

	var e *enquiry.Enquiry
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = enquiry.NewEnquiry(enquiry.PostOptions{
			ListingID:  req.ListingID,
			CustomerID: caller.CallerID(),
			OwnerID:    req.OwnerID,
			Message:    req.Message,
		})
		if err != nil {
			return err
		}

		if err := s.enquiryRepo.Save(ctx, e); err != nil {
			return err
		}
		uow.RegisterNew(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toEnquiryResponse(e), nil
}

// ListForCustomer returns the caller's own enquiries.
func (s *ApplicationService) ListForCustomer(ctx context.Context, caller identity.Context) ([]*EnquiryResponse, error) {
	if err := caller.RequireRole(identity.RoleCustomer); err != nil {
		return nil, err
	}

	list, err := s.enquiryRepo.FindByCustomerID(ctx, caller.CallerID())
	if err != nil {
		return nil, err
	}
	return toEnquiryResponses(list), nil
}

// ListForAdmin returns every enquiry, or only those addressed to ownerID when set.
func (s *ApplicationService) ListForAdmin(ctx context.Context, caller identity.Context, ownerID string) ([]*EnquiryResponse, error) {
	if err := caller.RequireRole(identity.RoleAdmin); err != nil {
		return nil, err
	}

	var (
		list []*enquiry.Enquiry
		err  error
	)
	if ownerID != "" {
		list, err = s.enquiryRepo.FindByOwnerID(ctx, ownerID)
	} else {
		list, err = s.enquiryRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toEnquiryResponses(list), nil
}

// ListForOwner returns enquiries addressed to the caller as listing owner.
func (s *ApplicationService) ListForOwner(ctx context.Context, caller identity.Context) ([]*EnquiryResponse, error) {
	if caller.IsZero() {
		return nil, shared.NewUnauthenticatedError("missing caller identity")
	}

	list, err := s.enquiryRepo.FindByOwnerID(ctx, caller.CallerID())
	if err != nil {
		return nil, err
	}
	return toEnquiryResponses(list), nil
}

// GetEnquiry returns one enquiry if the caller may see it.
func (s *ApplicationService) GetEnquiry(ctx context.Context, caller identity.Context, id string) (*EnquiryResponse, error) {
	if caller.IsZero() {
		return nil, shared.NewUnauthenticatedError("missing caller identity")
	}

	e, err := s.enquiryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !e.VisibleTo(caller) {
		return nil, shared.NewForbiddenError("enquiry", "enquiry belongs to another user")
	}
	return toEnquiryResponse(e), nil
}

// UpdateStatus lets an administrator move an enquiry to any status.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller identity.Context, id string, req UpdateStatusRequest) (*EnquiryResponse, error) {
	if err := caller.RequireRole(identity.RoleAdmin); err != nil {
		return nil, err
	}

	var e *enquiry.Enquiry
	uow := s.uowFactory.New()
	err := uow.Execute(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.enquiryRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		status, err := enquiry.ParseStatus(req.Status)
		if err != nil {
			return err
		}

		if err := e.UpdateStatus(status, caller.CallerID()); err != nil {
			return err
		}

		if err := s.enquiryRepo.Save(ctx, e); err != nil {
			return err
		}

		uow.RegisterDirty(e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toEnquiryResponse(e), nil
}
