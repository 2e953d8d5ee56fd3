package relational

import (
	"context"
	"errors"

	"propertyhub/domain/enquiry"
	"propertyhub/infrastructure/persistence"
	"propertyhub/infrastructure/persistence/po"

	"gorm.io/gorm"
)

// EnquiryRepository GORM implementation of enquiry repository
type EnquiryRepository struct {
	db *gorm.DB
}

// NewEnquiryRepository Create enquiry repository
func NewEnquiryRepository(db *gorm.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Insert or update the enquiry row
func (r *EnquiryRepository) Save(ctx context.Context, e *enquiry.Enquiry) error {
	return r.getDB(ctx).Save(po.FromEnquiryDomain(e)).Error
}

// FindByID Find enquiry by ID
func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*enquiry.Enquiry, error) {
	var enquiryPO po.EnquiryPO
	if err := r.getDB(ctx).First(&enquiryPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, enquiry.NewEnquiryNotFoundError(id)
		}
		return nil, err
	}
	return enquiryPO.ToDomain(), nil
}

// FindByCustomerID Enquiries written by customerID, newest first
func (r *EnquiryRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*enquiry.Enquiry, error) {
	return r.find(r.getDB(ctx).Where("customer_id = ?", customerID))
}

// FindByOwnerID Enquiries addressed to ownerID, newest first
func (r *EnquiryRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*enquiry.Enquiry, error) {
	return r.find(r.getDB(ctx).Where("owner_id = ?", ownerID))
}

// FindAll Every enquiry, newest first
func (r *EnquiryRepository) FindAll(ctx context.Context) ([]*enquiry.Enquiry, error) {
	return r.find(r.getDB(ctx))
}

func (r *EnquiryRepository) find(query *gorm.DB) ([]*enquiry.Enquiry, error) {
	var enquiryPOs []po.EnquiryPO
	if err := query.Order("created_at DESC, id DESC").Find(&enquiryPOs).Error; err != nil {
		return nil, err
	}

	list := make([]*enquiry.Enquiry, len(enquiryPOs))
	for i := range enquiryPOs {
		list[i] = enquiryPOs[i].ToDomain()
	}
	return list, nil
}

// Compile-time interface implementation check
var _ enquiry.Repository = (*EnquiryRepository)(nil)
