package memory

import (
	"context"
	"sort"

	"propertyhub/domain/enquiry"
	"propertyhub/infrastructure/persistence/po"
)

// EnquiryRepository in-memory implementation of enquiry.Repository
type EnquiryRepository struct {
	store *Store
}

func NewEnquiryRepository(store *Store) *EnquiryRepository {
	return &EnquiryRepository{store: store}
}

func (r *EnquiryRepository) Save(ctx context.Context, e *enquiry.Enquiry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	row := *po.FromEnquiryDomain(e)
	return r.store.write(ctx, op{
		apply: func(s *Store) {
			s.enquiries[row.ID] = row
		},
	})
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*enquiry.Enquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	row, ok := r.store.enquiries[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, enquiry.NewEnquiryNotFoundError(id)
	}
	return row.ToDomain(), nil
}

func (r *EnquiryRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*enquiry.Enquiry, error) {
	return r.filter(ctx, func(row *po.EnquiryPO) bool { return row.CustomerID == customerID })
}

func (r *EnquiryRepository) FindByOwnerID(ctx context.Context, ownerID string) ([]*enquiry.Enquiry, error) {
	return r.filter(ctx, func(row *po.EnquiryPO) bool { return row.OwnerID == ownerID })
}

func (r *EnquiryRepository) FindAll(ctx context.Context) ([]*enquiry.Enquiry, error) {
	return r.filter(ctx, func(*po.EnquiryPO) bool { return true })
}

func (r *EnquiryRepository) filter(ctx context.Context, match func(*po.EnquiryPO) bool) ([]*enquiry.Enquiry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	rows := make([]po.EnquiryPO, 0, len(r.store.enquiries))
	for _, row := range r.store.enquiries {
		if match(&row) {
			rows = append(rows, row)
		}
	}
	r.store.mu.RUnlock()

	// newest first, matching the relational ordering
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})

	list := make([]*enquiry.Enquiry, len(rows))
	for i := range rows {
		list[i] = rows[i].ToDomain()
	}
	return list, nil
}

var _ enquiry.Repository = (*EnquiryRepository)(nil)
