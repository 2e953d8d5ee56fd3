package enquiry

import (
	"propertyhub/domain/enquiry"
)

func toEnquiryResponse(e *enquiry.Enquiry) *EnquiryResponse {
	return &EnquiryResponse{
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

func toEnquiryResponses(list []*enquiry.Enquiry) []*EnquiryResponse {
	responses := make([]*EnquiryResponse, len(list))
	for i, e := range list {
		responses[i] = toEnquiryResponse(e)
	}
	return responses
}
