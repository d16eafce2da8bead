package dto

// UpdateCustomerRequest is the admin-side account edit. Same partial-update
// semantics as UpdateProfileRequest, plus the email.
type UpdateCustomerRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=2,max=80"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Password   *string `json:"password"   validate:"omitempty,min=6"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postalCode"`
	Image      *string `json:"image"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
