package company

// CreateCompanyRequest is the payload to register a tenant.
type CreateCompanyRequest struct {
	Name string `json:"company_name" validate:"required,max=30"`
}

// UpdateCompanyRequest replaces the company name.
type UpdateCompanyRequest struct {
	Name string `json:"company_name" validate:"required,max=30"`
}
