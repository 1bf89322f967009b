package adminpanel

// CompanyInput carries create/update fields for a company.
type CompanyInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty"`
}

// CreateUserInput carries the fields for a new account. The password pair is
// checked locally before anything reaches the network.
type CreateUserInput struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Role            string `json:"role" validate:"required"`
	CompanyID       string `json:"company_id,omitempty"`
	VesselID        string `json:"vessel_id,omitempty"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// UpdateUserInput carries editable account fields. A blank password leaves
// the credential untouched.
type UpdateUserInput struct {
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Role            string `json:"role,omitempty"`
	CompanyID       string `json:"company_id,omitempty"`
	VesselID        string `json:"vessel_id,omitempty"`
	Password        string `json:"password,omitempty" validate:"omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password,omitempty" validate:"eqfield=Password"`
}

// VesselInput carries create/update fields for a vessel.
type VesselInput struct {
	Name      string `json:"name" validate:"required"`
	IMONumber string `json:"imo_number,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// InventoryInput carries create/update fields for a stocked item. Quantity
// may not go negative.
type InventoryInput struct {
	VesselID    string  `json:"vessel_id,omitempty"`
	Description string  `json:"description" validate:"required"`
	Maker       string  `json:"maker,omitempty"`
	PartNo      string  `json:"part_no,omitempty"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	Location    string  `json:"location,omitempty"`
}
