package domain

import "time"

type CustomerCategory string

const (
	CustomerCategoryNormal CustomerCategory = "NORMAL"
	CustomerCategoryVIP    CustomerCategory = "VIP"
)

type Customer struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Phone     string           `json:"phone"`
	Category  CustomerCategory `json:"category"`
	Active    bool             `json:"active"`
	CreatedOn time.Time        `json:"created_on"`
	UpdatedOn time.Time        `json:"updated_on"`
	DeletedOn *time.Time       `json:"deleted_on,omitempty"`
}

func (c *Customer) IsVIP() bool {
	return c.Category == CustomerCategoryVIP
}

// IsActiveCustomer reports whether the customer may enter new rentals.
func (c *Customer) IsActiveCustomer() bool {
	return c.Active && c.DeletedOn == nil
}
