// Package account holds the records shown in the customer account area, the
// boundary interfaces used to fetch and mutate them, and the pure projections
// derived from them.
package account

import (
	"strings"
	"time"
)

// Role classifies the signed-in user for menu gating.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleProductManager Role = "product_manager"
	RoleSalesManager   Role = "sales_manager"
	RoleSupportAgent   Role = "support_agent"
	RoleSupportAdmin   Role = "support_admin"
)

var managementRoles = map[Role]struct{}{
	RoleProductManager: {},
	RoleSalesManager:   {},
	RoleSupportAgent:   {},
	RoleSupportAdmin:   {},
}

// IsManagement reports whether the role belongs to store staff rather than a
// shopper.
func (r Role) IsManagement() bool {
	_, ok := managementRoles[Role(strings.ToLower(strings.TrimSpace(string(r))))]
	return ok
}

// PersonalDetails is the editable part of the user profile.
type PersonalDetails struct {
	FirstName string `yaml:"firstName" json:"firstName" validate:"required,max=64"`
	LastName  string `yaml:"lastName" json:"lastName" validate:"required,max=64"`
	Email     string `yaml:"email" json:"email" validate:"required,email"`
	Phone     string `yaml:"phone" json:"phone" validate:"omitempty,max=32,phone"`
}

// User is the committed profile record owned by the profile service.
type User struct {
	ID              string `yaml:"id"`
	Role            Role   `yaml:"role"`
	PersonalDetails `yaml:",inline"`
}

// Address is a saved shipping address.
type Address struct {
	ID        int    `yaml:"id"`
	Type      string `yaml:"type"`
	Name      string `yaml:"name"`
	Street    string `yaml:"street"`
	City      string `yaml:"city"`
	State     string `yaml:"state"`
	Zip       string `yaml:"zip"`
	Country   string `yaml:"country"`
	IsDefault bool   `yaml:"isDefault"`
}

// Locality renders the "City, ST 00000" line.
func (a Address) Locality() string {
	return strings.TrimSpace(a.City + ", " + a.State + " " + a.Zip)
}

// OrderStatus is the status key reported by the order service.
type OrderStatus string

const (
	OrderProcessing      OrderStatus = "processing"
	OrderInTransit       OrderStatus = "in-transit"
	OrderDelivered       OrderStatus = "delivered"
	OrderCancelled       OrderStatus = "cancelled"
	OrderRefundRequested OrderStatus = "refund_requested"
	OrderRefunded        OrderStatus = "refunded"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderProcessing:      "Processing",
	OrderInTransit:       "In Transit",
	OrderDelivered:       "Delivered",
	OrderCancelled:       "Cancelled",
	OrderRefundRequested: "Refund Requested",
	OrderRefunded:        "Refunded",
}

// Label returns the display label for the status. Unknown keys are shown as-is.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// OrderItem is a single line of an order.
type OrderItem struct {
	Name     string  `yaml:"name"`
	Quantity int     `yaml:"quantity"`
	Price    float64 `yaml:"price"`
}

// Order is a read-only order summary.
type Order struct {
	ID     string      `yaml:"id"`
	Date   time.Time   `yaml:"date"`
	Total  float64     `yaml:"total"`
	Status OrderStatus `yaml:"status"`
	Items  []OrderItem `yaml:"items"`
}

// ItemCount sums item quantities; lines without a quantity count once.
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			total++
			continue
		}
		total += item.Quantity
	}
	return total
}

// RefundEligible reports whether a refund may still be requested.
func (o Order) RefundEligible() bool {
	switch o.Status {
	case OrderRefunded, OrderCancelled, OrderRefundRequested:
		return false
	}
	return true
}

// CancelEligible reports whether the order can still be cancelled.
func (o Order) CancelEligible() bool {
	return o.Status == OrderProcessing
}

// Invoice is a read-only invoice summary.
type Invoice struct {
	ID      string    `yaml:"id"`
	OrderID string    `yaml:"orderId"`
	Date    time.Time `yaml:"date"`
	Amount  float64   `yaml:"amount"`
	Status  string    `yaml:"status"`
}

// DateLayout is the layout used to display order and invoice dates.
const DateLayout = "2006-01-02"
