package account

// NoOrdersLabel is shown as the last order status when there are no orders.
const NoOrdersLabel = "No Orders"

// Summary holds the dashboard aggregates.
type Summary struct {
	FirstName         string
	TotalOrders       int
	LastOrderStatus   string
	SavedAddressCount int
}

// Summarize derives the dashboard aggregates. Orders must already be sorted
// newest-first; the first entry is taken as the latest order.
func Summarize(user PersonalDetails, orders []Order, addresses []Address) Summary {
	last := NoOrdersLabel
	if len(orders) > 0 {
		last = orders[0].Status.Label()
	}
	return Summary{
		FirstName:         user.FirstName,
		TotalOrders:       len(orders),
		LastOrderStatus:   last,
		SavedAddressCount: len(addresses),
	}
}

// FindOrder returns the order with the given id.
func FindOrder(orders []Order, id string) (Order, bool) {
	for _, order := range orders {
		if order.ID == id {
			return order, true
		}
	}
	return Order{}, false
}

// DefaultAddress returns the address flagged as default, if any.
func DefaultAddress(addresses []Address) (Address, bool) {
	for _, addr := range addresses {
		if addr.IsDefault {
			return addr, true
		}
	}
	return Address{}, false
}
