package domain

// ShoppingItem is one consolidated line of a shopping list: every cart
// recipe's amounts for the same (name, unit) pair summed together.
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}
