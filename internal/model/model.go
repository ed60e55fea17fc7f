package model

// Product is a single catalog entry.
//
// Products are immutable once loaded: the catalog is replaced wholesale on
// every load, never merged. A nil Price means the product is priceless and
// cannot contribute to a basket total.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       *int   `json:"price"`
}

// Priced reports whether the product carries a price.
func (p Product) Priced() bool {
	return p.Price != nil
}

// Payment methods accepted by the storefront.
// An empty string means "not chosen yet".
const (
	PaymentCard = "card"
	PaymentCash = "cash"
)

// Draft field names as they appear in field-change events and in
// FormErrors keys. These are the only fields settable through
// State.SetOrderField; anything else is silently ignored.
const (
	FieldPayment = "payment"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

// OrderDraft is the in-progress checkout form data. It lives for one
// checkout attempt and is reset to the zero value after a successful
// submission.
//
// Total is derived from the basket and catalog; it is never set directly.
// The validate tags drive the validation engine; see internal/validation
// for the registered custom rules.
type OrderDraft struct {
	Payment string `json:"payment" validate:"required"`
	Address string `json:"address" validate:"address"`
	Email   string `json:"email" validate:"simple_email"`
	Phone   string `json:"phone" validate:"phone_digits"`
	Total   int    `json:"total" validate:"-"`
}

// FormErrors maps a draft field name to a human-readable message.
// The mapping is recomputed wholesale on every validation call: a key
// present means the field failed its last check, a key absent means it
// passed (or was never checked). Empty FormErrors signals a valid group.
type FormErrors map[string]string

// Order is the submission body sent to POST /order.
// Items holds the basket's product identifiers in insertion order.
type Order struct {
	Payment string   `json:"payment"`
	Address string   `json:"address"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Items   []string `json:"items"`
	Total   int      `json:"total"`
}

// OrderResult is the confirmation returned by the order endpoint.
type OrderResult struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}
