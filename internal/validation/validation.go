// Package validation implements the field checks that gate checkout
// progression.
//
// The draft fields form two groups validated independently: the order
// group (payment, address) and the contacts group (email, phone). Each
// check recomputes its error mapping wholesale and has no side effects;
// broadcasting the result is the caller's concern.
package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/RaimNist/web-larek/internal/model"
)

// Messages surfaced to the user. The wording is policy; the FormErrors
// keys ("payment", "address", "email", "phone") are the contract.
const (
	MsgPaymentRequired = "choose a payment method"
	MsgAddressTooShort = "address must be at least 5 characters"
	MsgEmailInvalid    = "enter a valid email"
	MsgPhoneTooShort   = "phone must contain at least 11 digits"
)

var validate *validator.Validate

var (
	// Deliberately loose: anything shaped like local@domain.tld. The
	// server is the authority; client validation is advisory only.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	nonDigitRe = regexp.MustCompile(`\D`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("address", validateAddress)
	_ = validate.RegisterValidation("simple_email", validateSimpleEmail)
	_ = validate.RegisterValidation("phone_digits", validatePhoneDigits)
}

func validateAddress(fl validator.FieldLevel) bool {
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= 5
}

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return emailRe.MatchString(fl.Field().String())
}

func validatePhoneDigits(fl validator.FieldLevel) bool {
	digits := nonDigitRe.ReplaceAllString(fl.Field().String(), "")
	return len(digits) >= 11
}

// CheckOrder validates the payment/address group of the draft.
// Returns the recomputed error mapping and whether the group is valid
// (valid iff the mapping is empty).
func CheckOrder(d model.OrderDraft) (model.FormErrors, bool) {
	errs := model.FormErrors{}

	err := validate.StructPartial(d, "Payment", "Address")
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "Payment":
					errs[model.FieldPayment] = MsgPaymentRequired
				case "Address":
					errs[model.FieldAddress] = MsgAddressTooShort
				}
			}
		}
	}

	return errs, len(errs) == 0
}

// CheckContacts validates the email/phone group of the draft.
// Returns the recomputed error mapping and whether the group is valid.
func CheckContacts(d model.OrderDraft) (model.FormErrors, bool) {
	errs := model.FormErrors{}

	err := validate.StructPartial(d, "Email", "Phone")
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "Email":
					errs[model.FieldEmail] = MsgEmailInvalid
				case "Phone":
					errs[model.FieldPhone] = MsgPhoneTooShort
				}
			}
		}
	}

	return errs, len(errs) == 0
}

// Group identifies which validated field cluster a draft field belongs to.
type Group int

const (
	GroupNone Group = iota
	GroupOrder
	GroupContacts
)

// GroupOf maps a draft field name to its form group.
// Unknown fields map to GroupNone.
func GroupOf(field string) Group {
	switch field {
	case model.FieldPayment, model.FieldAddress:
		return GroupOrder
	case model.FieldEmail, model.FieldPhone:
		return GroupContacts
	default:
		return GroupNone
	}
}
