// Package validation turns raw form submissions into typed records.
//
// Rules are declared as struct tags and evaluated by go-playground/validator.
// Every failing field is reported, keyed by the name in its `field` tag, so a
// rejected submission carries all of its problems at once.
package validation

import (
	"errors"
	"math"
	"net/url"
	"reflect"
	"strings"

	"invoice-dashboard-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps a field name to its messages, in rule order.
type FieldErrors map[string][]string

const (
	// formField keys an error that belongs to the submission as a whole.
	formField    = "form"
	invalidValue = "Invalid value."
)

type InvoiceRecord struct {
	CustomerID string               `field:"customerId" validate:"required"`
	Amount     decimal.Decimal      `field:"amount" validate:"positive,maxcents"`
	Status     models.InvoiceStatus `field:"status" validate:"required,oneof=pending paid"`
}

type CustomerRecord struct {
	Name  string `field:"name" validate:"required"`
	Email string `field:"email" validate:"required"`
}

type Credentials struct {
	Email    string `field:"email" validate:"required,email"`
	Password string `field:"password" validate:"required,min=6"`
}

// maxAmount is the largest amount whose value in cents fits in an int64.
var maxAmount = decimal.New(math.MaxInt64, -2)

// amountTooLarge stands in for input too long to parse. It fails maxcents.
var amountTooLarge = maxAmount.Add(decimal.New(1, -2))

// maxAmountLen bounds raw amount input. The largest accepted amount needs 20
// characters.
const maxAmountLen = 32

// messages are looked up by "field.tag" first, then by field.
var messages = map[string]string{
	"customerId":      "Please select a customer.",
	"amount":          "Please enter an amount greater than $0.",
	"amount.maxcents": "Please enter an amount no greater than $92,233,720,368,547,758.07.",
	"status":          "Please select an invoice status.",
	"name":            "Please enter a customer name.",
	"email":           "Please enter email address.",
	"password":        "Please enter a password of at least 6 characters.",
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("field")
	})
	// Decimals reach the rules below as their exact string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("positive", decimalRule(func(d decimal.Decimal) bool {
		return d.IsPositive()
	}))
	_ = v.RegisterValidation("maxcents", decimalRule(func(d decimal.Decimal) bool {
		return d.LessThanOrEqual(maxAmount)
	}))
	return &Validator{validate: v}
}

func decimalRule(rule func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && rule(d)
	}
}

// Invoice reads customerId, amount and status. It serves both create and update;
// the target id of an update never comes from the form.
func (v *Validator) Invoice(fields url.Values) (*InvoiceRecord, FieldErrors) {
	rec := &InvoiceRecord{
		CustomerID: strings.TrimSpace(fields.Get("customerId")),
		Amount:     coerceAmount(fields.Get("amount")),
		Status:     models.InvoiceStatus(strings.TrimSpace(fields.Get("status"))),
	}
	if errs := v.check(rec); errs != nil {
		return nil, errs
	}
	return rec, nil
}

// Customer reads customer_name and customer_email, reported as name and email.
// Email is only required to be present.
func (v *Validator) Customer(fields url.Values) (*CustomerRecord, FieldErrors) {
	rec := &CustomerRecord{
		Name:  strings.TrimSpace(fields.Get("customer_name")),
		Email: strings.TrimSpace(fields.Get("customer_email")),
	}
	if errs := v.check(rec); errs != nil {
		return nil, errs
	}
	return rec, nil
}

func (v *Validator) Credentials(fields url.Values) (*Credentials, FieldErrors) {
	rec := &Credentials{
		Email:    strings.TrimSpace(fields.Get("email")),
		Password: fields.Get("password"),
	}
	if errs := v.check(rec); errs != nil {
		return nil, errs
	}
	return rec, nil
}

// coerceAmount parses a plain dollar amount and rounds it to whole cents.
// Anything unparsable, exponent notation included, becomes zero and fails the
// positive rule. Overlong input fails the maxcents rule without being parsed.
func coerceAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if strings.ContainsAny(raw, "eE") {
		return decimal.Zero
	}
	if len(raw) > maxAmountLen {
		return amountTooLarge
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}

func (v *Validator) check(rec interface{}) FieldErrors {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{formField: {invalidValue}}
	}

	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		errs[field] = append(errs[field], message(field, fe.Tag()))
	}
	return errs
}

func message(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	return invalidValue
}
