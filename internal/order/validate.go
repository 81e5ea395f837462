package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/toko-pricing/internal/money"
)

var (
	// ErrEmptyOrder is returned by Validate when the order has no items.
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidOrder is returned by Validate when at least one item breaks a rule.
	ErrInvalidOrder = errors.New("order has invalid items")
)

var itemValidator = newItemValidator()

func newItemValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if m, ok := field.Interface().(money.Money); ok {
			return m.Cents()
		}
		return nil
	}, money.Money{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ItemError lists the rules a single line item breaks.
type ItemError struct {
	Index  int
	SKU    string
	Fields validator.ValidationErrors
}

func (e *ItemError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Sprintf("item %d (sku %q): %s", e.Index, e.SKU, strings.Join(parts, ", "))
}

func (e *ItemError) Unwrap() error {
	return e.Fields
}

// Validate explains why IsValid is false. It returns ErrEmptyOrder for an
// order without items, or an error wrapping ErrInvalidOrder and one
// *ItemError per offending item. It never returns an InvalidArgument error.
func (o *Order) Validate() error {
	if len(o.items) == 0 {
		return ErrEmptyOrder
	}
	var problems []error
	for i, it := range o.items {
		err := itemValidator.Struct(it)
		if err == nil {
			continue
		}
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return fmt.Errorf("order: validate item %d: %w", i, err)
		}
		problems = append(problems, &ItemError{Index: i, SKU: it.SKU, Fields: fields})
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, errors.Join(problems...))
	}
	return nil
}
