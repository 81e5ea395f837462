package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/toko-pricing/internal/common"
)

// ErrTrailingData is returned when a document is followed by more JSON.
var ErrTrailingData = errors.New("order: unexpected data after document")

// Document is the JSON shape of an order handed over by a checkout layer.
type Document struct {
	ID    string `json:"id,omitempty"`
	Items []Item `json:"items"`
}

// Decode reads a Document and replays its items through AddItem, so a
// fixture obeys the same rules as programmatic construction. A missing id
// yields a fresh one.
func Decode(r io.Reader) (*Order, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("order: decode document: %w", err)
	}
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	o := New()
	if id := strings.TrimSpace(doc.ID); id != "" {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, common.InvalidArgument("order id %q is not a uuid", doc.ID)
		}
		o = NewWithID(parsed)
	}
	for i, it := range doc.Items {
		if err := o.AddItem(it); err != nil {
			return nil, fmt.Errorf("order: item %d: %w", i, err)
		}
	}
	return o, nil
}

// Document returns the JSON shape of the order.
func (o *Order) Document() Document {
	return Document{ID: o.id.String(), Items: o.Items()}
}
