package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// RoleNGO is the only role allowed to manage food requests.
const RoleNGO = "NGO"

// FoodRequest is a request for food items raised by an NGO on behalf of a requester.
type FoodRequest struct {
	ID             uuid.UUID       `json:"_id"`
	ItemNames      ItemNames       `json:"Item_names"`
	ItemQuantity   json.RawMessage `json:"Item_quantity"`
	RequesterName  string          `json:"requester_name"`
	RequesterEmail string          `json:"requester_email"`
	RequesterPhone string          `json:"requester_phone"`
	Owner          string          `json:"user"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Clone returns a deep copy of the request.
func (r FoodRequest) Clone() FoodRequest {
	r.ItemNames = slices.Clone(r.ItemNames)
	r.ItemQuantity = bytes.Clone(r.ItemQuantity)
	return r
}

// ItemNames is the list of requested item names. On the wire it accepts either
// a single string or an array of strings and is always written back as an array.
type ItemNames []string

// UnmarshalJSON accepts "Rice" as well as ["Rice", "Beans"].
func (n *ItemNames) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(trimmed, &single); err == nil {
		if single == "" {
			*n = nil
			return nil
		}
		*n = ItemNames{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return fmt.Errorf("Item_names must be a string or a list of strings: %w", err)
	}
	*n = many
	return nil
}

// Equal reports whether both lists hold the same names in the same order.
func (n ItemNames) Equal(other ItemNames) bool {
	return slices.Equal(n, other)
}

// Contact is a requester contact value. Clients send phone numbers both as
// strings and as bare JSON numbers; either is kept as its text.
type Contact string

// UnmarshalJSON accepts a JSON string or number. null decodes to "".
func (c *Contact) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		*c = Contact(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("contact must be a string or a number: %w", err)
	}
	*c = Contact(n.String())
	return nil
}

// CreateInput carries the client-supplied fields of a new food request.
type CreateInput struct {
	ItemNames      ItemNames       `json:"Item_names" validate:"required,min=1,dive,required"`
	ItemQuantity   json.RawMessage `json:"Item_quantity" validate:"truthy"`
	RequesterName  Contact         `json:"requester_name" validate:"required"`
	RequesterEmail Contact         `json:"requester_email" validate:"required"`
	RequesterPhone Contact         `json:"requester_phone" validate:"required"`
}

// DeleteInput identifies the food request to delete within the caller's scope.
type DeleteInput struct {
	ItemNames ItemNames `json:"Item_names" validate:"required,min=1,dive,required"`
}

// Truthy reports whether a raw JSON value counts as present: anything except
// an absent value, null, false, zero and the empty string.
func Truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}

	switch string(v) {
	case "null", "false", `""`:
		return false
	}

	if v[0] == '-' || (v[0] >= '0' && v[0] <= '9') {
		var f float64
		if err := json.Unmarshal(v, &f); err == nil && f == 0 {
			return false
		}
	}
	return true
}
