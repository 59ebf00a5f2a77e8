package store

import "time"

// Item is a single resource held by the store.
type Item struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// clone returns a deep copy so callers never share mutable state with
// the store.
func (it *Item) clone() *Item {
	cp := *it
	cp.Metadata = cloneMetadata(it.Metadata)
	return &cp
}

// cloneMetadata copies a metadata map. Used on intake as well, so the
// store never retains a caller's map by reference.
func cloneMetadata(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Payload is the decoded request body for create, replace and patch
// operations. Pointer fields distinguish "absent" from zero values so
// partial updates leave omitted fields untouched.
type Payload struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Price       *float64       `json:"price"`
	Metadata    map[string]any `json:"metadata"`
}

// validateFull checks the payload for create and replace: name and price
// are required, and price must be non-negative.
func (p *Payload) validateFull() error {
	if p.Name == nil || *p.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required and must be non-empty"}
	}
	if p.Price == nil {
		return &ValidationError{Field: "price", Message: "price is required"}
	}
	if *p.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must be non-negative"}
	}
	return nil
}

// validatePartial checks only the fields present in the payload.
func (p *Payload) validatePartial() error {
	if p.Name != nil && *p.Name == "" {
		return &ValidationError{Field: "name", Message: "name must be non-empty"}
	}
	if p.Price != nil && *p.Price < 0 {
		return &ValidationError{Field: "price", Message: "price must be non-negative"}
	}
	return nil
}
