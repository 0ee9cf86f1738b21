package search

import (
	"errors"
	"fmt"

	"realty-inventory/core/inventory"
	"realty-inventory/core/utils"
)

// ErrInvalidQuery is returned for malformed or contradictory queries.
var ErrInvalidQuery = errors.New("invalid query")

// Query selects inventory records. Nil fields do not filter.
type Query struct {
	Project  *string           `json:"project,omitempty"`
	MinPrice *float64          `json:"min_price,omitempty"`
	MaxPrice *float64          `json:"max_price,omitempty"`
	Rooms    *int              `json:"rooms,omitempty"`
	Status   *inventory.Status `json:"status,omitempty"`
	MinArea  *float64          `json:"min_area,omitempty"`
	MaxArea  *float64          `json:"max_area,omitempty"`
	// Limit caps the number of returned records; zero means no limit.
	Limit int `json:"limit,omitempty"`
}

// Validate rejects negative bounds and inverted ranges.
func (q Query) Validate() error {
	bounds := []struct {
		name  string
		value *float64
	}{
		{"min_price", q.MinPrice}, {"max_price", q.MaxPrice},
		{"min_area", q.MinArea}, {"max_area", q.MaxArea},
	}
	for _, b := range bounds {
		if b.value != nil && *b.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidQuery, b.name)
		}
	}
	if q.Rooms != nil && *q.Rooms < 0 {
		return fmt.Errorf("%w: rooms must not be negative", ErrInvalidQuery)
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return fmt.Errorf("%w: min_price is greater than max_price", ErrInvalidQuery)
	}
	if q.MinArea != nil && q.MaxArea != nil && *q.MinArea > *q.MaxArea {
		return fmt.Errorf("%w: min_area is greater than max_area", ErrInvalidQuery)
	}
	if q.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative", ErrInvalidQuery)
	}
	return nil
}

// Match reports whether r passes every filter of q.
func (q Query) Match(r inventory.Record) bool {
	if q.Project != nil && !utils.ContainsFold(r.Project, *q.Project) {
		return false
	}
	if q.Rooms != nil && (r.Rooms == nil || *r.Rooms != *q.Rooms) {
		return false
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		if r.Price == nil {
			return false
		}
		if q.MinPrice != nil && *r.Price < *q.MinPrice {
			return false
		}
		if q.MaxPrice != nil && *r.Price > *q.MaxPrice {
			return false
		}
	}
	if q.Status != nil && r.Status != *q.Status {
		return false
	}
	if q.MinArea != nil || q.MaxArea != nil {
		if r.AreaSqm == nil {
			return false
		}
		if q.MinArea != nil && *r.AreaSqm < *q.MinArea {
			return false
		}
		if q.MaxArea != nil && *r.AreaSqm > *q.MaxArea {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the query has no filters.
func (q Query) IsEmpty() bool {
	return q.Project == nil && q.MinPrice == nil && q.MaxPrice == nil && q.Rooms == nil &&
		q.Status == nil && q.MinArea == nil && q.MaxArea == nil
}
