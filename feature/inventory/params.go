package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"realty-inventory/core/search"

	"github.com/gofiber/fiber/v2"
)

// parseQuery builds a query from the "q" criteria string, then applies the
// explicit parameters on top of it.
func parseQuery(c *fiber.Ctx) (search.Query, error) {
	q, err := search.ParseCriteria(c.Query("q"))
	if err != nil {
		return q, err
	}

	if v := strings.TrimSpace(c.Query("project")); v != "" {
		q.Project = &v
	}
	floats := []struct {
		name   string
		target **float64
	}{
		{"min_price", &q.MinPrice}, {"max_price", &q.MaxPrice},
		{"min_area", &q.MinArea}, {"max_area", &q.MaxArea},
	}
	for _, p := range floats {
		v := c.Query(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return q, fmt.Errorf("%w: %s must be a number", search.ErrInvalidQuery, p.name)
		}
		*p.target = &n
	}
	if v := c.Query("rooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("%w: rooms must be an integer", search.ErrInvalidQuery)
		}
		q.Rooms = &n
	}
	if v := c.Query("status"); v != "" {
		st, err := search.ParseStatus(v)
		if err != nil {
			return q, fmt.Errorf("%w: %w", search.ErrInvalidQuery, err)
		}
		q.Status = &st
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("%w: limit must be an integer", search.ErrInvalidQuery)
		}
		q.Limit = n
	}
	return q, nil
}

// folderIDs returns the repeated "folder" parameters.
func folderIDs(c *fiber.Ctx) []string {
	var ids []string
	for _, v := range c.Context().QueryArgs().PeekMulti("folder") {
		if id := strings.TrimSpace(string(v)); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
