package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/schoolcrm-backend/internal/model"
)

// dateLayouts are the accepted dateOfBirth forms: a bare date from an HTML
// date input, or a full timestamp.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// parseDate returns nil for an empty string.
func parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, true
		}
	}
	return nil, false
}

// listParams reads page, limit, search, sortBy and order from the query
// string. Normalization happens in the service.
func listParams(c *gin.Context) model.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return model.ListParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
		Order:  model.SortOrder(strings.ToLower(c.Query("order"))),
	}
}
