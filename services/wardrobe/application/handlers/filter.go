package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

const dateLayout = "2006-01-02"

// parseFilter reads list query parameters into a FilterSpec. Multi-value
// parameters accept repeated keys and comma-separated values. sortBy
// defaults to date_desc; pass sortBy=none to keep store order.
func parseFilter(q url.Values) (domainsvcs.FilterSpec, error) {
	spec := domainsvcs.FilterSpec{
		Category:   strings.TrimSpace(q.Get("category")),
		Categories: multi(q, "categories"),
		Color:      strings.TrimSpace(q.Get("color")),
		Colors:     multi(q, "colors"),
		Tag:        strings.TrimSpace(q.Get("tag")),
		Tags:       multi(q, "tags"),
		Search:     q.Get("search"),
	}

	var err error
	if spec.DateFrom, err = parseDate(q.Get("dateFrom"), "dateFrom"); err != nil {
		return spec, err
	}
	if spec.DateTo, err = parseDate(q.Get("dateTo"), "dateTo"); err != nil {
		return spec, err
	}

	switch sortBy := strings.TrimSpace(q.Get("sortBy")); sortBy {
	case "":
		spec.SortBy = domainsvcs.SortDateDesc
	case "none":
		spec.SortBy = domainsvcs.SortNone
	default:
		if spec.SortBy, err = domainsvcs.ParseSortOrder(sortBy); err != nil {
			return spec, err
		}
	}
	return spec, nil
}

func multi(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Invalid(domain.ErrInvalidFilter, "%s must be YYYY-MM-DD or RFC 3339, got %q", field, s)
	}
	return t, nil
}
