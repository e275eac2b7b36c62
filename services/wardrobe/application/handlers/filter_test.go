package handlers

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/wardrobe/services/wardrobe/domain"
	domainsvcs "github.com/ghuser/wardrobe/services/wardrobe/domain/services"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domainsvcs.FilterSpec
	}{
		{
			name:  "defaults to newest first",
			query: "",
			want:  domainsvcs.FilterSpec{SortBy: domainsvcs.SortDateDesc},
		},
		{
			name:  "store order on request",
			query: "sortBy=none",
			want:  domainsvcs.FilterSpec{SortBy: domainsvcs.SortNone},
		},
		{
			name:  "multi-value lists split and repeat",
			query: "colors=navy,+black&colors=white&categories=&tags=work",
			want: domainsvcs.FilterSpec{
				Colors: []string{"navy", "black", "white"},
				Tags:   []string{"work"},
				SortBy: domainsvcs.SortDateDesc,
			},
		},
		{
			name:  "single values and dates",
			query: "category=shirt&color=navy&tag=casual&search=Linen&dateFrom=2024-01-01&dateTo=2024-02-01T12:00:00Z&sortBy=name_asc",
			want: domainsvcs.FilterSpec{
				Category: "shirt",
				Color:    "navy",
				Tag:      "casual",
				Search:   "Linen",
				DateFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				DateTo:   time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
				SortBy:   domainsvcs.SortNameAsc,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			got, err := parseFilter(q)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(domainsvcs.FilterSpec{}, "Locale")); diff != "" {
				t.Errorf("parseFilter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFilter_Rejects(t *testing.T) {
	for _, query := range []string{"sortBy=price", "dateFrom=01/02/2024", "dateTo=tomorrow"} {
		q, err := url.ParseQuery(query)
		require.NoError(t, err)
		_, err = parseFilter(q)
		assert.True(t, errors.Is(err, domain.ErrInvalidFilter), query)
		assert.True(t, errors.Is(err, domain.ErrValidation), query)
	}
}
