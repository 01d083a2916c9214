package domain

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ArticleFilter is the request-scoped query used by both the store and the news source.
type ArticleFilter struct {
	Region      Region
	Topic       Topic
	Source      string
	DateRange   DateRange
	SearchQuery string
	Page        int
	Limit       int
}

// DefaultFilter mirrors the defaults of the articles endpoint.
func DefaultFilter() ArticleFilter {
	return ArticleFilter{
		Region:    RegionGlobal,
		DateRange: DateRangeToday,
		Page:      1,
		Limit:     DefaultPageSize,
	}
}

// Validate enforces page >= 1 and 1 <= limit <= MaxPageSize.
func (f ArticleFilter) Validate() error {
	if f.Page < 1 {
		return &ValidationError{Field: "page", Reason: "must be at least 1"}
	}
	if f.Limit < 1 || f.Limit > MaxPageSize {
		return &ValidationError{Field: "limit", Reason: "must be between 1 and 100"}
	}
	return nil
}

// Offset is the number of rows skipped for the current page.
func (f ArticleFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// Normalized trims free-text fields, treats "All" as no source and clamps paging.
func (f ArticleFilter) Normalized() ArticleFilter {
	f.Source = strings.TrimSpace(f.Source)
	if strings.EqualFold(f.Source, "all") {
		f.Source = ""
	}
	f.SearchQuery = strings.TrimSpace(f.SearchQuery)
	if f.Region == "" {
		f.Region = RegionGlobal
	}
	if f.DateRange == "" {
		f.DateRange = DateRangeToday
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	f.Limit = min(f.Limit, MaxPageSize)
	return f
}
