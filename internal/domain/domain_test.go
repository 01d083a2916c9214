package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDateRangeWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   DateRange
		want time.Duration
	}{
		{DateRangeToday, 24 * time.Hour},
		{DateRangeLast7Days, 7 * 24 * time.Hour},
		{DateRangeLast30Days, 30 * 24 * time.Hour},
		{DateRange("yesterday"), 24 * time.Hour},
		{DateRange(""), 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := tt.in.Window(); got != tt.want {
			t.Fatalf("Window(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFilterValidate(t *testing.T) {
	t.Parallel()

	f := DefaultFilter()
	if err := f.Validate(); err != nil {
		t.Fatalf("default filter invalid: %v", err)
	}

	for _, bad := range []ArticleFilter{
		{Page: 0, Limit: 10},
		{Page: 1, Limit: 0},
		{Page: 1, Limit: 101},
	} {
		err := bad.Validate()
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", bad, err)
		}
	}
}

func TestFilterOffset(t *testing.T) {
	t.Parallel()

	f := ArticleFilter{Page: 3, Limit: 20}
	if f.Offset() != 40 {
		t.Fatalf("expected offset 40, got %d", f.Offset())
	}
}

func TestFilterNormalized(t *testing.T) {
	t.Parallel()

	f := ArticleFilter{Source: " All ", SearchQuery: "  rates ", Limit: 500}.Normalized()
	if f.Source != "" || f.SearchQuery != "rates" {
		t.Fatalf("unexpected text fields: %+v", f)
	}
	if f.Region != RegionGlobal || f.DateRange != DateRangeToday {
		t.Fatalf("expected defaults, got %+v", f)
	}
	if f.Page != 1 || f.Limit != MaxPageSize {
		t.Fatalf("expected clamped paging, got page=%d limit=%d", f.Page, f.Limit)
	}
}

func TestParseTopic(t *testing.T) {
	t.Parallel()

	got, err := ParseTopic("technology")
	if err != nil || got != TopicTechnology {
		t.Fatalf("ParseTopic(technology) = %q, %v", got, err)
	}

	got, err = ParseTopic("All")
	if err != nil || got != "" {
		t.Fatalf("ParseTopic(All) = %q, %v", got, err)
	}

	if _, err := ParseTopic("Gardening"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTierForRank(t *testing.T) {
	t.Parallel()

	want := []Tier{TierHot, TierTrending, TierTrending, TierRising, TierRising}
	for i, w := range want {
		if got := TierForRank(i); got != w {
			t.Fatalf("TierForRank(%d) = %s, want %s", i, got, w)
		}
	}
}

func TestSourceFor(t *testing.T) {
	t.Parallel()

	if s := SourceFor("BBC News"); s.Favicon != "📺" {
		t.Fatalf("unexpected favicon for BBC News: %q", s.Favicon)
	}
	s := SourceFor("Local Gazette")
	if s.Favicon != defaultSourceFavicon || s.Color != defaultSourceColor || s.Name != "Local Gazette" {
		t.Fatalf("unexpected default source: %+v", s)
	}
	if TopicIcon("Gardening") != defaultTopicIcon {
		t.Fatalf("expected generic icon for unknown topic")
	}
}
