package domain

import (
	"strings"
	"time"
)

// Topic is the fixed category label of an article.
type Topic string

const (
	TopicWorld         Topic = "World"
	TopicPolitics      Topic = "Politics"
	TopicTechnology    Topic = "Technology"
	TopicBusiness      Topic = "Business"
	TopicScience       Topic = "Science"
	TopicEntertainment Topic = "Entertainment"
	TopicSports        Topic = "Sports"
)

// AllTopics returns the topics in canonical order.
func AllTopics() []Topic {
	return []Topic{TopicWorld, TopicPolitics, TopicTechnology, TopicBusiness, TopicScience, TopicEntertainment, TopicSports}
}

// ParseTopic resolves a topic name case-insensitively. Empty and "All" mean no topic.
func ParseTopic(value string) (Topic, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		return "", nil
	}
	for _, t := range AllTopics() {
		if strings.EqualFold(string(t), value) {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "topic", Reason: "unknown topic " + value}
}

// Region is the coarse geographic scope of a request.
type Region string

const (
	RegionGlobal Region = "Global"
	RegionUS     Region = "US"
	RegionEU     Region = "EU"
	RegionAsia   Region = "Asia"
	RegionAfrica Region = "Africa"
)

// ParseRegion resolves a region name case-insensitively; empty means Global.
func ParseRegion(value string) (Region, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return RegionGlobal, nil
	}
	for _, r := range []Region{RegionGlobal, RegionUS, RegionEU, RegionAsia, RegionAfrica} {
		if strings.EqualFold(string(r), value) {
			return r, nil
		}
	}
	return "", &ValidationError{Field: "region", Reason: "unknown region " + value}
}

// DateRange is the lookback enumeration shared by the store and the news source.
type DateRange string

const (
	DateRangeToday      DateRange = "Today"
	DateRangeLast7Days  DateRange = "Last 7 days"
	DateRangeLast30Days DateRange = "Last 30 days"
)

// ParseDateRange resolves a date range label; empty means Today.
func ParseDateRange(value string) (DateRange, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DateRangeToday, nil
	}
	for _, d := range []DateRange{DateRangeToday, DateRangeLast7Days, DateRangeLast30Days} {
		if strings.EqualFold(string(d), value) {
			return d, nil
		}
	}
	return "", &ValidationError{Field: "date_range", Reason: "unknown date range " + value}
}

// Window returns the lookback duration. Unrecognized values fall back to one day.
func (d DateRange) Window() time.Duration {
	const day = 24 * time.Hour
	switch d {
	case DateRangeLast7Days:
		return 7 * day
	case DateRangeLast30Days:
		return 30 * day
	default:
		return day
	}
}

// Since is the earliest publication time inside the window ending at now.
func (d DateRange) Since(now time.Time) time.Time {
	return now.Add(-d.Window())
}
