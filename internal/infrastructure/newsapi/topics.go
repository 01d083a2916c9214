package newsapi

import (
	"strings"
	"unicode"

	"NewsDigest/internal/domain"
)

var topicCategories = map[domain.Topic]string{
	domain.TopicWorld:         "general",
	domain.TopicPolitics:      "general",
	domain.TopicTechnology:    "technology",
	domain.TopicBusiness:      "business",
	domain.TopicScience:       "science",
	domain.TopicEntertainment: "entertainment",
	domain.TopicSports:        "sports",
}

var regionCountries = map[domain.Region]string{
	domain.RegionUS:     "us",
	domain.RegionEU:     "gb",
	domain.RegionAsia:   "jp",
	domain.RegionAfrica: "za",
}

// CategoryFor maps a topic to the provider category, defaulting to "general".
func CategoryFor(topic domain.Topic) string {
	if c, ok := topicCategories[topic]; ok {
		return c
	}
	return "general"
}

// CountryFor maps a region to the provider country code, defaulting to "us".
func CountryFor(region domain.Region) string {
	if c, ok := regionCountries[region]; ok {
		return c
	}
	return "us"
}

type topicBucket struct {
	topic       domain.Topic
	sourceHints []string
	titleWords  []string
}

// Checked in order; the first matching bucket wins.
var topicBuckets = []topicBucket{
	{topic: domain.TopicTechnology, sourceHints: []string{"tech"}, titleWords: []string{"ai", "tech", "technology", "digital", "software"}},
	{topic: domain.TopicSports, sourceHints: []string{"sport", "espn"}},
	{topic: domain.TopicEntertainment, sourceHints: []string{"entertainment", "variety"}},
	{topic: domain.TopicBusiness, sourceHints: []string{"business", "bloomberg"}},
	{topic: domain.TopicScience, titleWords: []string{"science", "research", "study", "space"}},
	{topic: domain.TopicPolitics, titleWords: []string{"election", "government", "politics", "policy"}},
}

// InferTopic guesses an article topic from its publisher name and title keywords.
func InferTopic(sourceName, title string) domain.Topic {
	source := strings.ToLower(sourceName)
	words := map[string]struct{}{}
	for _, w := range tokenize(title) {
		words[w] = struct{}{}
	}

	for _, b := range topicBuckets {
		for _, hint := range b.sourceHints {
			if strings.Contains(source, hint) {
				return b.topic
			}
		}
		for _, w := range b.titleWords {
			if _, ok := words[w]; ok {
				return b.topic
			}
		}
	}
	return domain.TopicWorld
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
