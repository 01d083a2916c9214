package usecase

import (
	"time"

	"github.com/google/uuid"

	"NewsDigest/internal/domain"
)

type placeholderSeed struct {
	title   string
	source  string
	excerpt string
	topic   domain.Topic
	url     string
	image   string
	views   int
	likes   int
}

var placeholderSeeds = []placeholderSeed{
	{
		title:   "🚀 Revolutionary AI Breakthrough Changes Healthcare Industry Forever",
		source:  "TechCrunch",
		excerpt: "Scientists at Stanford University have developed a groundbreaking AI system that can diagnose diseases with 99% accuracy, potentially revolutionizing healthcare worldwide and saving millions of lives.",
		topic:   domain.TopicTechnology,
		url:     "https://example.com/article1",
		image:   "https://via.placeholder.com/300x200/4F46E5/FFFFFF?text=AI+Healthcare",
		views:   840,
		likes:   92,
	},
	{
		title:   "🌍 Global Climate Summit Reaches Historic Agreement on Carbon Emissions",
		source:  "Reuters",
		excerpt: "World leaders have signed a groundbreaking agreement to reduce carbon emissions by 50% within the next decade, marking a significant step in fighting climate change.",
		topic:   domain.TopicWorld,
		url:     "https://example.com/article2",
		image:   "https://via.placeholder.com/300x200/10B981/FFFFFF?text=Climate+Summit",
		views:   720,
		likes:   75,
	},
	{
		title:   "📈 Stock Markets Surge Following Federal Reserve Decision",
		source:  "Bloomberg",
		excerpt: "Major stock indices reached record highs after the Federal Reserve announced a surprise interest rate cut, boosting investor confidence across all sectors.",
		topic:   domain.TopicBusiness,
		url:     "https://example.com/article3",
		image:   "https://via.placeholder.com/300x200/8B5CF6/FFFFFF?text=Stock+Market",
		views:   610,
		likes:   48,
	},
	{
		title:   "🚀 Space Mission Discovers Potentially Habitable Exoplanet",
		source:  "NASA News",
		excerpt: "The James Webb Space Telescope has identified a new exoplanet in the habitable zone showing signs of water vapor in its atmosphere.",
		topic:   domain.TopicScience,
		url:     "https://example.com/article4",
		image:   "https://via.placeholder.com/300x200/F59E0B/FFFFFF?text=Space+Discovery",
		views:   530,
		likes:   61,
	},
	{
		title:   "⚽ Championship Final Breaks Viewership Records Worldwide",
		source:  "ESPN",
		excerpt: "The World Cup final attracted over 2 billion viewers globally, making it the most-watched sporting event in television history.",
		topic:   domain.TopicSports,
		url:     "https://example.com/article5",
		image:   "https://via.placeholder.com/300x200/EF4444/FFFFFF?text=World+Cup",
		views:   950,
		likes:   88,
	},
	{
		title:   "🎬 New Entertainment Streaming Platform Launches with Exclusive Content",
		source:  "Variety",
		excerpt: "A major tech company has launched its revolutionary streaming service featuring original series and movies from acclaimed directors.",
		topic:   domain.TopicEntertainment,
		url:     "https://example.com/article6",
		image:   "https://via.placeholder.com/300x200/EC4899/FFFFFF?text=Streaming",
		views:   430,
		likes:   37,
	},
	{
		title:   "🏛️ Parliament Passes Landmark Digital Privacy Bill",
		source:  "BBC News",
		excerpt: "Lawmakers approved sweeping new rules on how companies collect and share personal data, with enforcement set to begin next year.",
		topic:   domain.TopicPolitics,
		url:     "https://example.com/article7",
		image:   "https://via.placeholder.com/300x200/0EA5E9/FFFFFF?text=Privacy+Bill",
		views:   380,
		likes:   29,
	},
}

// Placeholders returns the fixed illustrative article set, filtered by topic and
// cut to the filter limit. Ids derive from the URL so repeated calls agree.
func Placeholders(filter domain.ArticleFilter, now time.Time) []domain.Article {
	filter = filter.Normalized()

	articles := make([]domain.Article, 0, len(placeholderSeeds))
	for i, seed := range placeholderSeeds {
		if filter.Topic != "" && filter.Topic != seed.topic {
			continue
		}
		articles = append(articles, domain.Article{
			ID:              uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed.url)).String(),
			Title:           seed.title,
			Source:          domain.SourceFor(seed.source),
			OriginalExcerpt: seed.excerpt,
			PublishedAt:     now.Add(-time.Duration(i+1) * time.Hour).UTC(),
			Topic:           seed.topic,
			URL:             seed.url,
			ImageURL:        seed.image,
			ViewCount:       seed.views,
			LikeCount:       seed.likes,
			Region:          domain.RegionGlobal,
		})
		if len(articles) == filter.Limit {
			break
		}
	}
	return articles
}
