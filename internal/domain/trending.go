package domain

// Tier is a trending bucket derived from rank position.
type Tier string

const (
	TierHot      Tier = "hot"
	TierTrending Tier = "trending"
	TierRising   Tier = "rising"
)

// TierForRank maps rank 0 to hot, ranks 1-2 to trending and the rest to rising.
func TierForRank(rank int) Tier {
	switch {
	case rank <= 0:
		return TierHot
	case rank < 3:
		return TierTrending
	default:
		return TierRising
	}
}

// TrendingTopic is recomputed on demand and never persisted.
type TrendingTopic struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	TrendType  Tier   `json:"trend_type"`
	Emoji      string `json:"emoji"`
	TotalViews int    `json:"total_views,omitempty"`
	TotalLikes int    `json:"total_likes,omitempty"`
}

// TopicAggregate is one row of the store's group-by over topics.
type TopicAggregate struct {
	Topic      string
	Count      int
	TotalViews int
	TotalLikes int
}

// Score is the composite engagement ranking used by the store aggregate.
func (a TopicAggregate) Score() float64 {
	return float64(a.Count) + 0.1*float64(a.TotalViews) + 0.5*float64(a.TotalLikes)
}

const defaultTopicIcon = "📰"

var topicIcons = map[string]string{
	string(TopicTechnology):    "💻",
	string(TopicWorld):         "🌍",
	string(TopicBusiness):      "💼",
	string(TopicScience):       "🔬",
	string(TopicSports):        "⚽",
	string(TopicEntertainment): "🎬",
	string(TopicPolitics):      "🏛️",
}

// TopicIcon returns the display icon for a topic name.
func TopicIcon(topic string) string {
	if icon, ok := topicIcons[topic]; ok {
		return icon
	}
	return defaultTopicIcon
}
