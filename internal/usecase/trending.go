package usecase

import (
	"sort"

	"NewsDigest/internal/domain"
)

// DefaultTopK is the number of trending topics returned.
const DefaultTopK = 5

// RankTopics counts articles per topic and returns the topK most frequent,
// tiered by rank position. Ties keep the order topics were first seen in.
func RankTopics(articles []domain.Article, topK int) []domain.TrendingTopic {
	if topK <= 0 {
		topK = DefaultTopK
	}

	counts := map[string]int{}
	var order []string
	for _, article := range articles {
		name := string(article.Topic)
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	ranked := make([]domain.TrendingTopic, 0, min(topK, len(order)))
	for rank, name := range order {
		if rank == topK {
			break
		}
		ranked = append(ranked, domain.TrendingTopic{
			Name:      name,
			Count:     counts[name],
			TrendType: domain.TierForRank(rank),
			Emoji:     domain.TopicIcon(name),
		})
	}
	return ranked
}

// RankAggregates tiers store aggregates, which arrive already ordered by score.
func RankAggregates(aggregates []domain.TopicAggregate) []domain.TrendingTopic {
	ranked := make([]domain.TrendingTopic, 0, len(aggregates))
	for rank, agg := range aggregates {
		ranked = append(ranked, domain.TrendingTopic{
			Name:       agg.Topic,
			Count:      agg.Count,
			TrendType:  domain.TierForRank(rank),
			Emoji:      domain.TopicIcon(agg.Topic),
			TotalViews: agg.TotalViews,
			TotalLikes: agg.TotalLikes,
		})
	}
	return ranked
}
