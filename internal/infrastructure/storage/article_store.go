package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"NewsDigest/internal/domain"
	"NewsDigest/internal/ports"
)

const topSourcesLimit = 10

var articleColumns = []string{
	"id", "title", "source_name", "source_favicon", "source_color",
	"original_excerpt", "summary", "published_at", "topic", "url",
	"image_url", "view_count", "like_count", "region",
}

type articleRow struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	SourceName      string         `db:"source_name"`
	SourceFavicon   string         `db:"source_favicon"`
	SourceColor     string         `db:"source_color"`
	OriginalExcerpt string         `db:"original_excerpt"`
	Summary         sql.NullString `db:"summary"`
	PublishedAt     time.Time      `db:"published_at"`
	Topic           string         `db:"topic"`
	URL             string         `db:"url"`
	ImageURL        sql.NullString `db:"image_url"`
	ViewCount       int            `db:"view_count"`
	LikeCount       int            `db:"like_count"`
	Region          string         `db:"region"`
}

func (r articleRow) toDomain() domain.Article {
	return domain.Article{
		ID:    r.ID,
		Title: r.Title,
		Source: domain.NewsSource{
			Name:    r.SourceName,
			Favicon: r.SourceFavicon,
			Color:   r.SourceColor,
		},
		OriginalExcerpt: r.OriginalExcerpt,
		Summary:         r.Summary.String,
		PublishedAt:     r.PublishedAt.UTC(),
		Topic:           domain.Topic(r.Topic),
		URL:             r.URL,
		ImageURL:        r.ImageURL.String,
		ViewCount:       r.ViewCount,
		LikeCount:       r.LikeCount,
		Region:          domain.Region(r.Region),
	}
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

// ArticleStore persists articles and interactions in Postgres or SQLite.
type ArticleStore struct {
	db  *DB
	now func() time.Time
}

var _ ports.ArticleStore = (*ArticleStore)(nil)

// NewArticleStore wires the store over an open connection.
func NewArticleStore(db *DB) *ArticleStore {
	return &ArticleStore{db: db, now: time.Now}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStore, op, err)
}

// InsertIfAbsent stores the article unless its URL is already present.
// It reports whether a row was written.
func (s *ArticleStore) InsertIfAbsent(ctx context.Context, article domain.Article) (bool, error) {
	if strings.TrimSpace(article.URL) == "" {
		return false, &domain.ValidationError{Field: "url", Reason: "must not be empty"}
	}
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.Region == "" {
		article.Region = domain.RegionGlobal
	}
	if article.Source.Favicon == "" || article.Source.Color == "" {
		meta := domain.SourceFor(article.Source.Name)
		article.Source.Favicon = lo.Ternary(article.Source.Favicon == "", meta.Favicon, article.Source.Favicon)
		article.Source.Color = lo.Ternary(article.Source.Color == "", meta.Color, article.Source.Color)
	}

	now := s.now().UTC()
	query, args, err := s.db.builder.Insert("articles").
		Columns(append(articleColumns, "created_at", "updated_at")...).
		Values(
			article.ID, article.Title, article.Source.Name, article.Source.Favicon, article.Source.Color,
			article.OriginalExcerpt, nullable(article.Summary), article.PublishedAt.UTC(), string(article.Topic), article.URL,
			nullable(article.ImageURL), max(article.ViewCount, 0), max(article.LikeCount, 0), string(article.Region),
			now, now,
		).
		Suffix("ON CONFLICT (url) DO NOTHING").
		ToSql()
	if err != nil {
		return false, storeErr("build insert", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storeErr("insert article", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storeErr("rows affected", err)
	}
	return affected > 0, nil
}

// Read returns one page of articles matching the filter, newest first.
func (s *ArticleStore) Read(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error) {
	filter = filter.Normalized()

	q := s.db.builder.Select(articleColumns...).From("articles").
		Where(squirrel.GtOrEq{"published_at": filter.DateRange.Since(s.now()).UTC()})
	if filter.Topic != "" {
		q = q.Where(squirrel.Eq{"topic": string(filter.Topic)})
	}
	if filter.Source != "" {
		q = q.Where(squirrel.Eq{"source_name": filter.Source})
	}
	if filter.SearchQuery != "" {
		pattern := "%" + strings.ToLower(filter.SearchQuery) + "%"
		q = q.Where(squirrel.Or{
			squirrel.Like{"LOWER(title)": pattern},
			squirrel.Like{"LOWER(original_excerpt)": pattern},
		})
	}

	query, args, err := q.OrderBy("published_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, storeErr("build read", err)
	}

	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr("read articles", err)
	}
	return lo.Map(rows, func(r articleRow, _ int) domain.Article { return r.toDomain() }), nil
}

// Get loads one article by id.
func (s *ArticleStore) Get(ctx context.Context, id string) (domain.Article, error) {
	query, args, err := s.db.builder.Select(articleColumns...).From("articles").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Article{}, storeErr("build get", err)
	}

	var row articleRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Article{}, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
		}
		return domain.Article{}, storeErr("get article", err)
	}
	return row.toDomain(), nil
}

// UpdateSummary sets the summary of an existing article.
func (s *ArticleStore) UpdateSummary(ctx context.Context, id, summary string) (bool, error) {
	query, args, err := s.db.builder.Update("articles").
		Set("summary", summary).
		Set("updated_at", s.now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, storeErr("build update summary", err)
	}
	return s.execAffected(ctx, "update summary", query, args)
}

func counterColumn(kind domain.InteractionKind) (string, error) {
	switch kind {
	case domain.InteractionView:
		return "view_count", nil
	case domain.InteractionLike:
		return "like_count", nil
	default:
		return "", &domain.ValidationError{Field: "kind", Reason: fmt.Sprintf("%q has no counter", kind)}
	}
}

func (s *ArticleStore) incrementQuery(id string, kind domain.InteractionKind) (string, []any, error) {
	column, err := counterColumn(kind)
	if err != nil {
		return "", nil, err
	}
	return s.db.builder.Update("articles").
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

// IncrementCounter atomically bumps the view or like counter.
// It reports false when the id is unknown.
func (s *ArticleStore) IncrementCounter(ctx context.Context, id string, kind domain.InteractionKind) (bool, error) {
	query, args, err := s.incrementQuery(id, kind)
	if err != nil {
		return false, err
	}
	return s.execAffected(ctx, "increment "+string(kind), query, args)
}

func (s *ArticleStore) execAffected(ctx context.Context, op, query string, args []any) (bool, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, storeErr(op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, storeErr(op, err)
	}
	return affected > 0, nil
}

// RecordInteraction appends the event and bumps the matching counter in one transaction.
func (s *ArticleStore) RecordInteraction(ctx context.Context, interaction domain.UserInteraction) error {
	if interaction.ID == "" {
		interaction.ID = uuid.NewString()
	}
	if interaction.OccurredAt.IsZero() {
		interaction.OccurredAt = s.now()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("begin interaction", err)
	}
	defer tx.Rollback()

	existsQuery, existsArgs, err := s.db.builder.Select("COUNT(*)").From("articles").
		Where(squirrel.Eq{"id": interaction.ArticleID}).ToSql()
	if err != nil {
		return storeErr("build exists", err)
	}
	var n int
	if err := tx.GetContext(ctx, &n, existsQuery, existsArgs...); err != nil {
		return storeErr("check article", err)
	}
	if n == 0 {
		return fmt.Errorf("article %s: %w", interaction.ArticleID, domain.ErrNotFound)
	}

	insertQuery, insertArgs, err := s.db.builder.Insert("user_interactions").
		Columns("id", "article_id", "interaction_type", "user_ip", "occurred_at").
		Values(interaction.ID, interaction.ArticleID, string(interaction.Kind), nullable(interaction.ClientID), interaction.OccurredAt.UTC()).
		ToSql()
	if err != nil {
		return storeErr("build interaction insert", err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return storeErr("insert interaction", err)
	}

	if interaction.Kind.Counted() {
		incQuery, incArgs, err := s.incrementQuery(interaction.ArticleID, interaction.Kind)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, incQuery, incArgs...); err != nil {
			return storeErr("increment "+string(interaction.Kind), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("commit interaction", err)
	}
	return nil
}

type topicAggregateRow struct {
	Topic      string `db:"topic"`
	Count      int    `db:"article_count"`
	TotalViews int    `db:"total_views"`
	TotalLikes int    `db:"total_likes"`
}

// AggregateByTopic groups articles published within window by topic, ordered by
// the composite engagement score.
func (s *ArticleStore) AggregateByTopic(ctx context.Context, window time.Duration, limit int) ([]domain.TopicAggregate, error) {
	query, args, err := s.db.builder.
		Select(
			"topic",
			"COUNT(*) AS article_count",
			"COALESCE(SUM(view_count), 0) AS total_views",
			"COALESCE(SUM(like_count), 0) AS total_likes",
		).
		From("articles").
		Where(squirrel.GtOrEq{"published_at": s.now().Add(-window).UTC()}).
		GroupBy("topic").
		OrderBy(
			"(COUNT(*) + 0.1 * COALESCE(SUM(view_count), 0) + 0.5 * COALESCE(SUM(like_count), 0)) DESC",
			"topic ASC",
		).
		Limit(uint64(max(limit, 1))).
		ToSql()
	if err != nil {
		return nil, storeErr("build aggregate", err)
	}

	var rows []topicAggregateRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr("aggregate topics", err)
	}
	return lo.Map(rows, func(r topicAggregateRow, _ int) domain.TopicAggregate {
		return domain.TopicAggregate{Topic: r.Topic, Count: r.Count, TotalViews: r.TotalViews, TotalLikes: r.TotalLikes}
	}), nil
}

type groupCountRow struct {
	Name  string `db:"name"`
	Count int    `db:"n"`
}

// Statistics reports totals per topic and for the busiest sources.
// TrendingTopics is left for the caller to fill.
func (s *ArticleStore) Statistics(ctx context.Context) (domain.Statistics, error) {
	stats := domain.Statistics{
		ArticlesByTopic:  map[string]int{},
		ArticlesBySource: map[string]int{},
	}

	totalQuery, _, err := s.db.builder.Select("COUNT(*)").From("articles").ToSql()
	if err != nil {
		return stats, storeErr("build total", err)
	}
	if err := s.db.GetContext(ctx, &stats.TotalArticles, totalQuery); err != nil {
		return stats, storeErr("count articles", err)
	}

	byTopic, err := s.groupCounts(ctx, "topic", 0)
	if err != nil {
		return stats, err
	}
	for _, row := range byTopic {
		stats.ArticlesByTopic[row.Name] = row.Count
	}

	bySource, err := s.groupCounts(ctx, "source_name", topSourcesLimit)
	if err != nil {
		return stats, err
	}
	for _, row := range bySource {
		stats.ArticlesBySource[row.Name] = row.Count
	}

	return stats, nil
}

func (s *ArticleStore) groupCounts(ctx context.Context, column string, limit int) ([]groupCountRow, error) {
	q := s.db.builder.Select(column+" AS name", "COUNT(*) AS n").
		From("articles").
		GroupBy(column).
		OrderBy("n DESC", column+" ASC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, storeErr("build group by "+column, err)
	}

	var rows []groupCountRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, storeErr("group by "+column, err)
	}
	return rows, nil
}

// Counts returns the number of stored articles and recorded interactions.
func (s *ArticleStore) Counts(ctx context.Context) (articles, interactions int, err error) {
	if err := s.db.GetContext(ctx, &articles, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, 0, storeErr("count articles", err)
	}
	if err := s.db.GetContext(ctx, &interactions, "SELECT COUNT(*) FROM user_interactions"); err != nil {
		return 0, 0, storeErr("count interactions", err)
	}
	return articles, interactions, nil
}

// Ping checks connectivity.
func (s *ArticleStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storeErr("ping", err)
	}
	return nil
}
