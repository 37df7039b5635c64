package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

// ContentService handles the coaching content library, including the
// premium gate: premium items are visible to everyone but locked (no URL)
// for non-subscribers.
type ContentService interface {
	Get(ctx context.Context, id int64, subscriber bool) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter, subscriber bool) ([]models.Content, int, error)
	Search(ctx context.Context, query string, limit int, subscriber bool) ([]models.Content, error)
}

type contentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func (s *contentService) Get(ctx context.Context, id int64, subscriber bool) (*models.Content, error) {
	log := logger.FromContext(ctx)

	c, err := s.contentRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("content", id)
		}
		log.Error("failed to get content: %v", err)
		return nil, errors.NewInternalError(err)
	}

	lockPremium(c, subscriber)
	return c, nil
}

func (s *contentService) List(ctx context.Context, filter models.ContentFilter, subscriber bool) ([]models.Content, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing content: kind=%s, race=%s, matchup=%s, tag=%s",
		filter.Kind, filter.Race, filter.Matchup, filter.Tag)

	items, err := s.contentRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list content: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.contentRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count content: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	for i := range items {
		lockPremium(&items[i], subscriber)
	}
	return items, totalCount, nil
}

// Search runs a LIKE query against titles and tags, then ranks the hits
// deterministically: exact title, title prefix, title substring, tag match,
// with publication recency breaking ties.
func (s *contentService) Search(ctx context.Context, query string, limit int, subscriber bool) ([]models.Content, error) {
	log := logger.FromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.NewValidationError("q", "cannot be empty")
	}
	if limit <= 0 {
		limit = 25
	}

	// Over-fetch so ranking sees more candidates than the final page.
	items, err := s.contentRepo.Search(ctx, query, limit*4)
	if err != nil {
		log.Error("content search failed: %v", err)
		return nil, errors.NewInternalError(err)
	}

	type ranked struct {
		item  models.Content
		score int
	}
	hits := make([]ranked, 0, len(items))
	for _, c := range items {
		if score := searchScore(c, query); score > 0 {
			hits = append(hits, ranked{item: c, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if !hits[i].item.PublishedAt.Equal(hits[j].item.PublishedAt) {
			return hits[i].item.PublishedAt.After(hits[j].item.PublishedAt)
		}
		return hits[i].item.ID < hits[j].item.ID
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]models.Content, 0, len(hits))
	for _, h := range hits {
		lockPremium(&h.item, subscriber)
		results = append(results, h.item)
	}

	log.Debug("search %q matched %d items", query, len(results))
	return results, nil
}

func searchScore(c models.Content, query string) int {
	q := strings.ToLower(query)
	title := strings.ToLower(c.Title)

	score := 0
	switch {
	case title == q:
		score += 100
	case strings.HasPrefix(title, q):
		score += 50
	case strings.Contains(title, q):
		score += 25
	}
	for _, tag := range strings.Split(strings.ToLower(c.Tags), ",") {
		if strings.TrimSpace(tag) == q {
			score += 10
		}
	}
	return score
}

func lockPremium(c *models.Content, subscriber bool) {
	if c.Premium && !subscriber {
		c.Locked = true
		c.URL = ""
	}
}
