package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/services"
	"github.com/probuilds/sc2coach/internal/testutil/mocks"
)

func TestContentList_LocksPremiumForNonSubscribers(t *testing.T) {
	contentRepo := new(mocks.MockContentRepository)
	svc := services.NewContentService(contentRepo)

	items := []models.Content{
		{ID: 1, Title: "Free TvZ guide", URL: "https://example.com/free", Premium: false},
		{ID: 2, Title: "Masterclass", URL: "https://example.com/premium", Premium: true},
	}
	contentRepo.On("List", mock.Anything, mock.Anything).Return(items, nil)
	contentRepo.On("Count", mock.Anything, mock.Anything).Return(2, nil)

	got, total, err := svc.List(context.Background(), models.ContentFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	assert.False(t, got[0].Locked)
	assert.Equal(t, "https://example.com/free", got[0].URL)
	assert.True(t, got[1].Locked)
	assert.Empty(t, got[1].URL)
}

func TestContentList_SubscriberSeesEverything(t *testing.T) {
	contentRepo := new(mocks.MockContentRepository)
	svc := services.NewContentService(contentRepo)

	items := []models.Content{
		{ID: 2, Title: "Masterclass", URL: "https://example.com/premium", Premium: true},
	}
	contentRepo.On("List", mock.Anything, mock.Anything).Return(items, nil)
	contentRepo.On("Count", mock.Anything, mock.Anything).Return(1, nil)

	got, _, err := svc.List(context.Background(), models.ContentFilter{}, true)
	require.NoError(t, err)
	assert.False(t, got[0].Locked)
	assert.Equal(t, "https://example.com/premium", got[0].URL)
}

func TestContentSearch_RankingIsDeterministic(t *testing.T) {
	contentRepo := new(mocks.MockContentRepository)
	svc := services.NewContentService(contentRepo)

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// Returned in an order that only ranking can fix.
	items := []models.Content{
		{ID: 1, Title: "Advanced bio play", Tags: "marine,bio", PublishedAt: base},
		{ID: 2, Title: "Marine splits 101", PublishedAt: base},
		{ID: 3, Title: "Marine", PublishedAt: base},
		{ID: 4, Title: "Marine micro drills", PublishedAt: base.Add(24 * time.Hour)},
	}
	contentRepo.On("Search", mock.Anything, "marine", mock.Anything).Return(items, nil)

	got, err := svc.Search(context.Background(), "marine", 10, true)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Exact title first, then prefix matches newest-first, then the tag hit.
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
	assert.Equal(t, int64(2), got[2].ID)
	assert.Equal(t, int64(1), got[3].ID)
}

func TestContentSearch_TruncatesAndLocks(t *testing.T) {
	contentRepo := new(mocks.MockContentRepository)
	svc := services.NewContentService(contentRepo)

	items := []models.Content{
		{ID: 1, Title: "zerg opener A", Premium: true, URL: "https://example.com/a"},
		{ID: 2, Title: "zerg opener B", URL: "https://example.com/b"},
	}
	contentRepo.On("Search", mock.Anything, "zerg", mock.Anything).Return(items, nil)

	got, err := svc.Search(context.Background(), "zerg", 1, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Locked)
	assert.Empty(t, got[0].URL)
}

func TestContentSearch_EmptyQuery(t *testing.T) {
	svc := services.NewContentService(new(mocks.MockContentRepository))

	_, err := svc.Search(context.Background(), "   ", 10, true)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}
