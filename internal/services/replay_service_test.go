package services_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/services"
	"github.com/probuilds/sc2coach/internal/testutil/mocks"
)

func testFingerprint() *models.ReplayFingerprint {
	count := 2
	blockTime := 25.0
	return &models.ReplayFingerprint{
		Matchup:    "TvZ",
		Race:       "terran",
		PlayerName: "uploader",
		Metadata: models.Metadata{
			Map:      "Acropolis",
			Duration: 612,
			Result:   "win",
		},
		Economy: &models.EconomyMetrics{
			SupplyBlockCount:     &count,
			TotalSupplyBlockTime: &blockTime,
		},
	}
}

func TestCreate(t *testing.T) {
	replayRepo := new(mocks.MockReplayRepository)
	parser := new(mocks.MockSC2ReaderClient)
	svc := services.NewReplayService(replayRepo, parser)

	replayRepo.On("Insert", mock.Anything, mock.MatchedBy(func(r models.Replay) bool {
		return r.UserID == 7 && r.Filename == "game.SC2Replay" && r.AnalysisStatus == "pending" && r.ID != ""
	})).Return(nil)

	replay, err := svc.Create(context.Background(), 7, "game.SC2Replay")
	require.NoError(t, err)
	assert.NotEmpty(t, replay.ID)
	assert.Equal(t, "pending", replay.AnalysisStatus)
	replayRepo.AssertExpectations(t)
}

func TestCreate_EmptyFilename(t *testing.T) {
	svc := services.NewReplayService(new(mocks.MockReplayRepository), new(mocks.MockSC2ReaderClient))

	_, err := svc.Create(context.Background(), 7, "")
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestParse_Success(t *testing.T) {
	replayRepo := new(mocks.MockReplayRepository)
	parser := new(mocks.MockSC2ReaderClient)
	svc := services.NewReplayService(replayRepo, parser)

	stored := &models.Replay{ID: "r1", UserID: 7, Filename: "game.SC2Replay", AnalysisStatus: "pending"}
	data := []byte("replay-bytes")

	replayRepo.On("Get", mock.Anything, "r1").Return(stored, nil)
	replayRepo.On("UpdateStatus", mock.Anything, "r1", "processing").Return(nil)
	parser.On("ParseReplay", mock.Anything, "game.SC2Replay", data).Return(testFingerprint(), nil)
	replayRepo.On("UpdateFingerprint", mock.Anything, "r1", mock.MatchedBy(func(r models.Replay) bool {
		return r.Matchup == "TvZ" &&
			r.Race == "terran" &&
			r.Map == "Acropolis" &&
			r.Result == "win" &&
			r.DurationSeconds == 612 &&
			r.AnalysisStatus == "completed" &&
			r.FingerprintJSON != ""
	})).Return(nil)

	err := svc.Parse(context.Background(), "r1", data)
	require.NoError(t, err)
	replayRepo.AssertExpectations(t)
	parser.AssertExpectations(t)
}

func TestParse_ParserFailureMarksFailed(t *testing.T) {
	replayRepo := new(mocks.MockReplayRepository)
	parser := new(mocks.MockSC2ReaderClient)
	svc := services.NewReplayService(replayRepo, parser)

	stored := &models.Replay{ID: "r1", UserID: 7, Filename: "corrupt.SC2Replay"}

	replayRepo.On("Get", mock.Anything, "r1").Return(stored, nil)
	replayRepo.On("UpdateStatus", mock.Anything, "r1", "processing").Return(nil)
	parser.On("ParseReplay", mock.Anything, "corrupt.SC2Replay", mock.Anything).
		Return(nil, assert.AnError)
	replayRepo.On("UpdateStatus", mock.Anything, "r1", "failed").Return(nil)

	err := svc.Parse(context.Background(), "r1", []byte("junk"))
	require.Error(t, err)
	replayRepo.AssertCalled(t, "UpdateStatus", mock.Anything, "r1", "failed")
}

func TestParse_NotFound(t *testing.T) {
	replayRepo := new(mocks.MockReplayRepository)
	svc := services.NewReplayService(replayRepo, new(mocks.MockSC2ReaderClient))

	replayRepo.On("Get", mock.Anything, "missing").Return(nil, sql.ErrNoRows)

	err := svc.Parse(context.Background(), "missing", []byte("x"))
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestGet_WrongOwnerLooksLikeNotFound(t *testing.T) {
	replayRepo := new(mocks.MockReplayRepository)
	svc := services.NewReplayService(replayRepo, new(mocks.MockSC2ReaderClient))

	replayRepo.On("Get", mock.Anything, "r1").Return(&models.Replay{ID: "r1", UserID: 2}, nil)

	_, err := svc.Get(context.Background(), "r1", 1)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
}

func TestFingerprint_RoundTrip(t *testing.T) {
	svc := services.NewReplayService(new(mocks.MockReplayRepository), new(mocks.MockSC2ReaderClient))

	raw, err := json.Marshal(testFingerprint())
	require.NoError(t, err)

	fp, err := svc.Fingerprint(context.Background(), &models.Replay{ID: "r1", FingerprintJSON: string(raw)})
	require.NoError(t, err)
	assert.Equal(t, "TvZ", fp.Matchup)
	require.NotNil(t, fp.Economy.SupplyBlockCount)
	assert.Equal(t, 2, *fp.Economy.SupplyBlockCount)
}

func TestFingerprint_Unparsed(t *testing.T) {
	svc := services.NewReplayService(new(mocks.MockReplayRepository), new(mocks.MockSC2ReaderClient))

	_, err := svc.Fingerprint(context.Background(), &models.Replay{ID: "r1"})
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeBadRequest, appErr.Code)
}
