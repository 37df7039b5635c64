package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/services"
)

func uploadFingerprint() *models.ReplayFingerprint {
	count := 1
	blockTime := 12.0
	return &models.ReplayFingerprint{
		Matchup: "TvZ",
		Race:    "terran",
		Metadata: models.Metadata{
			Map:      "Acropolis",
			Duration: 540,
			Result:   "win",
		},
		Economy: &models.EconomyMetrics{
			SupplyBlockCount:     &count,
			TotalSupplyBlockTime: &blockTime,
		},
		Timings: map[string]*float64{},
	}
}

func benchmarkBuildOrder(t *testing.T, id int64, premium bool) *models.BuildOrder {
	t.Helper()
	bench := models.BuildOrderBenchmark{
		Name:    "TvZ 2-1-1 Marine Medivac",
		Race:    "terran",
		Matchup: "TvZ",
		Timings: map[string]float64{"barracks": 45},
	}
	raw, err := json.Marshal(bench)
	require.NoError(t, err)
	return &models.BuildOrder{ID: id, Name: bench.Name, BenchmarkJSON: string(raw), Premium: premium}
}

func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "game.SC2Replay")
	require.NoError(t, err)
	_, err = part.Write([]byte("replay-bytes"))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

// stubReplayStore wires the mock repository so the row created by the upload
// flow is also what later Get calls see.
func (env *testEnv) stubReplayStore() *models.Replay {
	stored := &models.Replay{}
	env.replayRepo.On("Insert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*stored = args.Get(1).(models.Replay)
	}).Return(nil)
	env.replayRepo.On("Get", mock.Anything, mock.Anything).Return(stored, nil)
	env.replayRepo.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	env.replayRepo.On("UpdateFingerprint", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		*stored = args.Get(2).(models.Replay)
	}).Return(nil)
	return stored
}

func TestUploadReplay_SyncWithTargetBuild(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{ID: 7, DiscordID: "d1", Username: "player"}
	env.allowUser(user)
	env.stubReplayStore()

	env.parser.On("ParseReplay", mock.Anything, "game.SC2Replay", []byte("replay-bytes")).
		Return(uploadFingerprint(), nil)
	env.buildOrderRepo.On("Get", mock.Anything, int64(5)).Return(benchmarkBuildOrder(t, 5, false), nil)

	body, contentType := multipartUpload(t, map[string]string{"target_build_id": "5"})
	req := httptest.NewRequest(http.MethodPost, "/api/replays", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "d1", "player", false))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var report services.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NotNil(t, report.Replay)
	assert.Equal(t, "TvZ", report.Replay.Matchup)
	assert.Equal(t, "completed", report.Replay.AnalysisStatus)
	require.NotNil(t, report.Comparison)
	require.NotNil(t, report.Comparison.ExecutionScore)
	assert.NotNil(t, report.Issues)
}

func TestUploadReplay_AsyncQueuesJob(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{ID: 7, DiscordID: "d1", Username: "player"}
	env.allowUser(user)
	env.stubReplayStore()

	body, contentType := multipartUpload(t, map[string]string{"async": "true"})
	req := httptest.NewRequest(http.MethodPost, "/api/replays", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "d1", "player", false))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	// The pool was never started, so the queued job is still pending.
	assert.Equal(t, 1, env.server.ParsePool.QueueSize())
	env.parser.AssertNotCalled(t, "ParseReplay", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadReplay_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	env.allowUser(&models.User{ID: 7, DiscordID: "d1", Username: "player"})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("target_build_id", "5"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/replays", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "d1", "player", false))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestReplayAnalysis_PremiumBenchmarkGated(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{ID: 7, DiscordID: "d1", Username: "player"}
	env.allowUser(user)

	raw, err := json.Marshal(uploadFingerprint())
	require.NoError(t, err)
	env.replayRepo.On("Get", mock.Anything, "r1").Return(&models.Replay{
		ID: "r1", UserID: 7, FingerprintJSON: string(raw), AnalysisStatus: "completed",
	}, nil)
	env.buildOrderRepo.On("Get", mock.Anything, int64(9)).Return(benchmarkBuildOrder(t, 9, true), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/replays/r1/analysis?target_build_id=9", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "d1", "player", false))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "SUBSCRIPTION_REQUIRED")
}

func TestGetReplay_OtherUsersReplayHidden(t *testing.T) {
	env := newTestEnv(t)
	env.allowUser(&models.User{ID: 7, DiscordID: "d1", Username: "player"})

	env.replayRepo.On("Get", mock.Anything, "r1").Return(&models.Replay{ID: "r1", UserID: 99}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/replays/r1", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, testSecret, "d1", "player", false))
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
