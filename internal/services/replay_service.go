package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/probuilds/sc2coach/internal/errors"
	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
	"github.com/probuilds/sc2coach/internal/sc2reader"
)

// ReplayService handles replay upload, parsing and retrieval business logic
type ReplayService interface {
	Upload(ctx context.Context, userID int64, filename string, data []byte) (*models.Replay, error)
	Create(ctx context.Context, userID int64, filename string) (*models.Replay, error)
	Parse(ctx context.Context, replayID string, data []byte) error
	Get(ctx context.Context, id string, userID int64) (*models.Replay, error)
	List(ctx context.Context, filter models.ReplayFilter) ([]models.Replay, int, error)
	Delete(ctx context.Context, id string, userID int64) error
	Fingerprint(ctx context.Context, replay *models.Replay) (*models.ReplayFingerprint, error)
}

type replayService struct {
	replayRepo repository.ReplayRepository
	parser     sc2reader.ClientInterface
}

// NewReplayService creates a new ReplayService
func NewReplayService(replayRepo repository.ReplayRepository, parser sc2reader.ClientInterface) ReplayService {
	return &replayService{
		replayRepo: replayRepo,
		parser:     parser,
	}
}

// Upload runs the full pipeline synchronously: insert a pending row, send the
// bytes to the parser, store the fingerprint.
func (s *replayService) Upload(ctx context.Context, userID int64, filename string, data []byte) (*models.Replay, error) {
	replay, err := s.Create(ctx, userID, filename)
	if err != nil {
		return nil, err
	}
	if err := s.Parse(ctx, replay.ID, data); err != nil {
		return nil, err
	}
	return s.Get(ctx, replay.ID, userID)
}

func (s *replayService) Create(ctx context.Context, userID int64, filename string) (*models.Replay, error) {
	log := logger.FromContext(ctx)

	if filename == "" {
		return nil, errors.NewValidationError("filename", "cannot be empty")
	}

	replay := models.Replay{
		ID:             uuid.NewString(),
		UserID:         userID,
		Filename:       filename,
		AnalysisStatus: "pending",
		UploadedAt:     time.Now().UTC(),
	}
	if err := s.replayRepo.Insert(ctx, replay); err != nil {
		log.Error("failed to insert replay: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Debug("created replay record: id=%s, filename=%s", replay.ID, filename)
	return &replay, nil
}

// Parse sends the replay bytes to the sc2reader sidecar and stores the
// resulting fingerprint. On parser failure the row is marked failed, not
// deleted, so the upload remains visible to the user.
func (s *replayService) Parse(ctx context.Context, replayID string, data []byte) error {
	log := logger.FromContext(ctx).WithField("replay_id", replayID)

	replay, err := s.replayRepo.Get(ctx, replayID)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("replay", replayID)
		}
		log.Error("failed to get replay: %v", err)
		return errors.NewInternalError(err)
	}

	if err := s.replayRepo.UpdateStatus(ctx, replayID, "processing"); err != nil {
		log.Warn("failed to mark replay processing: %v", err)
	}

	fp, err := s.parser.ParseReplay(ctx, replay.Filename, data)
	if err != nil {
		log.Error("failed to parse replay: %v", err)
		_ = s.replayRepo.UpdateStatus(ctx, replayID, "failed")
		return errors.NewInternalError(err)
	}

	fpJSON, err := json.Marshal(fp)
	if err != nil {
		log.Error("failed to marshal fingerprint: %v", err)
		_ = s.replayRepo.UpdateStatus(ctx, replayID, "failed")
		return errors.NewInternalError(err)
	}

	updated := *replay
	updated.Matchup = fp.Matchup
	updated.Race = fp.Race
	updated.Map = fp.Metadata.Map
	updated.Result = fp.Metadata.Result
	updated.DurationSeconds = fp.Metadata.Duration
	updated.FingerprintJSON = string(fpJSON)
	updated.AnalysisStatus = "completed"

	if err := s.replayRepo.UpdateFingerprint(ctx, replayID, updated); err != nil {
		log.Error("failed to store fingerprint: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("replay parsed: matchup=%s, map=%s, duration=%.0fs", fp.Matchup, fp.Metadata.Map, fp.Metadata.Duration)
	return nil
}

func (s *replayService) Get(ctx context.Context, id string, userID int64) (*models.Replay, error) {
	log := logger.FromContext(ctx)

	replay, err := s.replayRepo.Get(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("replay", id)
		}
		log.Error("failed to get replay: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// Ownership check: replays from other users look like they do not exist.
	if replay.UserID != userID {
		return nil, errors.NewNotFoundError("replay", id)
	}
	return replay, nil
}

func (s *replayService) List(ctx context.Context, filter models.ReplayFilter) ([]models.Replay, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing replays: user_id=%d", filter.UserID)

	replays, err := s.replayRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list replays: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.replayRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count replays: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return replays, totalCount, nil
}

func (s *replayService) Delete(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting replay: id=%s, user_id=%d", id, userID)

	if err := s.replayRepo.Delete(ctx, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("replay", id)
		}
		log.Error("failed to delete replay: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// Fingerprint decodes the stored fingerprint JSON for a replay.
func (s *replayService) Fingerprint(ctx context.Context, replay *models.Replay) (*models.ReplayFingerprint, error) {
	if replay.FingerprintJSON == "" {
		return nil, errors.NewBadRequestError("replay has not been parsed yet")
	}

	var fp models.ReplayFingerprint
	if err := json.Unmarshal([]byte(replay.FingerprintJSON), &fp); err != nil {
		logger.FromContext(ctx).Error("failed to unmarshal fingerprint for replay %s: %v", replay.ID, err)
		return nil, errors.NewInternalError(err)
	}
	return &fp, nil
}
