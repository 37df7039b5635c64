package models

import "time"

type User struct {
	ID         int64      `json:"id"`
	DiscordID  string     `json:"discord_id"`
	Username   string     `json:"username"`
	Subscriber bool       `json:"subscriber"`
	CreatedAt  time.Time  `json:"created_at"`
	LastSeenAt *time.Time `json:"last_seen_at"`
}

type Replay struct {
	ID              string    `json:"id"`
	UserID          int64     `json:"user_id"`
	Filename        string    `json:"filename"`
	Matchup         string    `json:"matchup"`
	Race            string    `json:"race"`
	Map             string    `json:"map"`
	Result          string    `json:"result"`
	DurationSeconds float64   `json:"duration_seconds"`
	FingerprintJSON string    `json:"-"`
	AnalysisStatus  string    `json:"analysis_status"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

type ReplayFilter struct {
	UserID   int64
	Matchup  string
	Race     string
	Result   string
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}

type BuildOrder struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Race          string    `json:"race"`
	Matchup       string    `json:"matchup"`
	Difficulty    string    `json:"difficulty"`
	Description   string    `json:"description"`
	BenchmarkJSON string    `json:"-"`
	Premium       bool      `json:"premium"`
	CreatedAt     time.Time `json:"created_at"`
}

type BuildOrderFilter struct {
	Race       string
	Matchup    string
	Difficulty string
	Limit      int
	Offset     int
}

type Content struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"` // video, masterclass, replay_pack
	Race        string    `json:"race"`
	Matchup     string    `json:"matchup"`
	URL         string    `json:"url,omitempty"`
	Tags        string    `json:"tags"`
	Premium     bool      `json:"premium"`
	Locked      bool      `json:"locked"`
	PublishedAt time.Time `json:"published_at"`
}

type ContentFilter struct {
	Kind    string
	Race    string
	Matchup string
	Tag     string
	Limit   int
	Offset  int
}

// CoachingEvent is a scheduled coaching session surfaced on the calendar feed.
type CoachingEvent struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Coach           string    `json:"coach"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Premium         bool      `json:"premium"`
}
