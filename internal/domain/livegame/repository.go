package livegame

import (
	"context"
	"errors"
	"time"
)

// ErrRevisionConflict is returned when a snapshot changed since it was read.
var ErrRevisionConflict = errors.New("live game revision conflict")

// Snapshot is a persisted LiveGame. Initial is the state the game was opened
// with and is the base every replay starts from.
type Snapshot struct {
	Game      LiveGame
	Initial   LiveGame
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActionRecord is one entry of a game's action log. Revision is the snapshot
// revision the action produced.
type ActionRecord struct {
	ID        string
	GameID    string
	Revision  int64
	Kind      ActionKind
	Action    Action
	AppliedAt time.Time
}

// Repository persists snapshots together with their action log.
type Repository interface {
	Get(ctx context.Context, gameID string) (Snapshot, bool, error)
	// Create stores the first revision of a game. It fails with
	// ErrRevisionConflict when the game was already opened.
	Create(ctx context.Context, snapshot Snapshot) error
	// Commit stores snapshot and appends record atomically. The stored
	// revision must equal snapshot.Revision-1.
	Commit(ctx context.Context, snapshot Snapshot, record ActionRecord) error
	// ListOpen returns snapshots of games that have not finished.
	ListOpen(ctx context.Context) ([]Snapshot, error)
	ListActions(ctx context.Context, gameID string) ([]ActionRecord, error)
}

func TimedActions(records []ActionRecord) []TimedAction {
	out := make([]TimedAction, 0, len(records))
	for _, record := range records {
		out = append(out, TimedAction{Action: record.Action, AppliedAt: record.AppliedAt})
	}
	return out
}
