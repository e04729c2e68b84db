package postgres

import (
	"time"

	"github.com/lib/pq"
)

type rosterPlayerTableModel struct {
	ID            int64          `db:"id"`
	TeamID        string         `db:"team_public_id"`
	PlayerID      string         `db:"player_public_id"`
	Name          string         `db:"name"`
	UniformNumber int            `db:"uniform_number"`
	Positions     pq.StringArray `db:"positions"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type rosterPlayerInsertModel struct {
	TeamID        string         `db:"team_public_id"`
	PlayerID      string         `db:"player_public_id"`
	Name          string         `db:"name"`
	UniformNumber int            `db:"uniform_number"`
	Positions     pq.StringArray `db:"positions"`
}
