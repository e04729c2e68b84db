package postgres

import "time"

type liveGameTableModel struct {
	ID           int64     `db:"id"`
	GameID       string    `db:"game_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	Revision     int64     `db:"revision"`
	State        string    `db:"state"`
	InitialState string    `db:"initial_state"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type liveGameInsertModel struct {
	GameID       string    `db:"game_public_id"`
	TeamID       string    `db:"team_public_id"`
	Status       string    `db:"status"`
	Revision     int64     `db:"revision"`
	State        string    `db:"state"`
	InitialState string    `db:"initial_state"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type liveGameActionTableModel struct {
	ID        int64     `db:"id"`
	ActionID  string    `db:"action_public_id"`
	GameID    string    `db:"game_public_id"`
	Revision  int64     `db:"revision"`
	Kind      string    `db:"kind"`
	Payload   string    `db:"payload"`
	AppliedAt time.Time `db:"applied_at"`
	CreatedAt time.Time `db:"created_at"`
}

type liveGameActionInsertModel struct {
	ActionID  string    `db:"action_public_id"`
	GameID    string    `db:"game_public_id"`
	Revision  int64     `db:"revision"`
	Kind      string    `db:"kind"`
	Payload   string    `db:"payload"`
	AppliedAt time.Time `db:"applied_at"`
}
