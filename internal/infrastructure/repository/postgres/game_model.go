package postgres

import (
	"database/sql"
	"time"
)

type gameTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	TeamID       string         `db:"team_public_id"`
	Name         string         `db:"name"`
	Opponent     sql.NullString `db:"opponent"`
	ScheduledAt  time.Time      `db:"scheduled_at"`
	Status       string         `db:"status"`
	TotalPeriods sql.NullInt64  `db:"total_periods"`
	PeriodLength sql.NullInt64  `db:"period_length_minutes"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    *time.Time     `db:"deleted_at"`
}

type gameInsertModel struct {
	PublicID     string    `db:"public_id"`
	TeamID       string    `db:"team_public_id"`
	Name         string    `db:"name"`
	Opponent     *string   `db:"opponent"`
	ScheduledAt  time.Time `db:"scheduled_at"`
	Status       string    `db:"status"`
	TotalPeriods *int      `db:"total_periods"`
	PeriodLength *int      `db:"period_length_minutes"`
}
