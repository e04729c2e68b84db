package game

import (
	"fmt"
	"time"
)

// Status is the persisted lifecycle of a game record.
type Status string

const (
	StatusNew   Status = "NEW"
	StatusStart Status = "START"
	StatusDone  Status = "DONE"
)

// PeriodConfig describes how a match is split into timed periods.
type PeriodConfig struct {
	TotalPeriods int
	PeriodLength int // minutes
}

func (c PeriodConfig) Validate() error {
	if c.TotalPeriods <= 0 {
		return fmt.Errorf("total periods must be greater than zero")
	}
	if c.PeriodLength <= 0 {
		return fmt.Errorf("period length must be greater than zero")
	}
	return nil
}

// Game is the scheduled match a live game is built from.
type Game struct {
	ID          string
	TeamID      string
	Name        string
	Opponent    string
	ScheduledAt time.Time
	Status      Status
	Periods     *PeriodConfig
	UpdatedAt   time.Time
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.TeamID == "" {
		return fmt.Errorf("game team id is required")
	}
	switch g.Status {
	case StatusNew, StatusStart, StatusDone:
	default:
		return fmt.Errorf("invalid game status: %s", g.Status)
	}
	if g.Periods != nil {
		if err := g.Periods.Validate(); err != nil {
			return err
		}
	}

	return nil
}
