package player

import "fmt"

// Status is the on-field lifecycle state of a player during a match.
type Status string

const (
	// StatusOff marks a bench player eligible to enter.
	StatusOff Status = "OFF"
	// StatusOn marks a player currently on the field.
	StatusOn Status = "ON"
	// StatusNext marks a player confirmed to enter at the next stoppage.
	StatusNext Status = "NEXT"
	// StatusOut marks an unavailable player (injury, ejection).
	StatusOut Status = "OUT"
)

var AllStatuses = map[Status]struct{}{
	StatusOff:  {},
	StatusOn:   {},
	StatusNext: {},
	StatusOut:  {},
}

// Player is a roster member as supplied to a live game.
type Player struct {
	ID            string
	Name          string
	UniformNumber int
	Positions     []string
	Status        Status
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.UniformNumber < 0 {
		return fmt.Errorf("player uniform number must not be negative")
	}
	if p.Status != "" {
		if _, ok := AllStatuses[p.Status]; !ok {
			return fmt.Errorf("invalid player status: %s", p.Status)
		}
	}

	return nil
}

// Clone returns a copy that shares no slices with p.
func (p Player) Clone() Player {
	copied := p
	copied.Positions = append([]string(nil), p.Positions...)
	return copied
}
