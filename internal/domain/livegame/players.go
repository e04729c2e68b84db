package livegame

import "github.com/riskibarqy/live-match/internal/domain/player"

type selectionBucket int

const (
	bucketOff selectionBucket = iota
	bucketOn
	bucketStarter
)

func (s Selection) tracked(bucket selectionBucket) string {
	switch bucket {
	case bucketOff:
		return s.OffPlayerID
	case bucketOn:
		return s.OnPlayerID
	default:
		return s.StarterPlayerID
	}
}

func (s Selection) with(bucket selectionBucket, playerID string) Selection {
	switch bucket {
	case bucketOff:
		s.OffPlayerID = playerID
	case bucketOn:
		s.OnPlayerID = playerID
	default:
		s.StarterPlayerID = playerID
	}
	return s
}

func (g LiveGame) selectPlayer(playerID string, selected bool) LiveGame {
	idx := g.indexOf(playerID)
	if idx < 0 {
		return g
	}

	switch g.Players[idx].Status {
	case player.StatusOff:
		return g.track(bucketOff, idx, selected)
	case player.StatusOn:
		return g.track(bucketOn, idx, selected)
	default:
		return g.setSelected(idx, selected)
	}
}

func (g LiveGame) selectStarter(playerID string, selected bool) LiveGame {
	idx := g.indexOf(playerID)
	if idx < 0 {
		return g
	}

	switch g.Players[idx].Status {
	case player.StatusOff, player.StatusOn:
		return g.track(bucketStarter, idx, selected)
	default:
		return g.setSelected(idx, selected)
	}
}

// track records (or drops) the player at idx as the bucket's selection.
// A new selection replaces the previous one in the same bucket.
func (g LiveGame) track(bucket selectionBucket, idx int, selected bool) LiveGame {
	id := g.Players[idx].ID
	prev := g.Selection.tracked(bucket)

	sel := g.Selection
	switch {
	case selected:
		sel = sel.with(bucket, id)
	case prev == id:
		sel = sel.with(bucket, "")
	}

	if sel.equal(g.Selection) && g.Players[idx].Selected == sel.tracks(id) {
		return g
	}

	next := g.clone()
	next.Selection = sel
	next.syncFlag(idx)
	if prev != "" && prev != id {
		if j := next.indexOf(prev); j >= 0 {
			next.syncFlag(j)
		}
	}
	return next
}

func (g LiveGame) setSelected(idx int, selected bool) LiveGame {
	if g.Players[idx].Selected == selected {
		return g
	}
	next := g.clone()
	next.Players[idx].Selected = selected
	return next
}

func (g *LiveGame) syncFlag(idx int) {
	g.Players[idx].Selected = g.Selection.tracks(g.Players[idx].ID)
}

// normalizeSelection drops bucket selections whose player no longer has an
// eligible status and realigns the selected flag of off/on players.
func (g *LiveGame) normalizeSelection() {
	if !g.hasStatus(g.Selection.OffPlayerID, player.StatusOff) {
		g.Selection.OffPlayerID = ""
	}
	if !g.hasStatus(g.Selection.OnPlayerID, player.StatusOn) {
		g.Selection.OnPlayerID = ""
	}
	if !g.hasStatus(g.Selection.StarterPlayerID, player.StatusOff, player.StatusOn) {
		g.Selection.StarterPlayerID = ""
	}

	for i := range g.Players {
		switch g.Players[i].Status {
		case player.StatusOff, player.StatusOn:
			g.syncFlag(i)
		}
	}
}

func (g LiveGame) hasStatus(playerID string, statuses ...player.Status) bool {
	idx := g.indexOf(playerID)
	if idx < 0 {
		return false
	}
	for _, status := range statuses {
		if g.Players[idx].Status == status {
			return true
		}
	}
	return false
}

func (g LiveGame) selectStarterPosition(position *Position) LiveGame {
	if samePosition(g.Selection.StarterPosition, position) {
		return g
	}
	next := g
	next.Selection.StarterPosition = copyPosition(position)
	return next
}

func (g LiveGame) applyStarter() LiveGame {
	proposal, ok := g.ProposedStarter()
	if !ok {
		return g
	}

	next := g.clone()
	position := copyPosition(proposal.CurrentPosition)
	for i := range next.Players {
		p := &next.Players[i]
		if p.ID == proposal.ID || p.Status != player.StatusOn || p.CurrentPosition == nil {
			continue
		}
		if p.CurrentPosition.Equal(*position) {
			p.Status = player.StatusOff
			p.CurrentPosition = nil
		}
	}

	idx := next.indexOf(proposal.ID)
	next.Players[idx].Status = player.StatusOn
	next.Players[idx].CurrentPosition = position
	next.Selection.StarterPlayerID = ""
	next.Selection.StarterPosition = nil
	next.normalizeSelection()
	return next
}

func (g LiveGame) cancelStarter() LiveGame {
	if g.Selection.StarterPlayerID == "" && g.Selection.StarterPosition == nil {
		return g
	}
	next := g.clone()
	next.Selection.StarterPlayerID = ""
	next.Selection.StarterPosition = nil
	next.normalizeSelection()
	return next
}

func (g LiveGame) confirmSub() LiveGame {
	proposal, ok := g.ProposedSub()
	if !ok {
		return g
	}

	next := g.clone()
	idx := next.indexOf(proposal.ID)
	proposal.Status = player.StatusNext
	next.Players[idx] = proposal
	next.Selection.OffPlayerID = ""
	next.Selection.OnPlayerID = ""
	next.normalizeSelection()
	return next
}

func (g LiveGame) cancelSub() LiveGame {
	if g.Selection.OffPlayerID == "" && g.Selection.OnPlayerID == "" {
		return g
	}
	next := g.clone()
	next.Selection.OffPlayerID = ""
	next.Selection.OnPlayerID = ""
	next.normalizeSelection()
	return next
}

func pendingSub(p LivePlayer, selectedOnly bool) bool {
	if p.Status != player.StatusNext {
		return false
	}
	return !selectedOnly || p.Selected
}

// applyPendingSubs promotes queued players whose replaced player is still on
// the field and sends the replaced player to the bench.
func (g LiveGame) applyPendingSubs(selectedOnly bool) LiveGame {
	next := g.clone()
	changed := false
	for i := range next.Players {
		if !pendingSub(next.Players[i], selectedOnly) {
			continue
		}
		j := next.indexOf(next.Players[i].Replaces)
		if j < 0 || next.Players[j].Status != player.StatusOn {
			continue
		}

		in := &next.Players[i]
		in.Status = player.StatusOn
		in.Replaces = ""
		in.Selected = false
		in.NextPosition = nil
		in.IsSwap = false

		out := &next.Players[j]
		out.Status = player.StatusOff
		out.CurrentPosition = nil
		out.Selected = false
		changed = true
	}
	if !changed {
		return g
	}

	next.normalizeSelection()
	return next
}

func (g LiveGame) discardPendingSubs(selectedOnly bool) LiveGame {
	next := g.clone()
	changed := false
	for i := range next.Players {
		if !pendingSub(next.Players[i], selectedOnly) {
			continue
		}
		p := &next.Players[i]
		p.Status = player.StatusOff
		p.Replaces = ""
		p.CurrentPosition = nil
		p.NextPosition = nil
		p.IsSwap = false
		p.Selected = false
		changed = true
	}
	if !changed {
		return g
	}

	next.normalizeSelection()
	return next
}

func (g LiveGame) markPlayerOut(playerID string) LiveGame {
	idx := g.indexOf(playerID)
	if idx < 0 || g.Players[idx].Status == player.StatusOut {
		return g
	}

	next := g.clone()
	p := &next.Players[idx]
	p.Status = player.StatusOut
	p.CurrentPosition = nil
	p.NextPosition = nil
	p.Replaces = ""
	p.IsSwap = false
	p.Selected = false
	next.normalizeSelection()
	return next
}

func (g LiveGame) returnOutPlayer(playerID string) LiveGame {
	idx := g.indexOf(playerID)
	if idx < 0 || g.Players[idx].Status != player.StatusOut {
		return g
	}

	next := g.clone()
	next.Players[idx].Status = player.StatusOff
	next.Players[idx].Selected = false
	next.normalizeSelection()
	return next
}
