package livegame

// ProposedStarter pairs the selected starter with the selected starter position.
func (g LiveGame) ProposedStarter() (LivePlayer, bool) {
	idx := g.indexOf(g.Selection.StarterPlayerID)
	if idx < 0 {
		return LivePlayer{}, false
	}
	return proposeStarter(g.Players[idx], g.Selection.StarterPosition)
}

// ProposedSub pairs the selected bench player with the selected on-field player.
func (g LiveGame) ProposedSub() (LivePlayer, bool) {
	in := g.indexOf(g.Selection.OffPlayerID)
	out := g.indexOf(g.Selection.OnPlayerID)
	if in < 0 || out < 0 {
		return LivePlayer{}, false
	}
	return proposeSub(g.Players[in], g.Players[out])
}

func proposeStarter(candidate LivePlayer, position *Position) (LivePlayer, bool) {
	if position == nil {
		return LivePlayer{}, false
	}
	proposal := candidate
	proposal.CurrentPosition = copyPosition(position)
	return proposal, true
}

func proposeSub(incoming, outgoing LivePlayer) (LivePlayer, bool) {
	if incoming.ID == outgoing.ID {
		return LivePlayer{}, false
	}
	proposal := incoming
	proposal.CurrentPosition = copyPosition(outgoing.CurrentPosition)
	proposal.Replaces = outgoing.ID
	return proposal, true
}
