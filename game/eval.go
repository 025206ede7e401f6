package game

// EvaluateThreats scores a non-terminal state between -1 and 1 from the
// current player's perspective. A threat is a line with exactly three
// pieces sharing an attribute and one empty cell. Holding an active piece
// that completes a threat is close to a win; otherwise the player to act
// must eventually hand over a piece, so board threats that many pool
// pieces can complete count against them.
func EvaluateThreats(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if gs.Phase == GameOver {
		if gs.WonBy == gs.CurrentPlayer {
			return 1
		}
		if gs.WonBy != 0 {
			return -1
		}
		return 0
	}

	threats := gs.threatMasks()
	if len(threats) == 0 {
		return 0
	}

	// Active piece completes a threat: the mover can win immediately.
	if gs.Active != NoPiece && pieceCompletesAny(gs.Active, threats) {
		return 0.95
	}

	// Count pool pieces that would complete some threat: any of those is
	// unsafe to give, so the more there are, the worse for the giver.
	unsafe := 0
	pool := gs.PoolPieces()
	for _, p := range pool {
		if pieceCompletesAny(p, threats) {
			unsafe++
		}
	}
	if len(pool) == 0 {
		return 0
	}
	return -0.5 * float64(unsafe) / float64(len(pool))
}

// EvaluateNeutral scores every non-terminal state as even. Useful as a
// baseline and for pure-win-signal search.
func EvaluateNeutral(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if gs.Phase == GameOver && gs.WonBy != 0 {
		if gs.WonBy == gs.CurrentPlayer {
			return 1
		}
		return -1
	}
	return 0
}

// threatMasks returns, for each line with exactly three pieces and a
// shared attribute, the mask of attribute agreements: bits 0-3 set where
// all three share a 1, encoded with the complement trick of the detector.
// A piece completes the threat when it agrees on any shared position.
type threatMask struct {
	shared uint8 // positions where the three pieces agree
	ones   uint8 // agreed value at those positions (1 bits)
}

func (gs *GameState) threatMasks() []threatMask {
	var threats []threatMask
	for _, line := range gs.Rules.WinningLines() {
		and := uint8(attrMaskAll)
		or := uint8(0)
		occupied := 0
		for _, c := range line.Cells {
			p := gs.Board.cells[c.Index()]
			if p == NoPiece {
				continue
			}
			occupied++
			and &= p.mask()
			or |= p.mask()
		}
		if occupied != 3 {
			continue
		}
		shared := and | (^or & attrMaskAll)
		if shared == 0 {
			continue
		}
		threats = append(threats, threatMask{shared: shared, ones: and})
	}
	return threats
}

func pieceCompletesAny(p Piece, threats []threatMask) bool {
	for _, t := range threats {
		agree := ^(p.mask() ^ t.ones) & attrMaskAll
		if agree&t.shared != 0 {
			return true
		}
	}
	return false
}
