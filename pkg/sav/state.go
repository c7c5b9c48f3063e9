package sav

// State tracks a save through loading, editing and resigning.
type State uint8

const (
	StateUnresolved State = iota
	StateActiveCopySelected
	StateValidated
	StateDirty
	StateResigned
)

func (s State) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateActiveCopySelected:
		return "active-copy-selected"
	case StateValidated:
		return "validated"
	case StateDirty:
		return "dirty"
	case StateResigned:
		return "resigned"
	}
	return "unknown"
}

// Game is the gen 3 game family a save belongs to.
type Game uint8

const (
	GameRS Game = iota
	GameFRLG
	GameE
)

func (g Game) String() string {
	switch g {
	case GameRS:
		return "ruby-sapphire"
	case GameFRLG:
		return "firered-leafgreen"
	case GameE:
		return "emerald"
	}
	return "unknown"
}

// teamOffsets returns the party count and first party slot offsets in the
// team block.
func (g Game) teamOffsets() (count, party int) {
	if g == GameFRLG {
		return 0x34, 0x38
	}
	return 0x234, 0x238
}
