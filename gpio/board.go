package gpio

// Flags describing how a GPIO is wired on the board.
const (
	FlagDir       uint16 = 1 << 0 // 0 input, 1 output
	FlagVal       uint16 = 1 << 1 // 0 de-assert, 1 assert
	FlagActiveLow uint16 = 1 << 2 // logical 1 drives the line low
	FlagPull      uint16 = 1 << 3 // 0 pull-down, 1 pull-up
)

// Lookup associates a logical GPIO id with its controller.
type Lookup struct {
	ID        uint16
	ChipLabel string
	Offset    uint16
	Flags     uint16
}

// LookupTable is a board's GPIO map, registered as one unit.
type LookupTable struct {
	Entries []Lookup
}

func (t *LookupTable) find(id uint16) *Lookup {
	for i := range t.Entries {
		if t.Entries[i].ID == id {
			return &t.Entries[i]
		}
	}
	return nil
}
