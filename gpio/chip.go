package gpio

// Config selects GPIO flags to change: only bits set in Mask are applied.
type Config struct {
	Flags uint16
	Mask  uint16
}

// Driver is the controller side of a chip. Offsets are relative to the chip.
type Driver interface {
	SetValue(offset uint16, value int) error
	GetValue(offset uint16) (int, error)
	SetConfig(offset uint16, cfg Config) error
}

// Chip describes one GPIO controller.
type Chip struct {
	Label    string
	NumGPIOs uint16
	Driver   Driver
}

// ChipTable is a group of controllers registered together.
type ChipTable struct {
	Chips []Chip
}

// find returns the first chip whose label is exactly label.
func (t *ChipTable) find(label string) *Chip {
	for i := range t.Chips {
		if t.Chips[i].Label == label {
			return &t.Chips[i]
		}
	}
	return nil
}
