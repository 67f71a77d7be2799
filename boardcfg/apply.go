package boardcfg

import (
	"fmt"
	"strings"

	"devobj-go/drivers/pcf8574"
	"devobj-go/gpio"
	"devobj-go/gpio/simchip"

	"go.uber.org/zap"
	"tinygo.org/x/drivers"
)

// ParseFlags converts flag names into gpio lookup flags.
// Accepts: input, output, high, low, active_low, pull_up, pull_down.
func ParseFlags(names []string) (uint16, error) {
	var f uint16
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "input", "low", "pull_down":
		case "output":
			f |= gpio.FlagDir
		case "high":
			f |= gpio.FlagVal
		case "active_low":
			f |= gpio.FlagActiveLow
		case "pull_up":
			f |= gpio.FlagPull
		default:
			return 0, fmt.Errorf("unknown flag %q", n)
		}
	}
	return f, nil
}

// Factory builds drivers for chip entries.
type Factory interface {
	Driver(c ChipConfig) (gpio.Driver, error)
}

// HostFactory builds simulated chips and PCF8574 expanders on the given
// I²C buses.
type HostFactory struct {
	Buses map[string]drivers.I2C
}

func (f HostFactory) Driver(c ChipConfig) (gpio.Driver, error) {
	switch c.Driver {
	case DriverSim:
		return simchip.New(c.GPIOs), nil
	case DriverPCF8574:
		bus, ok := f.Buses[c.Bus]
		if !ok {
			return nil, fmt.Errorf("chip %q: unknown bus %q", c.Label, c.Bus)
		}
		d := pcf8574.New(bus, c.Address)
		if err := d.Configure(); err != nil {
			return nil, fmt.Errorf("chip %q: %w", c.Label, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("chip %q: unknown driver %q", c.Label, c.Driver)
}

// Apply builds every chip through f and registers one chip table and one
// lookup table with sub, in file order.
func Apply(sub *gpio.Subsystem, cfg *Config, f Factory, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if len(cfg.Chips) > 0 {
		ct := &gpio.ChipTable{Chips: make([]gpio.Chip, 0, len(cfg.Chips))}
		for _, c := range cfg.Chips {
			drv, err := f.Driver(c)
			if err != nil {
				return err
			}
			ct.Chips = append(ct.Chips, gpio.Chip{Label: c.Label, NumGPIOs: c.pins(), Driver: drv})
		}
		if err := sub.AddChipTable(ct); err != nil {
			return err
		}
	}
	if len(cfg.Lookups) > 0 {
		lt := &gpio.LookupTable{Entries: make([]gpio.Lookup, 0, len(cfg.Lookups))}
		for _, l := range cfg.Lookups {
			flags, err := ParseFlags(l.Flags)
			if err != nil {
				return err
			}
			lt.Entries = append(lt.Entries, gpio.Lookup{ID: l.ID, ChipLabel: l.Chip, Offset: l.Offset, Flags: flags})
		}
		if err := sub.AddLookupTable(lt); err != nil {
			return err
		}
	}
	log.Info("board applied",
		zap.String("board", cfg.Board),
		zap.Int("chips", len(cfg.Chips)),
		zap.Int("lookups", len(cfg.Lookups)))
	return nil
}
