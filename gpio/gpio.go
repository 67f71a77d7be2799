package gpio

import (
	"devobj-go/device"
	"devobj-go/errcode"
	"devobj-go/x/arena"
	"devobj-go/x/clist"
	"devobj-go/x/conv"

	"go.uber.org/zap"
)

// GPIO commands (tag device.TagGPIO).
const (
	CmdSetVal uint8 = 0 // data: *int or int (in)
	CmdGetVal uint8 = 1 // data: *int (out)
	CmdSetCfg uint8 = 2 // data: *Config; not serviced through Control
)

// Opcodes for device.Ioctl.
var (
	IoctlSetVal = device.IOC(device.TagGPIO, CmdSetVal)
	IoctlGetVal = device.IOC(device.TagGPIO, CmdGetVal)
	IoctlSetCfg = device.IOC(device.TagGPIO, CmdSetCfg)
)

const (
	defaultTables = 8
	defaultDescs  = 32
)

// Subsystem owns the GPIO registries and is the device.Class for GPIO
// descriptors.
type Subsystem struct {
	lookups *clist.List[*LookupTable]
	chips   *clist.List[*ChipTable]
	live    *clist.List[*Desc]
	descs   *arena.Arena[Desc]
	log     *zap.Logger
}

type options struct {
	tables int
	descs  int
	log    *zap.Logger
}

// Option configures a Subsystem.
type Option func(*options)

// WithLogger sets the logger used for registration and resolution events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithCapacity bounds the number of tables of each kind and the number of
// descriptors that can ever be created. Non-positive values keep defaults.
func WithCapacity(tables, descs int) Option {
	return func(o *options) {
		if tables > 0 {
			o.tables = tables
		}
		if descs > 0 {
			o.descs = descs
		}
	}
}

// NewSubsystem returns a subsystem with empty registries.
func NewSubsystem(opts ...Option) *Subsystem {
	o := options{tables: defaultTables, descs: defaultDescs, log: zap.NewNop()}
	for _, fn := range opts {
		fn(&o)
	}
	return &Subsystem{
		lookups: clist.New[*LookupTable](o.tables),
		chips:   clist.New[*ChipTable](o.tables),
		live:    clist.New[*Desc](o.descs),
		descs:   arena.New[Desc](o.descs),
		log:     o.log.Named("gpio"),
	}
}

// AddLookupTable registers a board lookup table. Tables are searched in the
// order they were added.
func (s *Subsystem) AddLookupTable(t *LookupTable) error {
	const op = "gpio.add_lookup_table"
	if t == nil || len(t.Entries) == 0 {
		return errcode.New(op, errcode.InvalidParams, "empty table")
	}
	if _, err := s.lookups.AddTail(t); err != nil {
		return errcode.Wrap(op, errcode.Exhausted, err)
	}
	s.log.Info("lookup table registered", zap.Int("entries", len(t.Entries)))
	return nil
}

// AddChipTable registers a table of controllers. Tables are searched in the
// order they were added.
func (s *Subsystem) AddChipTable(t *ChipTable) error {
	const op = "gpio.add_chip_table"
	if t == nil || len(t.Chips) == 0 {
		return errcode.New(op, errcode.InvalidParams, "empty table")
	}
	for i := range t.Chips {
		if t.Chips[i].Driver == nil {
			return errcode.New(op, errcode.InvalidParams, "chip "+t.Chips[i].Label+" has no driver")
		}
	}
	if _, err := s.chips.AddTail(t); err != nil {
		return errcode.Wrap(op, errcode.Exhausted, err)
	}
	for i := range t.Chips {
		s.log.Info("chip registered",
			zap.String("label", t.Chips[i].Label),
			zap.Uint16("gpios", t.Chips[i].NumGPIOs))
	}
	return nil
}

func (s *Subsystem) lookup(id uint16) *Lookup {
	for _, t := range s.lookups.All() {
		if l := t.find(id); l != nil {
			return l
		}
	}
	return nil
}

func (s *Subsystem) findChip(label string) *Chip {
	for _, t := range s.chips.All() {
		if c := t.find(label); c != nil {
			return c
		}
	}
	return nil
}

// Open resolves id and returns a live descriptor.
func (s *Subsystem) Open(id uint16) (*Desc, error) {
	const op = "gpio.create"
	l := s.lookup(id)
	if l == nil {
		s.log.Debug("no lookup entry", zap.Uint16("id", id))
		return nil, &errcode.E{S: errcode.UnknownPin, Op: op, Msg: "id " + idString(id)}
	}
	c := s.findChip(l.ChipLabel)
	if c == nil {
		s.log.Debug("no chip for lookup", zap.Uint16("id", id), zap.String("label", l.ChipLabel))
		return nil, &errcode.E{S: errcode.UnknownChip, Op: op, Msg: l.ChipLabel}
	}
	if s.descs.Remaining() == 0 {
		return nil, errcode.Wrap(op, errcode.Exhausted, arena.ErrExhausted)
	}
	ref, d, _ := s.descs.Alloc()
	h, err := s.live.Add(d)
	if err != nil {
		s.descs.Free(ref)
		return nil, errcode.Wrap(op, errcode.Exhausted, err)
	}
	d.sub, d.chip, d.lookup, d.ref, d.link = s, c, l, ref, h
	return d, nil
}

// Live returns the number of descriptors created and not yet destroyed.
func (s *Subsystem) Live() int { return s.live.Len() }

// Create implements device.Class. data is the logical id as uint16,
// *uint16 or int.
func (s *Subsystem) Create(data any) (device.Descriptor, error) {
	id, ok := asID(data)
	if !ok {
		return nil, errcode.New("gpio.create", errcode.InvalidParams, "want uint16 id")
	}
	d, err := s.Open(id)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Destroy implements device.Class.
func (s *Subsystem) Destroy(dd device.Descriptor) {
	d, ok := dd.(*Desc)
	if !ok || d.sub != s {
		return
	}
	s.live.Remove(d.link)
	s.descs.Free(d.ref)
	d.sub = nil
}

// Control implements device.Class.
func (s *Subsystem) Control(dd device.Descriptor, op device.Opcode, data any) error {
	d, ok := dd.(*Desc)
	if !ok || d.sub != s || op.Tag() != device.TagGPIO {
		return errcode.Fail
	}
	switch op.Nr() {
	case CmdSetVal:
		var v int
		switch x := data.(type) {
		case *int:
			if x == nil {
				return errcode.Fail
			}
			v = *x
		case int:
			v = x
		default:
			return errcode.Fail
		}
		return d.Set(v)
	case CmdGetVal:
		out, ok := data.(*int)
		if !ok || out == nil {
			return errcode.Fail
		}
		v, err := d.Get()
		if err != nil {
			return err
		}
		*out = v
		return nil
	case CmdSetCfg:
		// Configuration is applied by board code through Driver.SetConfig;
		// the request is reserved but not serviced here.
	}
	return errcode.Fail
}

func asID(data any) (uint16, bool) {
	switch v := data.(type) {
	case uint16:
		return v, true
	case *uint16:
		if v != nil {
			return *v, true
		}
	case int:
		if v >= 0 && v <= 0xffff {
			return uint16(v), true
		}
	}
	return 0, false
}

func idString(id uint16) string {
	var buf [8]byte
	return string(conv.Utoa(buf[:], uint64(id)))
}

var _ device.Class = (*Subsystem)(nil)
