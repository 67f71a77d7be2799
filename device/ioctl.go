package device

// Opcode packs a subsystem tag and a command number.
// Layout: tag in bits 0..7, command in bits 8..15.
type Opcode uint16

// Tag identifies the subsystem an opcode belongs to.
type Tag uint8

const (
	tagBits = 8
	nrBits  = 8

	tagShift = 0
	nrShift  = tagShift + tagBits

	tagMask = 1<<tagBits - 1
	nrMask  = 1<<nrBits - 1
)

// Reserved subsystem tags. These must be unique per device type.
const (
	TagTemplate Tag = 0
	TagBuffer   Tag = 1
	TagGPIO     Tag = 2
)

// IOC builds an opcode.
func IOC(tag Tag, nr uint8) Opcode {
	return Opcode(uint16(tag)<<tagShift | uint16(nr)<<nrShift)
}

func (op Opcode) Tag() Tag  { return Tag(op >> tagShift & tagMask) }
func (op Opcode) Nr() uint8 { return uint8(op >> nrShift & nrMask) }
