// Package gpio resolves logical GPIO identifiers to physical controllers.
//
// Board code registers two kinds of static tables with a Subsystem before
// any GPIO is requested:
//
//   - LookupTable: logical id -> controller label, offset and flags
//   - ChipTable:   controller label -> Driver and pin count
//
// Creating a GPIO device is a two-stage resolution. The lookup tables are
// scanned in registration order for the id (first match wins), then the chip
// tables are scanned in registration order for the entry's label (exact
// match). Only when both succeed is a descriptor allocated and linked into
// the subsystem's list of live descriptors.
//
// Registration is not synchronised with resolution: every Add call must
// complete before the first Create.
package gpio
