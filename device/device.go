// Package device defines the generic device-object protocol: every device
// type supplies one Class, and applications drive any device through New,
// Delete and Ioctl without knowing its concrete type.
package device

import "devobj-go/errcode"

// Class is the operation table of one device type. A Class value is
// immutable and lives for the whole process.
type Class interface {
	// Create builds a descriptor from type-specific init data.
	Create(data any) (Descriptor, error)
	// Destroy unlinks d from any registry and releases it.
	Destroy(d Descriptor)
	// Control performs one request. Implementations check op.Tag() and
	// return errcode.Fail for anything they do not recognise.
	Control(d Descriptor, op Opcode, data any) error
}

// Descriptor is an opaque handle to one device instance. Class identifies
// the operation table the descriptor was created by.
type Descriptor interface {
	Class() Class
}

// New creates a device of class c. On failure the descriptor is nil and the
// error carries the reason.
func New(c Class, data any) (Descriptor, error) {
	if c == nil {
		return nil, errcode.New("device.new", errcode.Fail, "nil class")
	}
	d, err := c.Create(data)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errcode.New("device.new", errcode.Fail, "class returned no descriptor")
	}
	return d, nil
}

// Delete destroys d. It is a no-op for a nil descriptor or one without a class.
func Delete(d Descriptor) {
	if d == nil {
		return
	}
	if c := d.Class(); c != nil {
		c.Destroy(d)
	}
}

// Ioctl sends request op to d. Results, where the request has any, are
// written through data.
func Ioctl(d Descriptor, op Opcode, data any) error {
	if d == nil {
		return errcode.Fail
	}
	c := d.Class()
	if c == nil {
		return errcode.Fail
	}
	return c.Control(d, op, data)
}
