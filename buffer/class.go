package buffer

import (
	"devobj-go/device"
	"devobj-go/errcode"
)

type class[T any] struct{}

// Create accepts *Init[T].
func (class[T]) Create(data any) (device.Descriptor, error) {
	in, ok := data.(*Init[T])
	if !ok {
		return nil, errcode.New("buffer.create", errcode.InvalidParams, "want *buffer.Init")
	}
	b, err := New(in)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Destroy releases the descriptor. Arena memory is not reclaimed; the
// descriptor only stops accepting requests.
func (class[T]) Destroy(d device.Descriptor) {
	if b, ok := d.(*Buffer[T]); ok {
		b.release()
	}
}

func (class[T]) Control(d device.Descriptor, op device.Opcode, data any) error {
	b, ok := d.(*Buffer[T])
	if !ok || op.Tag() != device.TagBuffer || !b.alive() {
		return errcode.Fail
	}
	switch op.Nr() {
	case CmdPush:
		switch v := data.(type) {
		case *T:
			if v == nil {
				return errcode.Fail
			}
			return b.Push(*v)
		case T:
			return b.Push(v)
		}
	case CmdPop:
		if out, ok := data.(*T); ok && out != nil {
			return b.Pop(out)
		}
	case CmdFlush:
		b.Flush()
		return nil
	case CmdIsFull:
		if out, ok := data.(*bool); ok && out != nil {
			*out = b.IsFull()
			return nil
		}
	case CmdIsEmpty:
		if out, ok := data.(*bool); ok && out != nil {
			*out = b.IsEmpty()
			return nil
		}
	}
	return errcode.Fail
}
