package device

import (
	"errors"
	"testing"

	"devobj-go/errcode"
)

// ---- Test doubles ----

type fakeClass struct {
	createErr error
	nilDesc   bool
	destroyed int
	controls  int
}

type fakeDesc struct{ c Class }

func (d *fakeDesc) Class() Class { return d.c }

func (f *fakeClass) Create(data any) (Descriptor, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.nilDesc {
		return nil, nil
	}
	return &fakeDesc{c: f}, nil
}

func (f *fakeClass) Destroy(Descriptor) { f.destroyed++ }

func (f *fakeClass) Control(_ Descriptor, op Opcode, data any) error {
	if op.Tag() != TagBuffer {
		return errcode.Fail
	}
	f.controls++
	if p, ok := data.(*int); ok {
		*p = 42
	}
	return nil
}

// ---- Tests ----

func TestNewDispatchesToClass(t *testing.T) {
	c := &fakeClass{}
	d, err := New(c, nil)
	if err != nil || d == nil {
		t.Fatalf("new: d=%v err=%v", d, err)
	}
	if d.Class() != c {
		t.Fatal("descriptor not bound to its class")
	}
}

func TestNewFailures(t *testing.T) {
	if d, err := New(nil, nil); d != nil || !errors.Is(err, errcode.Fail) {
		t.Fatalf("nil class: d=%v err=%v", d, err)
	}
	boom := errcode.New("fake", errcode.UnknownPin, "")
	if d, err := New(&fakeClass{createErr: boom}, nil); d != nil || !errors.Is(err, errcode.UnknownPin) {
		t.Fatalf("create error: d=%v err=%v", d, err)
	}
	if d, err := New(&fakeClass{nilDesc: true}, nil); d != nil || err == nil {
		t.Fatalf("nil descriptor: d=%v err=%v", d, err)
	}
}

func TestDeleteTolerance(t *testing.T) {
	Delete(nil)
	Delete(&fakeDesc{}) // no class
	c := &fakeClass{}
	d, _ := New(c, nil)
	Delete(d)
	if c.destroyed != 1 {
		t.Fatalf("destroyed=%d", c.destroyed)
	}
}

func TestIoctlDispatch(t *testing.T) {
	c := &fakeClass{}
	d, _ := New(c, nil)
	var out int
	if err := Ioctl(d, IOC(TagBuffer, 3), &out); err != nil || out != 42 {
		t.Fatalf("ioctl: err=%v out=%d", err, out)
	}
	if err := Ioctl(nil, IOC(TagBuffer, 0), nil); err != errcode.Fail {
		t.Fatalf("nil descriptor: %v", err)
	}
	if err := Ioctl(&fakeDesc{}, IOC(TagBuffer, 0), nil); err != errcode.Fail {
		t.Fatalf("classless descriptor: %v", err)
	}
}

func TestUnknownTagHasNoSideEffect(t *testing.T) {
	c := &fakeClass{}
	d, _ := New(c, nil)
	out := 7
	if err := Ioctl(d, IOC(Tag(0x7f), 0), &out); errcode.StatusOf(err) != -1 {
		t.Fatalf("want generic failure, got %v", err)
	}
	if c.controls != 0 || out != 7 {
		t.Fatal("rejected request had side effects")
	}
}

func TestOpcodeLayout(t *testing.T) {
	cases := []struct {
		tag Tag
		nr  uint8
		raw Opcode
	}{
		{TagTemplate, 0, 0x0000},
		{TagBuffer, 0, 0x0001},
		{TagBuffer, 4, 0x0401},
		{TagGPIO, 2, 0x0202},
		{0xff, 0xff, 0xffff},
	}
	for _, c := range cases {
		op := IOC(c.tag, c.nr)
		if op != c.raw {
			t.Fatalf("IOC(%d,%d)=%#04x want %#04x", c.tag, c.nr, op, c.raw)
		}
		if op.Tag() != c.tag || op.Nr() != c.nr {
			t.Fatalf("decode %#04x -> tag=%d nr=%d", op, op.Tag(), op.Nr())
		}
	}
}

func TestTemplateIsInert(t *testing.T) {
	d, err := New(Template, nil)
	if d != nil || !errors.Is(err, errcode.Unsupported) {
		t.Fatalf("template create: d=%v err=%v", d, err)
	}
	if err := Template.Control(nil, IOC(TagTemplate, TemplateTest1), nil); err != errcode.Fail {
		t.Fatalf("template control: %v", err)
	}
	if err := Template.Control(nil, IOC(TagGPIO, 0), nil); err != errcode.Fail {
		t.Fatalf("template foreign tag: %v", err)
	}
	Template.Destroy(nil)
}
