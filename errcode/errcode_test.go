package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusStrings(t *testing.T) {
	cases := map[string]Status{
		"ok":             OK,
		"fail":           Fail,
		"buffer_full":    BufferFull,
		"buffer_empty":   BufferEmpty,
		"unsupported":    Unsupported,
		"unknown_pin":    UnknownPin,
		"unknown_chip":   UnknownChip,
		"exhausted":      Exhausted,
		"invalid_params": InvalidParams,
	}
	for want, s := range cases {
		if s.Error() != want {
			t.Fatalf("status %d: got %q want %q", int(s), s.Error(), want)
		}
	}
}

func TestProtocolCodes(t *testing.T) {
	if OK.Code() != 0 || Fail.Code() != -1 || BufferFull.Code() != -2 || BufferEmpty.Code() != -3 {
		t.Fatal("protocol codes drifted")
	}
	for _, s := range []Status{Unsupported, UnknownPin, UnknownChip, Exhausted, InvalidParams} {
		if s.Code() != -1 {
			t.Fatalf("%v should collapse to -1, got %d", s, s.Code())
		}
	}
}

func TestOfAndStatusOf(t *testing.T) {
	if Of(nil) != OK || StatusOf(nil) != 0 {
		t.Fatal("nil must be OK")
	}
	if Of(BufferFull) != BufferFull {
		t.Fatal("bare status lost")
	}
	wrapped := fmt.Errorf("outer: %w", New("gpio.create", UnknownPin, "id 7"))
	if Of(wrapped) != UnknownPin {
		t.Fatalf("got %v", Of(wrapped))
	}
	if StatusOf(wrapped) != -1 {
		t.Fatalf("got %d", StatusOf(wrapped))
	}
	if Of(errors.New("random")) != Fail {
		t.Fatal("foreign errors must map to Fail")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("bus nack")
	err := Wrap("pcf8574.read", Fail, cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not reachable")
	}
	if !errors.Is(err, Fail) {
		t.Fatal("status not matched by errors.Is")
	}
	if got := err.Error(); got != "pcf8574.read: fail: bus nack" {
		t.Fatalf("message %q", got)
	}
	if Wrap("x", Fail, nil) != nil {
		t.Fatal("nil cause must stay nil")
	}
}
