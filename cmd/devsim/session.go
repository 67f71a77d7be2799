package main

import (
	"context"
	"errors"
	"runtime"

	"devobj-go/boardcfg"
	"devobj-go/buffer"
	"devobj-go/device"
	"devobj-go/errcode"
	"devobj-go/gpio"
	"devobj-go/x/critical"

	"go.uber.org/zap"
)

// Stats summarises one replay.
type Stats struct {
	Pushed  int
	Popped  int
	Retries int // pushes refused with BufferFull and retried
	Toggles int // transmit line writes
	RxHigh  int // samples taken while the receive line read high
}

// rxMark flags a queued edge sampled with the receive line high. Edge
// timings stay below 1<<15 us.
const rxMark uint16 = 1 << 15

// Lookup names the replay expects on the board.
const (
	rxName  = "ir_rx"
	txName  = "ir_tx"
	ledName = "status_led"
)

// replay drives a producer goroutine that samples the receive line and
// pushes edge timings into a buffer device, while the caller's goroutine
// drains the buffer and mirrors each edge onto the transmit line.
func replay(ctx context.Context, cfg *boardcfg.Config, f boardcfg.Factory, samples int, log *zap.Logger) (Stats, error) {
	var st Stats

	sub := gpio.NewSubsystem(gpio.WithLogger(log))
	if err := boardcfg.Apply(sub, cfg, f, log); err != nil {
		return st, err
	}

	open := func(name string) (device.Descriptor, error) {
		id, ok := cfg.LookupByName(name)
		if !ok {
			return nil, errors.New("board has no " + name + " lookup")
		}
		return device.New(sub, id)
	}
	rx, err := open(rxName)
	if err != nil {
		return st, err
	}
	defer device.Delete(rx)
	tx, err := open(txName)
	if err != nil {
		return st, err
	}
	defer device.Delete(tx)
	led, err := open(ledName)
	if err != nil {
		return st, err
	}
	defer device.Delete(led)

	buf, err := device.New(buffer.Class[uint16](), &buffer.Init[uint16]{
		Store:   make([]uint16, cfg.Capture.Elements),
		Section: critical.Default(),
	})
	if err != nil {
		return st, err
	}
	defer device.Delete(buf)

	if err := device.Ioctl(led, gpio.IoctlSetVal, 1); err != nil {
		return st, err
	}

	done := make(chan struct{})
	var pushed, retries int
	go func() {
		defer close(done)
		for i := 0; i < samples && ctx.Err() == nil; i++ {
			var level int
			if err := device.Ioctl(rx, gpio.IoctlGetVal, &level); err != nil {
				log.Warn("rx read failed", zap.Error(err))
				return
			}
			d := edgeDuration(i)
			if level != 0 {
				d |= rxMark
			}
			for {
				err := device.Ioctl(buf, buffer.IoctlPush, d)
				if err == nil {
					pushed++
					break
				}
				if errcode.Of(err) != errcode.BufferFull {
					log.Warn("push failed", zap.Error(err))
					return
				}
				retries++
				runtime.Gosched()
			}
		}
	}()

	level := 0
	drain := func() {
		var d uint16
		for device.Ioctl(buf, buffer.IoctlPop, &d) == nil {
			st.Popped++
			if d&rxMark != 0 {
				st.RxHigh++
				d &^= rxMark
			}
			level ^= 1
			if err := device.Ioctl(tx, gpio.IoctlSetVal, level); err == nil {
				st.Toggles++
			}
			log.Debug("edge", zap.Uint16("us", d), zap.Int("level", level))
		}
	}
	for {
		select {
		case <-done:
			drain()
			st.Pushed, st.Retries = pushed, retries
			_ = device.Ioctl(led, gpio.IoctlSetVal, 0)
			return st, ctx.Err()
		default:
			drain()
			runtime.Gosched()
		}
	}
}

// edgeDuration produces an NEC-like mark/space pattern in microseconds.
func edgeDuration(i int) uint16 {
	switch {
	case i == 0:
		return 9000
	case i == 1:
		return 4500
	case i%2 == 0:
		return 560
	case i%3 == 0:
		return 1690
	default:
		return 560
	}
}
