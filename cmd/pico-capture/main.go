//go:build rp2040

// Command pico-capture receives bytes on UART1 from a producer goroutine,
// queues them in a buffer device and echoes them on UART0 while blinking
// the onboard LED once per byte.
package main

import (
	"context"
	"machine"
	"sync/atomic"
	"time"

	"devobj-go/buffer"
	"devobj-go/device"
	"devobj-go/errcode"
	"devobj-go/gpio"
	"devobj-go/gpio/rp2chip"
	"devobj-go/x/arena"
	"devobj-go/x/conv"
	"devobj-go/x/critical"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

const (
	ledID    uint16 = 0
	rxPinID  uint16 = 1
	capacity        = 256
)

var (
	board = gpio.LookupTable{Entries: []gpio.Lookup{
		{ID: ledID, ChipLabel: "rp2", Offset: 25, Flags: gpio.FlagDir},
		{ID: rxPinID, ChipLabel: "rp2", Offset: 5},
	}}
	chips = gpio.ChipTable{Chips: []gpio.Chip{rp2chip.Describe("rp2")}}

	mem = arena.NewRegion(arena.DefaultRegionSize)
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[capture] boot")

	ctx := context.Background()

	sub := gpio.NewSubsystem(gpio.WithCapacity(2, 4))
	if err := sub.AddChipTable(&chips); err != nil {
		println("[capture] chip table:", err.Error())
		return
	}
	if err := sub.AddLookupTable(&board); err != nil {
		println("[capture] lookup table:", err.Error())
		return
	}
	_ = rp2chip.Chip{}.SetConfig(25, gpio.Config{Flags: gpio.FlagDir, Mask: gpio.FlagDir | gpio.FlagVal})

	led, err := device.New(sub, ledID)
	if err != nil {
		println("[capture] led:", err.Error())
		return
	}

	store, err := mem.Alloc(capacity)
	if err != nil {
		println("[capture] store:", err.Error())
		return
	}
	buf, err := device.New(buffer.Class[byte](), &buffer.Init[byte]{
		Store:   store,
		Section: critical.Default(),
	})
	if err != nil {
		println("[capture] buffer:", err.Error())
		return
	}

	in := uartx.UART1
	_ = in.Configure(uartx.UARTConfig{BaudRate: 115200, TX: machine.GP4, RX: machine.GP5})
	_ = in.SetFormat(8, 1, uartx.ParityNone)
	out := uartx.UART0
	_ = out.Configure(uartx.UARTConfig{BaudRate: 115200, TX: machine.GP0, RX: machine.GP1})

	go produce(ctx, in, buf)

	var (
		b     byte
		last  byte
		level int
		n     int
		chunk [32]byte
	)
	tick := time.NewTicker(5 * time.Second)
	defer tick.Stop()
	for {
		k := 0
		for k < len(chunk) && device.Ioctl(buf, buffer.IoctlPop, &b) == nil {
			chunk[k] = b
			k++
		}
		if k == 0 {
			select {
			case <-tick.C:
				var hx [2]byte
				println("[capture] bytes:", n, "dropped:", dropped.Load(), "last: 0x"+string(conv.Hex(hx[:], uint64(last), 2)))
			default:
			}
			time.Sleep(time.Millisecond)
			continue
		}
		_, _ = out.Write(chunk[:k])
		last = chunk[k-1]
		for i := 0; i < k; i++ {
			level ^= 1
			_ = device.Ioctl(led, gpio.IoctlSetVal, level)
		}
		n += k
	}
}

var dropped atomic.Uint32

// produce copies received bytes into the buffer. Bytes that do not fit
// are counted and discarded.
func produce(ctx context.Context, u *uartx.UART, buf device.Descriptor) {
	var rx [64]byte
	for {
		k, err := u.RecvSomeContext(ctx, rx[:])
		if err != nil {
			return
		}
		for i := 0; i < k; i++ {
			if err := device.Ioctl(buf, buffer.IoctlPush, rx[i]); errcode.Of(err) == errcode.BufferFull {
				dropped.Add(1)
			}
		}
	}
}
