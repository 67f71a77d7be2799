// Command devsim runs the device framework on the host: it loads a board
// description, registers its GPIO tables and replays a capture session
// through a buffer device.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"devobj-go/boardcfg"
	"devobj-go/x/logx"

	"go.uber.org/zap"
	"tinygo.org/x/drivers"
)

func main() {
	boardPath := flag.String("board", "", "board YAML (built-in host board when empty)")
	samples := flag.Int("samples", 256, "edges to replay")
	flag.Parse()

	if err := run(*boardPath, *samples); err != nil {
		fmt.Fprintln(os.Stderr, "devsim:", err)
		os.Exit(1)
	}
}

func run(path string, samples int) error {
	var (
		cfg *boardcfg.Config
		err error
	)
	if path == "" {
		cfg, err = boardcfg.Default()
	} else {
		cfg, err = boardcfg.Load(path)
	}
	if err != nil {
		return err
	}

	log, err := logx.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	buses := map[string]drivers.I2C{}
	for _, c := range cfg.Chips {
		if c.Driver == boardcfg.DriverPCF8574 {
			if _, ok := buses[c.Bus]; !ok {
				buses[c.Bus] = newMemBus()
			}
		}
	}

	st, err := replay(ctx, cfg, boardcfg.HostFactory{Buses: buses}, samples, log)
	if err != nil {
		return err
	}
	log.Info("capture finished",
		zap.Int("pushed", st.Pushed),
		zap.Int("popped", st.Popped),
		zap.Int("retries", st.Retries),
		zap.Int("rx_high", st.RxHigh),
		zap.Int("toggles", st.Toggles))
	return nil
}
