// cmd/adi-hostd/main.go

// adi-hostd runs the port expander driver on a host machine: it applies a
// YAML port profile, starts the port monitor service on an in-process bus,
// and logs published values. With no -device it runs against the built-in
// simulator, which is handy for exercising profiles off-hardware.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"triport-go/adi"
	"triport-go/bus"
	"triport-go/config"
	"triport-go/services/portmon"
	"triport-go/transport/serialadi"
	"triport-go/transport/simadi"
)

func main() {
	var (
		cfgPath = flag.String("config", "adi.yaml", "port profile to apply")
		device  = flag.String("device", "", "serial device of the expander (empty: simulator)")
		baud    = flag.Int("baud", 115200, "serial baud rate")
		queue   = flag.Int("queue", 32, "bus queue length per subscription")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prof, err := config.Load(*cfgPath)
	if err != nil {
		log.Error("load profile", "path", *cfgPath, "err", err)
		os.Exit(1)
	}

	var tr adi.Transport
	if *device == "" {
		log.Info("using simulated expander")
		tr = simadi.New()
	} else {
		p, err := serialadi.Open(*device, *baud)
		if err != nil {
			log.Error("open expander", "device", *device, "err", err)
			os.Exit(1)
		}
		log.Info("expander link up", "device", *device, "baud", *baud)
		tr = p
	}

	drv := adi.New(tr, adi.Config{})
	devs, err := prof.Apply(drv)
	if err != nil {
		log.Error("apply profile", "err", err)
		os.Exit(1)
	}
	log.Info("profile applied",
		"ports", len(prof.Ports),
		"encoders", len(devs.Encoders),
		"ultrasonics", len(devs.Ultrasonics))

	b := bus.New(*queue)
	go portmon.Run(ctx, b.NewConnection("portmon"), drv)

	conn := b.NewConnection("main")
	defer conn.Disconnect()

	mon := portmon.Config{}
	for _, m := range prof.Monitor {
		mon.Watches = append(mon.Watches, portmon.Watch{
			Port:     m.Port,
			Kind:     m.Kind,
			PeriodMS: m.PeriodMS,
		})
	}
	conn.Publish(conn.NewMessage(bus.T("config", "portmon"), mon, true))

	values := conn.Subscribe(bus.T("portmon", "port", bus.Wild, "value"))
	states := conn.Subscribe(bus.T("portmon", "port", bus.Wild, "state"))

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return
		case m := <-values.Channel():
			log.Info("value", "topic", m.Topic.String(), "payload", m.Payload)
		case m := <-states.Channel():
			log.Info("state", "topic", m.Topic.String(), "payload", m.Payload)
		}
	}
}
