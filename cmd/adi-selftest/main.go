// cmd/adi-selftest/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"triport-go/adi"
	"triport-go/transport/simadi"
)

// ---------- Configuration ----------

const (
	analogPort  = 1
	digitalPort = 2
	motorPort   = 3
	encTopPort  = 5
	encBotPort  = 6
	ultEchoPort = 7
	ultPingPort = 8
)

// ---------- Harness ----------

type harness struct {
	sim    *simadi.Sim
	drv    *adi.Driver
	failed int
}

func (h *harness) check(name string, err error) {
	if err != nil {
		fmt.Printf("FAIL %-28s %v\n", name, err)
		h.failed++
		return
	}
	fmt.Printf("ok   %s\n", name)
}

func (h *harness) expect(name string, got, want any) {
	if got != want {
		fmt.Printf("FAIL %-28s got %v, want %v\n", name, got, want)
		h.failed++
		return
	}
	fmt.Printf("ok   %-28s = %v\n", name, got)
}

// ---------- Steps ----------

func (h *harness) analog() {
	h.check("analog config", h.drv.PortConfigSet(analogPort, adi.ConfigAnalogIn))

	h.sim.SetInput(analogPort-1, 1800)
	base, err := h.drv.AnalogCalibrate(analogPort)
	h.check("analog calibrate", err)
	h.expect("analog baseline", base, int32(1800))

	v, err := h.drv.AnalogReadCalibrated(analogPort)
	h.check("analog read calibrated", err)
	h.expect("analog steady-state", v, int32(0))

	h.sim.SetInput(analogPort-1, 2100)
	v, _ = h.drv.AnalogReadCalibrated(analogPort)
	h.expect("analog delta", v, int32(300))
}

func (h *harness) digital() {
	h.check("digital-out config", h.drv.PortConfigSet(digitalPort, adi.ConfigDigitalOut))
	h.check("digital write high", h.drv.DigitalWrite(digitalPort, true))

	h.check("digital-in config", h.drv.PortConfigSet(digitalPort, adi.ConfigDigitalIn))
	h.sim.SetInput(digitalPort-1, 1)
	lvl, err := h.drv.DigitalRead(digitalPort)
	h.check("digital read", err)
	h.expect("digital level", lvl, true)
}

func (h *harness) motor() {
	h.check("motor config", h.drv.PortConfigSet(motorPort, adi.ConfigLegacyPWM))
	h.check("motor set", h.drv.MotorSet(motorPort, 200)) // clamps to 127
	s, err := h.drv.MotorGet(motorPort)
	h.check("motor get", err)
	h.expect("motor clamp", s, int32(adi.MotorMaxSpeed))
	h.check("motor stop", h.drv.MotorStop(motorPort))
}

func (h *harness) encoder() {
	enc, err := h.drv.EncoderInit(encTopPort, encBotPort, true)
	h.check("encoder init", err)
	h.sim.SetInput(encTopPort-1, -42)
	ticks, err := enc.Get()
	h.check("encoder get", err)
	h.expect("encoder reversed ticks", ticks, int32(42))
	h.check("encoder reset", enc.Reset())
	h.check("encoder shutdown", enc.Shutdown())
}

func (h *harness) ultrasonic() {
	ult, err := h.drv.UltrasonicInit(ultEchoPort, ultPingPort)
	h.check("ultrasonic init", err)
	h.sim.SetInput(ultEchoPort-1, 730)
	cm, err := ult.Get()
	h.check("ultrasonic get", err)
	h.expect("ultrasonic range", cm, int32(730))
	h.check("ultrasonic shutdown", ult.Shutdown())
}

func main() {
	sim := simadi.New()
	h := &harness{
		sim: sim,
		drv: adi.New(sim, adi.Config{SampleDelay: time.Microsecond}),
	}

	h.analog()
	h.digital()
	h.motor()
	h.encoder()
	h.ultrasonic()

	if h.failed > 0 {
		fmt.Printf("selftest: %d failure(s)\n", h.failed)
		os.Exit(1)
	}
	fmt.Println("selftest: all checks passed")
}
