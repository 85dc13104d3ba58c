// services/portmon/portmon.go

// Package portmon publishes periodic port readings on the in-process bus and
// accepts per-port control verbs. It owns no hardware state of its own;
// every sample goes through the driver's validation and claim discipline.
package portmon

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"triport-go/adi"
	"triport-go/bus"
	"triport-go/errcode"
	"triport-go/x/mathx"
	"triport-go/x/timex"
)

// Watch kinds.
const (
	KindAnalog           = "analog"
	KindAnalogCalibrated = "analog-calibrated"
	KindAnalogHR         = "analog-hr"
	KindDigital          = "digital"
	KindMotor            = "motor"
)

// Config is supplied on the "config/portmon" bus topic.
type Config struct {
	Watches []Watch `json:"watches"`
}

// Watch names one port to poll. Port accepts numeric and letter forms.
type Watch struct {
	Port     string `json:"port"`
	Kind     string `json:"kind"`
	PeriodMS int    `json:"period_ms,omitempty"`
}

const (
	defaultPeriodMS = 1000
	minPeriodMS     = 50
	maxPeriodMS     = 3_600_000
)

// Run blocks until ctx is cancelled.
func Run(ctx context.Context, conn *bus.Connection, drv *adi.Driver) {
	s := &service{
		conn:    conn,
		drv:     drv,
		watches: map[string]*watch{},
	}
	s.loop(ctx)
}

type watch struct {
	port     int // external identifier, pre-translation
	token    string
	kind     string
	periodMS int
	nextDue  time.Time
}

type service struct {
	conn    *bus.Connection
	drv     *adi.Driver
	watches map[string]*watch // topic token -> watch
	timer   *time.Timer
}

func (s *service) loop(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.T("config", "portmon"))
	ctrlSub := s.conn.Subscribe(bus.T("portmon", "port", bus.Wild, "control", bus.Wild))
	defer s.conn.Unsubscribe(cfgSub)
	defer s.conn.Unsubscribe(ctrlSub)

	s.publishState("idle", "awaiting_config", nil)

	s.timer = time.NewTimer(time.Hour)
	if !s.timer.Stop() {
		drainTimer(s.timer)
	}

	for {
		// (re)arm timer
		if next := s.earliestDue(); next.IsZero() {
			resetTimer(s.timer, time.Hour)
		} else {
			resetTimer(s.timer, time.Until(next))
		}

		select {
		case <-ctx.Done():
			s.publishState("stopped", "context_cancelled", nil)
			return

		case msg := <-cfgSub.Channel():
			var cfg Config
			if err := decodeJSON(msg.Payload, &cfg); err != nil {
				s.publishState("error", "config_decode_failed", err)
				continue
			}
			if err := s.applyConfig(cfg); err != nil {
				s.publishState("error", "apply_config_failed", err)
				continue
			}
			s.publishState("ready", "configured", nil)

		case msg := <-ctrlSub.Channel():
			// portmon/port/<p>/control/<method>
			if len(msg.Topic) < 5 {
				continue
			}
			s.handleControl(msg, msg.Topic[2], msg.Topic[4])

		case <-s.timer.C:
			now := time.Now()
			for _, w := range s.watches {
				if !now.Before(w.nextDue) {
					s.sample(w)
					w.nextDue = now.Add(w.period())
				}
			}
		}
	}
}

func (s *service) applyConfig(cfg Config) error {
	seen := map[string]struct{}{}
	for _, wc := range cfg.Watches {
		port, err := parsePort(wc.Port)
		if err != nil {
			return err
		}
		switch wc.Kind {
		case KindAnalog, KindAnalogCalibrated, KindAnalogHR, KindDigital, KindMotor:
		default:
			return errcode.InvalidArg
		}
		token := wc.Port
		seen[token] = struct{}{}
		if cur, ok := s.watches[token]; ok {
			cur.kind = wc.Kind
			if wc.PeriodMS > 0 {
				cur.periodMS = mathx.Clamp(wc.PeriodMS, minPeriodMS, maxPeriodMS)
			}
			continue
		}
		w := &watch{
			port:     port,
			token:    token,
			kind:     wc.Kind,
			periodMS: defaultPeriodMS,
			nextDue:  time.Now(),
		}
		if wc.PeriodMS > 0 {
			w.periodMS = mathx.Clamp(wc.PeriodMS, minPeriodMS, maxPeriodMS)
		}
		s.watches[token] = w
		s.pubRet(bus.T("portmon", "port", token, "state"),
			map[string]any{"link": "up", "kind": w.kind, "ts_ms": timex.NowMs()})
	}

	// Tidy-up: drop watches not in config.
	for token := range s.watches {
		if _, ok := seen[token]; ok {
			continue
		}
		s.pubRet(bus.T("portmon", "port", token, "state"),
			map[string]any{"link": "down", "ts_ms": timex.NowMs()})
		delete(s.watches, token)
	}
	return nil
}

func (s *service) handleControl(msg *bus.Message, token, method string) {
	w, ok := s.watches[token]
	if !ok {
		s.replyErr(msg, string(errcode.OutOfRange))
		return
	}
	switch method {
	case "read_now":
		s.sample(w)
		w.nextDue = time.Now().Add(w.period())
		s.replyOK(msg, nil)

	case "set_rate":
		var p struct {
			PeriodMS int `json:"period_ms"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil || p.PeriodMS <= 0 {
			s.replyErr(msg, string(errcode.InvalidArg))
			return
		}
		w.periodMS = mathx.Clamp(p.PeriodMS, minPeriodMS, maxPeriodMS)
		w.nextDue = time.Now().Add(w.period())
		s.replyOK(msg, map[string]any{"period_ms": w.periodMS})

	case "set":
		s.handleSet(msg, w)

	default:
		s.replyErr(msg, string(errcode.InvalidArg))
	}
}

// handleSet writes through to the port for the output-capable kinds.
func (s *service) handleSet(msg *bus.Message, w *watch) {
	switch w.kind {
	case KindDigital:
		var p struct {
			Level bool `json:"level"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, string(errcode.InvalidArg))
			return
		}
		if err := s.drv.DigitalWrite(w.port, p.Level); err != nil {
			s.replyErr(msg, string(errcode.Of(err)))
			return
		}
		s.replyOK(msg, nil)

	case KindMotor:
		var p struct {
			Speed int `json:"speed"`
		}
		if err := decodeJSON(msg.Payload, &p); err != nil {
			s.replyErr(msg, string(errcode.InvalidArg))
			return
		}
		if err := s.drv.MotorSet(w.port, p.Speed); err != nil {
			s.replyErr(msg, string(errcode.Of(err)))
			return
		}
		s.replyOK(msg, nil)

	default:
		s.replyErr(msg, string(errcode.InvalidArg))
	}
}

// sample polls one watch and publishes its value, or a degraded state on
// failure.
func (s *service) sample(w *watch) {
	var (
		val any
		err error
	)
	switch w.kind {
	case KindAnalog:
		val, err = s.drv.AnalogRead(w.port)
	case KindAnalogCalibrated:
		val, err = s.drv.AnalogReadCalibrated(w.port)
	case KindAnalogHR:
		val, err = s.drv.AnalogReadCalibratedHR(w.port)
	case KindDigital:
		val, err = s.drv.DigitalRead(w.port)
	case KindMotor:
		val, err = s.drv.MotorGet(w.port)
	}
	now := timex.NowMs()
	if err != nil {
		s.pubRet(bus.T("portmon", "port", w.token, "state"),
			map[string]any{"link": "degraded", "error": string(errcode.Of(err)), "ts_ms": now})
		return
	}
	s.conn.Publish(s.conn.NewMessage(
		bus.T("portmon", "port", w.token, "value"),
		map[string]any{"value": val, "ts_ms": now},
		false,
	))
	s.pubRet(bus.T("portmon", "port", w.token, "state"),
		map[string]any{"link": "up", "kind": w.kind, "ts_ms": now})
}

// ---- helpers ----

func (w *watch) period() time.Duration {
	return time.Duration(mathx.Clamp(w.periodMS, minPeriodMS, maxPeriodMS)) * time.Millisecond
}

func (s *service) earliestDue() time.Time {
	var min time.Time
	for _, w := range s.watches {
		if !w.nextDue.IsZero() && (min.IsZero() || w.nextDue.Before(min)) {
			min = w.nextDue
		}
	}
	return min
}

func (s *service) publishState(level, status string, err error) {
	payload := map[string]any{"level": level, "status": status, "ts_ms": timex.NowMs()}
	if err != nil {
		payload["error"] = err.Error()
	}
	s.pubRet(bus.T("portmon", "state"), payload)
}

func (s *service) replyOK(req *bus.Message, extra map[string]any) {
	if len(req.ReplyTo) == 0 {
		return
	}
	m := map[string]any{"ok": true}
	for k, v := range extra {
		m[k] = v
	}
	s.conn.Reply(req, m, false)
}

func (s *service) replyErr(req *bus.Message, e string) {
	if len(req.ReplyTo) == 0 {
		return
	}
	s.conn.Reply(req, map[string]any{"ok": false, "error": e}, false)
}

func (s *service) pubRet(t bus.Topic, p any) {
	s.conn.Publish(s.conn.NewMessage(t, p, true))
}

func parsePort(token string) (int, error) {
	if n, err := strconv.Atoi(token); err == nil {
		return n, nil
	}
	if len(token) == 1 {
		return int(token[0]), nil
	}
	return 0, errcode.OutOfRange
}

func decodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		// Accept maps and structs by marshaling then decoding to T.
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		drainTimer(t)
	}
	t.Reset(d)
}

func drainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}
