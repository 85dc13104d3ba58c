// adi/types.go
package adi

import "triport-go/errcode"

// NumPorts is the number of user-facing three-wire ports on the expander.
const NumPorts = 8

// numTwoWire is the number of adjacent port pairs available to two-wire
// devices (encoder, ultrasonic).
const numTwoWire = NumPorts / 2

// Motor speed limits. The asymmetric range mirrors the 8-bit signed PWM
// convention of the legacy motor controllers.
const (
	MotorMaxSpeed = 127
	MotorMinSpeed = -128
)

// PortConfig is the device class a port is configured for. A port carries at
// most one configuration at a time; the zero value is Undefined.
type PortConfig uint8

const (
	ConfigUndefined PortConfig = iota
	ConfigAnalogIn
	ConfigAnalogOut
	ConfigDigitalIn
	ConfigDigitalOut
	ConfigSmartButton
	ConfigSmartPot
	ConfigLegacyButton
	ConfigLegacyPot
	ConfigLegacyLineSensor
	ConfigLegacyLightSensor
	ConfigLegacyAccelerometer
	ConfigLegacyServo
	ConfigLegacyPWM
	ConfigLegacyEncoder
	ConfigLegacyUltrasonic
)

var configNames = map[PortConfig]string{
	ConfigUndefined:           "undefined",
	ConfigAnalogIn:            "analog-in",
	ConfigAnalogOut:           "analog-out",
	ConfigDigitalIn:           "digital-in",
	ConfigDigitalOut:          "digital-out",
	ConfigSmartButton:         "smart-button",
	ConfigSmartPot:            "smart-pot",
	ConfigLegacyButton:        "legacy-button",
	ConfigLegacyPot:           "legacy-pot",
	ConfigLegacyLineSensor:    "legacy-line-sensor",
	ConfigLegacyLightSensor:   "legacy-light-sensor",
	ConfigLegacyAccelerometer: "legacy-accelerometer",
	ConfigLegacyServo:         "legacy-servo",
	ConfigLegacyPWM:           "legacy-pwm",
	ConfigLegacyEncoder:       "legacy-encoder",
	ConfigLegacyUltrasonic:    "legacy-ultrasonic",
}

func (c PortConfig) String() string {
	if s, ok := configNames[c]; ok {
		return s
	}
	return "undefined"
}

// ParsePortConfig converts a stable config name back to its PortConfig.
func ParsePortConfig(s string) (PortConfig, error) {
	for c, name := range configNames {
		if name == s {
			return c, nil
		}
	}
	return ConfigUndefined, errcode.InvalidArg
}

// PinMode selects the configuration applied by PinMode on a port.
type PinMode uint8

const (
	ModeInput PinMode = iota
	ModeOutput
	ModeInputAnalog
	ModeOutputAnalog
)

// ParsePinMode accepts the stable mode names used by profiles.
func ParsePinMode(s string) (PinMode, error) {
	switch s {
	case "input":
		return ModeInput, nil
	case "output":
		return ModeOutput, nil
	case "input-analog":
		return ModeInputAnalog, nil
	case "output-analog":
		return ModeOutputAnalog, nil
	default:
		return ModeInput, errcode.InvalidArg
	}
}

// AnalogType distinguishes plain analog inputs from rate gyros in the
// per-port calibration entry.
type AnalogType uint8

const (
	AnalogIn AnalogType = iota
	AnalogGyro
)
