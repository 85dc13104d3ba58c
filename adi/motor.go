// adi/motor.go
package adi

import "triport-go/x/mathx"

// MotorSet drives a motor-compatible port. Speed is clamped to
// [MotorMinSpeed, MotorMaxSpeed] before the write.
func (d *Driver) MotorSet(port int, speed int) error {
	idx, err := translatePort(port)
	if err != nil {
		return err
	}
	if err := d.requireClass(idx, isMotor); err != nil {
		return err
	}
	speed = mathx.Clamp(speed, MotorMinSpeed, MotorMaxSpeed)
	return d.valueSet(idx, int32(speed))
}

// MotorGet reports the last commanded speed of a motor-compatible port,
// converting the hardware's offset encoding back to a signed speed.
func (d *Driver) MotorGet(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	if err := d.requireClass(idx, isMotor); err != nil {
		return 0, err
	}
	v, err := d.valueGet(idx)
	if err != nil {
		return 0, err
	}
	return v - MotorMaxSpeed, nil
}

// MotorStop sets a motor-compatible port to zero speed.
func (d *Driver) MotorStop(port int) error {
	idx, err := translatePort(port)
	if err != nil {
		return err
	}
	if err := d.requireClass(idx, isMotor); err != nil {
		return err
	}
	return d.valueSet(idx, 0)
}
