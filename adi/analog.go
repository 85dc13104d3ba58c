// adi/analog.go
package adi

// calibSamples is the fixed length of the calibration averaging window. The
// loop takes ~512 ticks of wall time; this slow averaging filter is a
// functional requirement, not an incidental cost.
const calibSamples = 512

// AnalogCalibrate computes a zero-offset calibration for an analog port by
// averaging 512 raw samples, one SampleDelay apart, and returns the rounded
// baseline reading. The transport is claimed per sample only, so other tasks
// keep running during the loop; a concurrent reconfiguration of the same port
// mid-loop yields a meaningless calibration.
func (d *Driver) AnalogCalibrate(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	if err := d.requireClass(idx, isAnalogInput); err != nil {
		return 0, err
	}
	var total uint32
	for i := 0; i < calibSamples; i++ {
		v, err := d.valueGet(idx)
		if err != nil {
			return 0, err
		}
		total += uint32(v)
		d.cfg.Sleep(d.cfg.SampleDelay)
	}
	d.mu.Lock()
	d.analog[idx].calib = int32((total + 16) >> 5)
	d.mu.Unlock()
	return int32((total + 256) >> 9), nil
}

// AnalogRead returns the raw reading of an analog-compatible port.
func (d *Driver) AnalogRead(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	if err := d.requireClass(idx, isAnalogInput); err != nil {
		return 0, err
	}
	v, err := d.valueGet(idx)
	if err != nil {
		return 0, err
	}
	d.noteValue(idx, v)
	return v, nil
}

// AnalogReadCalibrated returns the raw reading minus the stored zero offset.
func (d *Driver) AnalogReadCalibrated(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	if err := d.requireClass(idx, isAnalogInput); err != nil {
		return 0, err
	}
	v, err := d.valueGet(idx)
	if err != nil {
		return 0, err
	}
	d.noteValue(idx, v)
	d.mu.Lock()
	calib := d.analog[idx].calib
	d.mu.Unlock()
	return v - (calib >> 4), nil
}

// AnalogReadCalibratedHR returns the calibrated reading with 4 extra
// fractional bits retained instead of rounded away. Intended for
// rate-integrating consumers (gyros) that would otherwise accumulate the
// rounding error.
func (d *Driver) AnalogReadCalibratedHR(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	if err := d.requireClass(idx, isAnalogInput); err != nil {
		return 0, err
	}
	v, err := d.valueGet(idx)
	if err != nil {
		return 0, err
	}
	d.noteValue(idx, v)
	d.mu.Lock()
	calib := d.analog[idx].calib
	d.mu.Unlock()
	return (v << 4) - calib, nil
}

// noteValue records the last observed raw reading for a port.
func (d *Driver) noteValue(idx int, v int32) {
	d.mu.Lock()
	d.analog[idx].value = v
	d.mu.Unlock()
}

// LastAnalogValue reports the last raw reading observed by an analog read on
// the port. Eventually-consistent: it lags concurrent reads and is never
// refreshed by the transport on its own.
func (d *Driver) LastAnalogValue(port int) (int32, error) {
	idx, err := translatePort(port)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.analog[idx].value, nil
}
