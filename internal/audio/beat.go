package audio

const (
	// DefaultEnergyThreshold is the rise above the tracked minimum that
	// counts as a beat.
	DefaultEnergyThreshold = 70
	initialMinimum         = 2000000000
)

// EnergyDetector tracks a slowly rising minimum of the signal power and
// reports a beat when the power jumps above it by Threshold.
type EnergyDetector struct {
	Threshold int
	min       int
}

func NewEnergyDetector(threshold int) *EnergyDetector {
	if threshold <= 0 {
		threshold = DefaultEnergyThreshold
	}
	return &EnergyDetector{Threshold: threshold, min: initialMinimum}
}

// Feed processes one power sample and reports whether it is a beat.
func (d *EnergyDetector) Feed(power int) bool {
	if power < d.min {
		d.min = power
	} else if d.min > 0 {
		d.min--
	}
	if power > d.min+d.Threshold {
		d.min = power
		return true
	}
	return false
}

// Minimum is the currently tracked floor.
func (d *EnergyDetector) Minimum() int { return d.min }

func (d *EnergyDetector) Reset() { d.min = initialMinimum }
