package audio

// FilterTaps is the window of the averaging filter.
const FilterTaps = 10

// AveragingFilter is a moving average over the last FilterTaps samples.
// Slots not yet filled count as zero.
type AveragingFilter struct {
	buf [FilterTaps]uint16
}

func (f *AveragingFilter) Feed(v uint16) {
	copy(f.buf[:], f.buf[1:])
	f.buf[FilterTaps-1] = v
}

func (f *AveragingFilter) Average() float64 {
	sum := 0
	for _, v := range f.buf {
		sum += int(v)
	}
	return float64(sum) / FilterTaps
}
