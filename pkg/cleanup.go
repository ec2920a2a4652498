package shotloader

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// baselineWindow is the pre-shot interval, in seconds, whose mean defines
// the baseline offset. The window is half-open and includes t=0.
const baselineWindow = 0.001

// CleanUp conditions a raw digitizer record: it rebuilds the time base from
// the sample spacing, subtracts the pre-shot baseline, optionally integrates
// (loop and coil channels record dPhi/dt), and removes the residual linear
// drift between the first and last samples. The input record is never
// modified; the returned signal shares no storage with it.
func CleanUp(sig RawSignal, integrate bool) (CleanSignal, error) {
	npts := len(sig.Data)
	if npts == 0 {
		return CleanSignal{}, &ErrInsufficientData{Reason: "empty record"}
	}

	sigTime := make([]float64, npts)
	for i := range sigTime {
		sigTime[i] = sig.DeltaX * float64(i)
	}

	// Average over the pre-shot window to get the baseline offset.
	window := 0
	for window < npts && sigTime[window] < baselineWindow {
		window++
	}
	if window == 0 {
		return CleanSignal{}, &ErrInsufficientData{Reason: "no samples in baseline window"}
	}
	offset := stat.Mean(sig.Data[:window], nil)

	value := make([]float64, npts)
	copy(value, sig.Data)
	floats.AddConst(-offset, value)

	if integrate {
		value = cumTrapz(sigTime, value)
	}

	t0 := sigTime[0]
	t1 := sigTime[npts-1]
	if t1 == t0 {
		return CleanSignal{}, &ErrInsufficientData{Reason: "zero-duration record"}
	}

	// Remove the linear drift. Both endpoints land on value[0]; the record
	// is deliberately not re-zeroed afterwards.
	a := value[0]
	b := value[npts-1]
	slope := (b - a) / (t1 - t0)
	for i := range value {
		value[i] -= slope * (sigTime[i] - t0)
	}

	return CleanSignal{Time: sigTime, Value: value}, nil
}

// cumTrapz is the cumulative trapezoidal integral of y over x, starting at 0.
// gonum's trapezoidal rule only yields the total, so the running sum is done
// here.
func cumTrapz(x, y []float64) []float64 {
	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	return out
}
