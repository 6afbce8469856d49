package dev

type number interface {
	float32 | float64
}

// Approximator converts a raw converter count to an engineering value.
type Approximator[T number] interface {
	Convert(uint16) T
}

// LinearApproximator maps counts through y = mx + b.
type LinearApproximator[T number] struct {
	m T // Slope
	b T // Y-intercept
}

// NewLinearApproximatorFromPoints builds the map from two calibration
// points (count1, value1) and (count2, value2).
func NewLinearApproximatorFromPoints[T number](count1 uint16, value1 T, count2 uint16, value2 T) LinearApproximator[T] {
	m := (value2 - value1) / T(count2-count1)
	b := value1 - m*T(count1)
	return LinearApproximator[T]{m: m, b: b}
}

// NewLinearApproximator builds the map directly from slope and intercept.
func NewLinearApproximator[T number](slope T, intercept T) LinearApproximator[T] {
	return LinearApproximator[T]{m: slope, b: intercept}
}

// Convert transforms a raw count to the calibrated value.
func (la LinearApproximator[T]) Convert(count uint16) T {
	return la.m*T(count) + la.b
}

// CurrentMeter turns averaged sense counts into milliamps. The shunt
// amplifier is biased to mid-scale so current can swing both ways.
type CurrentMeter struct {
	approx LinearApproximator[float32]
}

// NewCurrentMeter calibrates from the zero-current count and the
// microamps each count is worth.
func NewCurrentMeter(zeroCount uint16, microampPerCount uint16) CurrentMeter {
	slope := float32(microampPerCount) / 1000
	return CurrentMeter{
		approx: NewLinearApproximator(slope, -slope*float32(zeroCount)),
	}
}

// Milliamps converts one averaged count.
func (cm CurrentMeter) Milliamps(count uint16) float32 {
	return cm.approx.Convert(count)
}
