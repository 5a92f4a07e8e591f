// Package rng provides the small deterministic generator used by spawn and
// split logic.
package rng

import "time"

// zeroSeedReplacement keeps the generator out of the all-zero fixed point.
const zeroSeedReplacement = 0x9e3779b97f4a7c15

// XorShift64 is an xorshift64* generator. It is not safe for concurrent use.
type XorShift64 struct {
	state uint64
}

// New creates a generator from seed. A zero seed is replaced with a fixed
// odd constant.
func New(seed uint64) *XorShift64 {
	if seed == 0 {
		seed = zeroSeedReplacement
	}
	return &XorShift64{state: seed}
}

// NewTimeSeeded creates a generator seeded from the monotonic clock.
func NewTimeSeeded() *XorShift64 {
	return New(TimeSeed())
}

// TimeSeed returns a seed derived from the current time in nanoseconds.
func TimeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Uint64 advances the generator and returns the next value.
func (x *XorShift64) Uint64() uint64 {
	s := x.state
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	x.state = s
	return s * 0x2545F4914F6CDD1D
}

// Uint32 returns the high 32 bits of the next value.
func (x *XorShift64) Uint32() uint32 {
	return uint32(x.Uint64() >> 32)
}

// Float32 returns a uniform value in [0, 1).
func (x *XorShift64) Float32() float32 {
	// 24 bits keep the quotient strictly below 1 in float32.
	return float32(x.Uint32()>>8) / (1 << 24)
}

// Range returns a uniform value in [min, max).
func (x *XorShift64) Range(min, max float32) float32 {
	return min + x.Float32()*(max-min)
}
