package sim

// RNG is the only source of randomness the simulation uses.
type RNG interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// SimpleRNG is a 64-bit linear congruential generator. It is fast, has no
// hidden global state and reproduces the same sequence for the same seed.
type SimpleRNG struct {
	state uint64
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed int64) *SimpleRNG {
	r := &SimpleRNG{state: uint64(seed)}
	// Scramble small seeds so nearby seeds diverge immediately.
	r.next()
	r.next()
	return r
}

func (r *SimpleRNG) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Float64 uses the top 53 bits, so 1.0 is never returned.
func (r *SimpleRNG) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Intn uses the high bits; the low bits of an LCG cycle quickly.
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n))
}

// Shuffle permutes the first n indices with Fisher-Yates.
func Shuffle(rng RNG, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		swap(i, j)
	}
}
