package dinebench

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// ErrInvalidDistribution is returned for a distribution kind that is neither
// Uniform nor Exponential. It is a configuration error, never retryable.
var ErrInvalidDistribution = errors.New("invalid distribution")

// Distribution selects the probability model for phase durations.
type Distribution int

const (
	Uniform     Distribution = iota // Flat over the closed interval
	Exponential                     // Mean (min+max)/2, truncated to bounds
)

// maxRejections bounds exponential rejection sampling. A range far from its
// own mean (e.g. min == max) can reject most draws; past this many
// consecutive rejections the sampler draws uniformly instead.
const maxRejections = 10000

// String returns the command-line name of the distribution.
func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Exponential:
		return "exponential"
	default:
		return fmt.Sprintf("Distribution(%d)", int(d))
	}
}

// Valid reports whether d is a known distribution kind.
func (d Distribution) Valid() bool {
	return d == Uniform || d == Exponential
}

// ParseDistribution maps "uniform" or "exponential" (case-insensitive) to a
// Distribution. Anything else wraps ErrInvalidDistribution.
func ParseDistribution(name string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform":
		return Uniform, nil
	case "exponential":
		return Exponential, nil
	default:
		return 0, fmt.Errorf("%w: %q (want uniform or exponential)", ErrInvalidDistribution, name)
	}
}

// MarshalText implements encoding.TextMarshaler so configs and reports carry
// the distribution by name.
func (d Distribution) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDistribution, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Distribution) UnmarshalText(text []byte) error {
	parsed, err := ParseDistribution(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Range is a closed interval of whole milliseconds.
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// validate checks that both bounds are positive and ordered.
func (r Range) validate(name string) error {
	if r.Min <= 0 || r.Max <= 0 {
		return fmt.Errorf("%w: %s range bounds must be positive, got [%d, %d]", ErrInvalidConfig, name, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d exceeds max %d", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}

// Sampler draws phase durations. A Sampler is not safe for concurrent use;
// each agent owns its own.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler creates a sampler over a PCG source seeded with seed and stream.
func NewSampler(seed, stream uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, stream))}
}

// Sample returns a duration in whole milliseconds within [r.Min, r.Max].
//
// Uniform draws over the closed integer interval. Exponential uses inverse
// transform sampling, -ln(1-u)*mean with mean = (min+max)/2, and redraws
// while the result falls outside the bounds.
func (s *Sampler) Sample(kind Distribution, r Range) (time.Duration, error) {
	var ms int
	switch kind {
	case Uniform:
		ms = s.uniform(r)
	case Exponential:
		ms = s.exponential(r)
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidDistribution, kind)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (s *Sampler) uniform(r Range) int {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + s.rng.IntN(r.Max-r.Min+1)
}

func (s *Sampler) exponential(r Range) int {
	if r.Min >= r.Max {
		return r.Min
	}

	mean := float64(r.Min+r.Max) / 2
	for i := 0; i < maxRejections; i++ {
		u := s.rng.Float64()
		ms := int(math.Floor(-math.Log(1-u) * mean))
		if ms >= r.Min && ms <= r.Max {
			return ms
		}
	}
	return s.uniform(r)
}
