package dinebench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_StaysWithinBounds(t *testing.T) {
	ranges := []Range{
		{Min: 1, Max: 1},
		{Min: 1, Max: 2},
		{Min: 10, Max: 50},
		{Min: 100, Max: 100},
		{Min: 1, Max: 1000},
		{Min: 900, Max: 1000}, // far above the tail mass of its own mean
	}

	for _, kind := range []Distribution{Uniform, Exponential} {
		for _, r := range ranges {
			s := NewSampler(42, 7)
			lo := time.Duration(r.Min) * time.Millisecond
			hi := time.Duration(r.Max) * time.Millisecond

			for i := 0; i < 10000; i++ {
				d, err := s.Sample(kind, r)
				require.NoError(t, err)
				if d < lo || d > hi {
					t.Fatalf("%s %v: sample %v outside [%v, %v]", kind, r, d, lo, hi)
				}
				require.Zero(t, d%time.Millisecond, "samples are whole milliseconds")
			}
		}
	}
}

func TestSampler_UniformCoversInterval(t *testing.T) {
	s := NewSampler(1, 1)
	seen := map[time.Duration]int{}
	for i := 0; i < 10000; i++ {
		d, err := s.Sample(Uniform, Range{Min: 3, Max: 7})
		require.NoError(t, err)
		seen[d]++
	}

	assert.Len(t, seen, 5, "every value in [3,7] should appear")
	for d, n := range seen {
		assert.InDelta(t, 2000, n, 300, "value %v drawn %d times", d, n)
	}
}

func TestSampler_ExponentialSkewsLow(t *testing.T) {
	// Truncated exponential with mean (1+200)/2 puts more mass below the
	// midpoint than above it.
	s := NewSampler(9, 3)
	r := Range{Min: 1, Max: 200}

	var below, above int
	for i := 0; i < 10000; i++ {
		d, err := s.Sample(Exponential, r)
		require.NoError(t, err)
		if d < 100*time.Millisecond {
			below++
		} else {
			above++
		}
	}

	t.Logf("below midpoint: %d, above: %d", below, above)
	assert.Greater(t, below, above)
}

func TestSampler_Reproducible(t *testing.T) {
	a := NewSampler(123, 4)
	b := NewSampler(123, 4)
	for i := 0; i < 100; i++ {
		da, _ := a.Sample(Exponential, Range{Min: 5, Max: 500})
		db, _ := b.Sample(Exponential, Range{Min: 5, Max: 500})
		require.Equal(t, da, db)
	}
}

func TestSampler_InvalidDistribution(t *testing.T) {
	s := NewSampler(1, 1)

	d, err := s.Sample(Distribution(99), Range{Min: 1, Max: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDistribution))
	assert.Zero(t, d, "no sample on error")
}

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		in      string
		want    Distribution
		wantErr bool
	}{
		{"uniform", Uniform, false},
		{"Exponential", Exponential, false},
		{" UNIFORM ", Uniform, false},
		{"gaussian", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDistribution(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDistribution)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDistribution_Text(t *testing.T) {
	text, err := Exponential.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "exponential", string(text))

	_, err = Distribution(5).MarshalText()
	assert.ErrorIs(t, err, ErrInvalidDistribution)

	var d Distribution
	require.NoError(t, d.UnmarshalText([]byte("exponential")))
	assert.Equal(t, Exponential, d)
	assert.ErrorIs(t, d.UnmarshalText([]byte("gaussian")), ErrInvalidDistribution)
}
