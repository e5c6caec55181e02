package mines

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func samplers() map[string]func(r *rand.Rand) Sampler {
	return map[string]func(r *rand.Rand) Sampler{
		SamplerShuffle:   func(r *rand.Rand) Sampler { return NewShuffleSampler(r) },
		SamplerSelection: func(r *rand.Rand) Sampler { return NewSelectionSampler(r) },
	}
}

func TestSampleSizeAndRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bound, count, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 1, 1},
		{10, 3, 3},
		{10, 10, 10},
		{10, 25, 10},
		{10, -2, 0},
		{81, 10, 10},
		{480, 99, 99},
	}

	for name, newSampler := range samplers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newSampler(rand.New(rand.NewPCG(1, 2)))
			for range 50 {
				for _, test := range tests {
					got := s.Sample(test.bound, test.count)
					require.Len(t, got, test.want, "bound %d count %d", test.bound, test.count)
					seen := make(map[int]bool, len(got))
					for _, v := range got {
						assert.True(t, 0 <= v && v < test.bound, "value %d out of range", v)
						assert.False(t, seen[v], "duplicate %d", v)
						seen[v] = true
					}
				}
			}
		})
	}
}

func TestSampleWholeRange(t *testing.T) {
	for name, newSampler := range samplers() {
		t.Run(name, func(t *testing.T) {
			got := newSampler(NewRand()).Sample(10, 10)
			slices.Sort(got)
			assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
		})
	}
}

// Every value should be picked roughly count/bound of the time.
func TestSampleUniform(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	const (
		bound  = 10
		count  = 3
		rounds = 20000
	)
	for name, newSampler := range samplers() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := newSampler(rand.New(rand.NewPCG(3, 4)))
			var hits [bound]int
			for range rounds {
				for _, v := range s.Sample(bound, count) {
					hits[v]++
				}
			}
			expected := float64(rounds*count) / bound
			for v, h := range hits {
				assert.InDelta(t, expected, float64(h), expected*0.1, "value %d", v)
			}
		})
	}
}

func TestParseSampler(t *testing.T) {
	r := NewRand()

	s, err := ParseSampler("shuffle", r)
	require.NoError(t, err)
	assert.IsType(t, &ShuffleSampler{}, s)

	s, err = ParseSampler("", r)
	require.NoError(t, err)
	assert.IsType(t, &ShuffleSampler{}, s)

	s, err = ParseSampler("selection", r)
	require.NoError(t, err)
	assert.IsType(t, &SelectionSampler{}, s)

	_, err = ParseSampler("reservoir", r)
	assert.ErrorIs(t, err, ErrUnknownSampler)
}
