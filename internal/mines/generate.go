package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
)

// Sampler picks min(count, bound) distinct values from [0, bound), every
// subset of that size being equally likely. A negative count selects nothing.
type Sampler interface {
	Sample(bound, count int) []int
}

const (
	SamplerShuffle   = "shuffle"
	SamplerSelection = "selection"
)

func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func ParseSampler(name string, r *rand.Rand) (Sampler, error) {
	switch name {
	case SamplerShuffle, "":
		return NewShuffleSampler(r), nil
	case SamplerSelection:
		return NewSelectionSampler(r), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSampler, name)
	}
}

func clampCount(bound, count int) int {
	return max(0, min(count, bound))
}

// ShuffleSampler writes down every candidate and draws from the list,
// moving the last candidate into each drawn slot.
type ShuffleSampler struct {
	r *rand.Rand
}

func NewShuffleSampler(r *rand.Rand) *ShuffleSampler {
	return &ShuffleSampler{r: r}
}

func (s *ShuffleSampler) Sample(bound, count int) []int {
	count = clampCount(bound, count)

	candidates := make([]int, bound)
	for i := range candidates {
		candidates[i] = i
	}

	picked := make([]int, 0, count)
	k := bound
	for range count {
		i := s.r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}

// SelectionSampler visits every index once and keeps it with probability
// (still needed)/(still available). The last candidates are taken with
// probability one when needed, so the result always has the requested size.
type SelectionSampler struct {
	r *rand.Rand
}

func NewSelectionSampler(r *rand.Rand) *SelectionSampler {
	return &SelectionSampler{r: r}
}

func (s *SelectionSampler) Sample(bound, count int) []int {
	count = clampCount(bound, count)

	picked := make([]int, 0, count)
	for i := 0; i < bound && len(picked) < count; i++ {
		need := float64(count - len(picked))
		left := float64(bound - i)
		if s.r.Float64()*left < need {
			picked = append(picked, i)
		}
	}
	return picked
}
