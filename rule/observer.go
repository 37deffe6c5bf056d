package rule

import (
	"math"

	"github.com/katalvlaran/wfc/space"
	"github.com/katalvlaran/wfc/state"
)

// UniformObserver commits a cell to one of its remaining final values,
// chosen uniformly at random.
type UniformObserver[S state.SetState[S]] struct{}

// Observe implements Observer. An empty cell is returned unchanged.
func (UniformObserver[S]) Observe(cell S, _ []space.Slot[S], rng Rand) S {
	finals := cell.CollectFinalStates(nil)
	if len(finals) == 0 {
		return cell
	}
	return finals[rng.Intn(len(finals))]
}

// WeightedObserver commits a cell to one of its remaining final values with
// probability proportional to Weight. Values whose weight is not a positive
// finite number are never picked while a validly weighted value remains;
// when none does, the pick falls back to uniform.
type WeightedObserver[S state.SetState[S]] struct {
	// Weight maps a singleton final value to its relative frequency.
	Weight func(final S) float64
}

// Observe implements Observer.
func (o WeightedObserver[S]) Observe(cell S, nbrs []space.Slot[S], rng Rand) S {
	finals := cell.CollectFinalStates(nil)
	if len(finals) == 0 || o.Weight == nil {
		return UniformObserver[S]{}.Observe(cell, nbrs, rng)
	}

	weights := make([]float64, len(finals))
	var total float64
	for i, f := range finals {
		w := o.Weight(f)
		if !(w > 0) || math.IsInf(w, 1) {
			continue
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return finals[rng.Intn(len(finals))]
	}
	if math.IsInf(total, 1) {
		// finite weights overflowed the sum: pick among the weighted values
		weighted := finals[:0:0]
		for i, w := range weights {
			if w > 0 {
				weighted = append(weighted, finals[i])
			}
		}
		return weighted[rng.Intn(len(weighted))]
	}

	r := rng.Float64() * total
	last := -1
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		r -= w
		if r < 0 {
			return finals[i]
		}
	}
	// float rounding left r at or just above zero
	return finals[last]
}
