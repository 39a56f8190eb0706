// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"math/big"
	"math/rand"
)

// Sampler draws models of a formula uniformly at random: each model is
// returned with probability 1/Count(). A draw is a random integer below the
// total count, taken with arbitrary precision so that large ranges are never
// truncated to machine words, fed to a direct-access engine.
type Sampler struct {
	total *big.Int
	at    func(*big.Int) ([]Literal, error)
	rnd   *rand.Rand
}

// NewSampler returns a uniform sampler in structural order, reusing the
// precomputed counts of the engine.
func NewSampler(a *Access, seed int64) *Sampler {
	return &Sampler{
		total: a.Count(),
		at:    a.Model,
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// NewOrderedSampler returns a uniform sampler that goes through a
// lexicographic direct-access engine. The distribution is the same as with
// NewSampler; only the index-to-model mapping differs.
func NewOrderedSampler(a *OrderedAccess, seed int64) *Sampler {
	return &Sampler{
		total: a.Count(),
		at:    a.Model,
		rnd:   rand.New(rand.NewSource(seed)),
	}
}

// Sample returns one model drawn uniformly at random, or ErrNoModel if the
// formula is unsatisfiable.
func (s *Sampler) Sample() ([]Literal, error) {
	if s.total.Sign() == 0 {
		return nil, ErrNoModel
	}
	draw := new(big.Int).Rand(s.rnd, s.total)
	return s.at(draw)
}

// SampleN returns l independent uniform samples.
func (s *Sampler) SampleN(l int) ([][]Literal, error) {
	res := make([][]Literal, 0, l)
	for i := 0; i < l; i++ {
		m, err := s.Sample()
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}
