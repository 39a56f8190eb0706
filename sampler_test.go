// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ddnnf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleSupport(t *testing.T) {
	for i := range accessInstances {
		g := parseAt(t, i)
		counter := NewCounter(g)
		if counter.Count().Sign() == 0 {
			continue
		}
		support := make(map[string]bool)
		require.NoError(t, NewEnumerator(g).Do(func(m []Literal) error {
			support[fmt.Sprint(m)] = true
			return nil
		}))
		sampler := NewSampler(NewAccess(counter), 42)
		models, err := sampler.SampleN(50)
		require.NoError(t, err)
		require.Len(t, models, 50)
		for _, m := range models {
			assert.True(t, support[fmt.Sprint(m)], "sampled %v outside the model set of %q", m, accessInstances[i].input)
		}
	}
}

func TestSampleCoverage(t *testing.T) {
	// with 8 models and 400 draws, missing one model has probability
	// (7/8)^400, low enough to never trip
	g := parse(t, "t 1 0", Nvars(3))
	sampler := NewSampler(NewAccess(NewCounter(g)), 7)
	models, err := sampler.SampleN(400)
	require.NoError(t, err)
	seen := make(map[string]int)
	for _, m := range models {
		seen[fmt.Sprint(m)]++
	}
	assert.Equal(t, 8, len(seen))
}

func TestSampleDeterministicSeed(t *testing.T) {
	g := parse(t, "a 1 0\no 2 0\no 3 0\nt 4 0\n1 2 0\n1 3 0\n2 4 -1 0\n2 4 1 0\n3 4 -2 0\n3 4 2 0\n")
	s1, err := NewSampler(NewAccess(NewCounter(g)), 13).SampleN(20)
	require.NoError(t, err)
	s2, err := NewSampler(NewAccess(NewCounter(g)), 13).SampleN(20)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestSampleUnsat(t *testing.T) {
	g := parse(t, "f 1 0")
	sampler := NewSampler(NewAccess(NewCounter(g)), 1)
	_, err := sampler.Sample()
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestSampleOrdered(t *testing.T) {
	g := parse(t, "o 1 0\no 2 0\nt 3 0\n2 3 -1 -2 0\n2 3 1 0\n1 2 0\n")
	engine, err := NewOrderedAccess(g, nil)
	require.NoError(t, err)
	sampler := NewOrderedSampler(engine, 99)
	models, err := sampler.SampleN(30)
	require.NoError(t, err)
	support := map[string]bool{
		fmt.Sprint(lits(-1, -2)): true,
		fmt.Sprint(lits(1, -2)):  true,
		fmt.Sprint(lits(1, 2)):   true,
	}
	for _, m := range models {
		assert.True(t, support[fmt.Sprint(m)], "sampled %v outside the model set", m)
	}
}
