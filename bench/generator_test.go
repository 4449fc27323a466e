package bench

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniformGeneratorStaysInRange(t *testing.T) {
	g := newUniformGenerator(100)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		k := g.next(r)
		require.GreaterOrEqual(t, k, int64(0))
		require.Less(t, k, int64(100))
	}
}

func TestZipfianGeneratorStaysInRangeAndSkews(t *testing.T) {
	g := newZipfianGenerator(1000, 0.99)
	r := rand.New(rand.NewSource(1))

	counts := make(map[int64]int)
	const draws = 20000
	for i := 0; i < draws; i++ {
		k := g.next(r)
		require.GreaterOrEqual(t, k, int64(0))
		require.Less(t, k, int64(1000))
		counts[k]++
	}

	// Zipfian skew: key 0 should be drawn far more often than a key deep
	// in the tail.
	require.Greater(t, counts[0], counts[500])
}

func TestHotspotGeneratorFavorsHotInterval(t *testing.T) {
	g := newHotspotGenerator(1000, 0.1, 0.9)
	r := rand.New(rand.NewSource(1))

	hot := 0
	const draws = 5000
	for i := 0; i < draws; i++ {
		k := g.next(r)
		require.GreaterOrEqual(t, k, int64(0))
		require.Less(t, k, int64(1000))
		if k < 100 {
			hot++
		}
	}
	require.Greater(t, hot, draws/2)
}
