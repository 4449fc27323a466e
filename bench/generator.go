// Copyright 2018 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// See the License for the specific language governing permissions and
// limitations under the License.

package bench

import (
	"math"
	"math/rand"
)

// keyGenerator draws integer keys in [0, n) from some distribution. It is
// the same role go-ycsb's generator.Generator interface plays for its
// request distributions, narrowed to the one thing the workload needs:
// repeatedly drawing a key in range given an *rand.Rand.
type keyGenerator interface {
	next(r *rand.Rand) int64
}

// uniformGenerator draws keys with equal probability, adapted from
// generator.Uniform.
type uniformGenerator struct {
	n int64
}

func newUniformGenerator(n int64) *uniformGenerator {
	return &uniformGenerator{n: n}
}

func (u *uniformGenerator) next(r *rand.Rand) int64 {
	return r.Int63n(u.n)
}

// zipfianGenerator draws keys 0 is most popular, 1 next most popular, and
// so on, following a Zipfian skew. It is adapted from generator.Zipfian,
// the implementation of "Quickly Generating Billion-Record Synthetic
// Databases" (Gray et al., SIGMOD 1994); the zeta/eta bookkeeping below
// only ever runs over a fixed item count, so the incremental-recompute
// path the original carries for a growing keyspace is dropped.
type zipfianGenerator struct {
	items int64

	theta float64
	alpha float64
	zetan float64
	eta   float64
}

func newZipfianGenerator(items int64, theta float64) *zipfianGenerator {
	z := &zipfianGenerator{
		items: items,
		theta: theta,
		alpha: 1.0 / (1.0 - theta),
	}
	zeta2Theta := zeta(0, 2, theta)
	z.zetan = zeta(0, items, theta)
	z.eta = (1 - math.Pow(2.0/float64(items), 1-theta)) / (1 - zeta2Theta/z.zetan)
	return z
}

func zeta(start, n int64, theta float64) float64 {
	var sum float64
	for i := start; i < n; i++ {
		sum += 1 / math.Pow(float64(i+1), theta)
	}
	return sum
}

func (z *zipfianGenerator) next(r *rand.Rand) int64 {
	u := r.Float64()
	uz := u * z.zetan

	if uz < 1.0 {
		return 0
	}
	if uz < 1.0+math.Pow(0.5, z.theta) {
		return 1
	}
	ret := int64(float64(z.items) * math.Pow(z.eta*u-z.eta+1, z.alpha))
	if ret >= z.items {
		ret = z.items - 1
	}
	return ret
}

// hotspotGenerator sends hotOpnFraction of draws into the first
// hotsetFraction of the keyspace and the rest into the remainder,
// adapted from generator.Hotspot.
type hotspotGenerator struct {
	hotInterval    int64
	coldInterval   int64
	hotOpnFraction float64
}

func newHotspotGenerator(items int64, hotsetFraction, hotOpnFraction float64) *hotspotGenerator {
	if hotsetFraction < 0.0 || hotsetFraction > 1.0 {
		hotsetFraction = 0.0
	}
	if hotOpnFraction < 0.0 || hotOpnFraction > 1.0 {
		hotOpnFraction = 0.0
	}
	hot := int64(float64(items) * hotsetFraction)
	if hot < 1 {
		hot = 1
	}
	if hot > items-1 {
		hot = items - 1
	}
	return &hotspotGenerator{
		hotInterval:    hot,
		coldInterval:   items - hot,
		hotOpnFraction: hotOpnFraction,
	}
}

func (h *hotspotGenerator) next(r *rand.Rand) int64 {
	if r.Float64() < h.hotOpnFraction {
		return r.Int63n(h.hotInterval)
	}
	return h.hotInterval + r.Int63n(h.coldInterval)
}
