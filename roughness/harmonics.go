package roughness

import (
	"math"
	"sort"
)

// fundamentalRate groups the weighted peaks of one (block, band) cell into
// harmonic complexes and reduces the dominant complex to a single
// fundamental modulation rate and amplitude. Zero usable peaks yield
// (0, 0).
func fundamentalRate(peaks []modPeak) (rate, amplitude float64) {
	usable := make([]modPeak, 0, len(peaks))
	for _, p := range peaks {
		if p.weighted > 0 && p.rate > 0 {
			usable = append(usable, p)
		}
	}
	if len(usable) == 0 {
		return 0, 0
	}

	bestEnergy := -1.0
	var bestMembers []int
	bestRef := 0

	// Each peak is a candidate reference; members of its complex relate
	// to it by near-integer rate ratios.
	for ref := range usable {
		members := complexMembers(usable, ref)

		energy := 0.0
		for _, i := range members {
			energy += usable[i].weighted
		}

		// Deterministic winner: strictly higher energy, so the lowest
		// reference index wins exact ties.
		if energy > bestEnergy {
			bestEnergy = energy
			bestMembers = members
			bestRef = ref
		}
	}

	return usable[bestRef].rate, gravityWeightedSum(usable, bestMembers)
}

// complexMembers selects the peaks whose rate ratio to the reference is
// near an integer. Duplicate integer ratios are resolved by the smaller
// deviation from the exact ratio, ties by the lower peak index.
func complexMembers(peaks []modPeak, ref int) []int {
	refRate := peaks[ref].rate

	// Best candidate per integer ratio.
	type candidate struct {
		index     int
		deviation float64
	}
	byRatio := make(map[int]candidate)

	for i, p := range peaks {
		ratio := p.rate / refRate
		harmonic := int(math.Round(ratio))
		if harmonic < 1 {
			continue
		}

		deviation := math.Abs(ratio-float64(harmonic)) / float64(harmonic)
		if deviation > harmonicTolerance {
			continue
		}

		if cur, ok := byRatio[harmonic]; !ok || deviation < cur.deviation {
			byRatio[harmonic] = candidate{index: i, deviation: deviation}
		}
	}

	members := make([]int, 0, len(byRatio))
	for _, c := range byRatio {
		members = append(members, c.index)
	}
	sort.Ints(members)
	return members
}

// gravityWeightedSum damps member amplitudes by their relative distance
// from the complex's amplitude-weighted centroid rate before summing.
func gravityWeightedSum(peaks []modPeak, members []int) float64 {
	if len(members) == 0 {
		return 0
	}

	var ampSum, rateSum float64
	for _, i := range members {
		ampSum += peaks[i].weighted
		rateSum += peaks[i].weighted * peaks[i].rate
	}
	if ampSum == 0 {
		return 0
	}
	centroid := rateSum / ampSum

	total := 0.0
	for _, i := range members {
		offset := math.Abs(peaks[i].rate-centroid) / centroid
		total += peaks[i].weighted / math.Pow(1+offset, gravityExponent)
	}
	return total
}
