package aggregating

import (
	"math"
	"math/rand/v2"
)

// sampleSize calcula quantas vendas entram no período anterior sintético
func sampleSize(n int, fraction float64) int {
	k := int(math.Round(fraction * float64(n)))
	if k < 0 {
		return 0
	}
	if k > n {
		return n
	}
	return k
}

// sampleIndices escolhe k posições distintas de [0, n) com um Fisher-Yates parcial.
// O gerador PCG com semente fixa torna a escolha reproduzível entre execuções e plataformas.
func sampleIndices(n, k int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed))

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}

	return indices[:k]
}
