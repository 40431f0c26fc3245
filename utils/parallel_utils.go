package utils

import (
	"runtime"
	"sync"
)

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into pm.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// ParallelDegree is the default number of partitions used by ParallelFor.
var ParallelDegree = runtime.NumCPU()

// ParallelFor runs kernel over [0, n) split into contiguous partitions, one
// goroutine per partition, and returns when every partition is done.
// Kernels must not depend on iteration order.
func ParallelFor(n int, kernel func(kMin, kMax int)) {
	var (
		np = ParallelDegree
	)
	if n <= 0 {
		return
	}
	if np > n {
		np = n
	}
	if np <= 1 {
		kernel(0, n)
		return
	}
	pm := NewPartitionMap(np, n)
	wg := sync.WaitGroup{}
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		wg.Add(1)
		go func(bn int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(bn)
			kernel(kMin, kMax)
		}(bn)
	}
	wg.Wait()
}

// ParallelMax reduces f over [0, n) with max, in parallel.
func ParallelMax(n int, f func(k int) float64) (max float64) {
	var (
		np = ParallelDegree
	)
	if n <= 0 {
		return
	}
	if np > n {
		np = n
	}
	if np < 1 {
		np = 1
	}
	pm := NewPartitionMap(np, n)
	partial := make([]float64, pm.ParallelDegree)
	wg := sync.WaitGroup{}
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		wg.Add(1)
		go func(bn int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(bn)
			m := f(kMin)
			for k := kMin + 1; k < kMax; k++ {
				if v := f(k); v > m {
					m = v
				}
			}
			partial[bn] = m
		}(bn)
	}
	wg.Wait()
	max = partial[0]
	for _, m := range partial[1:] {
		if m > max {
			max = m
		}
	}
	return
}
