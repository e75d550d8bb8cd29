package fu

import "math/rand"

// splitmix64 finalizer
func mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

/*
SubSeed derives a stable seed from a base seed and a path of indices,
so the same (seed, path) always produces the same random stream
*/
func SubSeed(seed int64, path ...int) int64 {
	x := mix64(uint64(seed))
	for _, p := range path {
		x = mix64(x ^ uint64(p))
	}
	return int64(x >> 1)
}

/*
NewRand returns a generator seeded by SubSeed(seed, path...)
*/
func NewRand(seed int64, path ...int) *rand.Rand {
	return rand.New(rand.NewSource(SubSeed(seed, path...)))
}
