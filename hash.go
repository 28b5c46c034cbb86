package word2vec

import "hash/fnv"

// stringHash returns the FNV-1a hash of s. Used both as the bucket
// hash for the vocabulary's open-addressing index and, combined with
// the configured seed, as the deterministic source for a word's
// initial input vector (see seededVector).
func stringHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// mix64 is a finalizer mixing function used to spread a hash value
// over the full 64-bit range before it is folded down to a bucket
// index or a PRNG seed. Adapted from the fast-hash finalizer
// (https://code.google.com/p/fast-hash), the same one the teacher
// uses to scatter word ids over hash buckets.
func mix64(h uint64) uint64 {
	h ^= h >> 23
	h *= 0x2127599bf4325c37
	h ^= h >> 47
	return h
}
