package csp

import (
	"fmt"
	"hash/fnv"
)

// HashValue produces a content hash for any value a constraint family might
// store (a variable, a tuple entry, a tile). It hashes the value's %#v
// representation, which is stable for the comparable scalar and struct
// types these families are expected to be instantiated with.
func HashValue(v any) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%#v", v)
	return h.Sum64()
}

// HashOrdered combines a sequence of hashes where order is significant (an
// ordered tuple or variable list): prefix each with its position so that
// e.g. [a, b] and [b, a] hash differently.
func HashOrdered(hashes ...uint64) uint64 {
	h := fnv.New64a()
	for i, x := range hashes {
		fmt.Fprintf(h, "%d:%x;", i, x)
	}
	return h.Sum64()
}

// HashUnordered combines a sequence of hashes order-independently, via
// wrapping addition. This mirrors the wrapping-sum trick the pack's Rust
// original source uses for its NewHashSet content hash, so that hashing a
// tile set or tuple set does not depend on iteration order.
func HashUnordered(hashes ...uint64) uint64 {
	var sum uint64
	for _, x := range hashes {
		sum += x
	}
	return sum
}
