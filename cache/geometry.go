// Package cache implements a per-processor set-associative tag store with
// LRU replacement. It tracks tags and coherence state only — no cache line
// ever holds data, since this simulator counts coherence events rather than
// modeling memory contents.
package cache

import "fmt"

// ConfigError reports a bad cache geometry.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string { return e.msg }

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{msg: fmt.Sprintf(format, args...)}
}

// Geometry is the fixed layout of a set-associative cache, derived once
// at construction time from total size, block size, and associativity.
type Geometry struct {
	TotalBytes      int
	BlockBytes      int
	Associativity   int
	NumSets         int
	BlockOffsetBits uint
	IndexBits       uint
}

// NewGeometry validates and derives a cache geometry. TotalBytes and
// BlockBytes must each be an exact power of two, Associativity must be a
// positive divisor of TotalBytes/BlockBytes, and the resulting number of
// sets must itself be an exact power of two.
func NewGeometry(totalBytes, blockBytes, associativity int) (Geometry, error) {
	if totalBytes <= 0 || !isPowerOfTwo(totalBytes) {
		return Geometry{}, configErrorf("cache size %d is not a positive power of two", totalBytes)
	}
	if blockBytes <= 0 || !isPowerOfTwo(blockBytes) {
		return Geometry{}, configErrorf("block size %d is not a positive power of two", blockBytes)
	}
	if associativity <= 0 {
		return Geometry{}, configErrorf("associativity %d must be positive", associativity)
	}
	if totalBytes%(blockBytes*associativity) != 0 {
		return Geometry{}, configErrorf(
			"cache size %d is not divisible by block size %d times associativity %d",
			totalBytes, blockBytes, associativity)
	}

	numSets := totalBytes / (blockBytes * associativity)
	if !isPowerOfTwo(numSets) {
		return Geometry{}, configErrorf("derived set count %d is not a power of two", numSets)
	}

	return Geometry{
		TotalBytes:      totalBytes,
		BlockBytes:      blockBytes,
		Associativity:   associativity,
		NumSets:         numSets,
		BlockOffsetBits: log2(uint64(blockBytes)),
		IndexBits:       log2(uint64(numSets)),
	}, nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n uint64) uint {
	var bits uint
	for n > 1 {
		n >>= 1
		bits++
	}
	return bits
}

// Tag returns addr's tag. Per the original simulator this still carries
// the index bits (addr >> BlockOffsetBits) rather than only the
// high-order bits; lookup within a set still disambiguates correctly
// because every line in a given set shares the same index bits.
func (g Geometry) Tag(addr uint64) uint64 {
	return addr >> g.BlockOffsetBits
}

// Index returns the set addr maps to.
func (g Geometry) Index(addr uint64) int {
	return int((addr >> g.BlockOffsetBits) % uint64(g.NumSets))
}
