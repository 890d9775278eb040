package math

// Hash32 mixes 32-bit input into a well-distributed 32-bit output
// (murmur3 finalizer constants).
func Hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Hash2 returns a stable hash for 2D integer coordinates and a seed.
func Hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return Hash32(h)
}

// CellSeed derives an independent, reproducible 63-bit seed for grid cell (row, col).
// The result depends only on its inputs, never on generation order.
func CellSeed(seed int64, row, col int) int64 {
	lo := Hash2(uint32(seed), int32(row), int32(col))
	hi := Hash2(uint32(seed>>32)^lo, int32(col), int32(row))
	return int64(uint64(hi)<<32|uint64(lo)) & (1<<63 - 1)
}
