package types

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// MB returns the number of megabytes (1024 base).
func (b Bytes) MB() float64 { return float64(b) / (1024 * 1024) }
