package redpacket

// Clock supplies the current block height. Heights are monotonically
// non-decreasing across operations; each operation reads the clock at most
// once, so the height is constant within an operation.
type Clock interface {
	BlockNumber() BlockNumber
}
