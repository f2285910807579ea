package memlock

// NewSecure creates the secure composition: a zero-on-release stage layered
// over a serialized no-swap stage. The layering order is the contract: on
// deallocation the buffer is wiped first, then its pages are unlocked, then
// the memory is returned upstream - a secret is never unlockable while it is
// still readable.
func NewSecure(opts ...Option) *ZeroOnRelease {
	return NewZeroOnRelease(NewNoSwap(opts...))
}

// NewUnserializedSecure is NewSecure without internal locking, for
// single-goroutine programs. See NewUnserializedNoSwap for the contract.
func NewUnserializedSecure(opts ...Option) *ZeroOnRelease {
	return NewZeroOnRelease(NewUnserializedNoSwap(opts...))
}
