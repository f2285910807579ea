package pagelock

import "os"

// Pager abstracts the OS primitives the tracker depends on: querying the
// page size and pinning/unpinning page ranges. There is one real
// implementation per OS family; tests inject recording fakes.
type Pager interface {
	// PageSize returns the size of an OS memory page in bytes.
	PageSize() int

	// Pin locks [addr, addr+length) into physical memory.
	Pin(addr, length uintptr) error

	// Unpin releases [addr, addr+length) so the OS may swap it again.
	Unpin(addr, length uintptr) error
}

// SystemPager pins pages through the platform syscalls.
type SystemPager struct {
	pageSize int
}

// NewSystemPager returns a Pager backed by the real OS primitives.
func NewSystemPager() *SystemPager {
	return &SystemPager{pageSize: os.Getpagesize()}
}

// PageSize implements Pager.
func (p *SystemPager) PageSize() int { return p.pageSize }

// Pin implements Pager.
func (p *SystemPager) Pin(addr, length uintptr) error {
	if length == 0 {
		return nil
	}
	return osPin(addr, length)
}

// Unpin implements Pager.
func (p *SystemPager) Unpin(addr, length uintptr) error {
	if length == 0 {
		return nil
	}
	return osUnpin(addr, length)
}
