package memlock

import "fmt"

func ExampleNewSecure() {
	alloc := NewSecure()

	buf, err := alloc.Allocate(32)
	if err != nil {
		// Typically RLIMIT_MEMLOCK exhaustion; see LockError.
		return
	}
	copy(buf, []byte("correct horse battery staple"))

	// ... use the secret; its pages cannot reach swap ...

	// Wiped, then unlocked, then released.
	_ = alloc.Deallocate(buf)
}

func ExampleNewBuffer() {
	b, err := NewBuffer(64)
	if err != nil {
		return
	}
	defer b.Destroy()

	copy(b.Bytes(), []byte("s3cr3t"))
}

func ExampleWipe() {
	b := []byte{1, 2, 3}
	Wipe(b)
	fmt.Println(b)
	// Output: [0 0 0]
}
