package mem

import "runtime"

// ZeroBytes overwrites b with zeros once key material is no longer needed.
// runtime.KeepAlive keeps the stores from being eliminated. Copies the GC
// made earlier are out of reach.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
