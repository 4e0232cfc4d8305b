package jce

import (
	"bytes"
	"sync"
)

// bytesBufPool reuses encode buffers to reduce GC pressure for Marshal and
// for map key ordering.
var bytesBufPool = sync.Pool{
	New: func() any {
		// Most messages fit in one page.
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}
