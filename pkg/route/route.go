// Package route parses and encodes the little-endian packed u32 route
// buffer that selects which major nodes a playthrough visits and in what
// order (spec.md §4.2, C2). A route is a sequence of major node ids
// terminated by a sentinel value of 1.
package route

import (
	"encoding/binary"

	"github.com/dshills/xixizk/pkg/xerr"
)

const terminator uint32 = 1

// Parse decodes buf into a route of major node ids. buf's length must be
// a positive multiple of 4, and its last u32 must equal the terminator
// sentinel (1). That last element is itself a real major node id (the
// route's final step) and is included, unstripped, in the returned
// slice — the terminator rule only constrains which value a route may
// end on, it does not mark a word to be discarded.
func Parse(buf []byte) ([]uint32, error) {
	if len(buf) == 0 {
		return nil, xerr.New(xerr.EmptyRoute, "route buffer is empty")
	}
	if len(buf)%4 != 0 {
		return nil, xerr.New(xerr.MalformedRoute, "route buffer length %d is not a multiple of 4", len(buf))
	}

	n := len(buf) / 4
	ids := make([]uint32, n)
	for i := 0; i < n; i++ {
		ids[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}

	if ids[n-1] != terminator {
		return nil, xerr.New(xerr.MissingTerminator, "route is missing its terminating sentinel")
	}

	return ids, nil
}

// Encode packs route into the little-endian u32 wire format Parse
// accepts, appending the terminator sentinel as route's final step.
func Encode(route []uint32) []byte {
	buf := make([]byte, (len(route)+1)*4)
	for i, id := range route {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], id)
	}
	binary.LittleEndian.PutUint32(buf[len(route)*4:], terminator)
	return buf
}
