package ids

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

// New returns an opaque record id: the current unix millisecond timestamp in
// base36 followed by a base36-encoded random suffix. Existing records in the
// wild carry ids of this shape, so the format is load-bearing.
func New() string {
	ms := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// clock so id generation cannot take the process down.
		return ms + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	n := binary.BigEndian.Uint64(buf[:])
	return ms + strconv.FormatUint(n, 36)
}
