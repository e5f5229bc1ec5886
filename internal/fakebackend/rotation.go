package fakebackend

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"time"
)

// slotKey names the rotation window containing t.
func slotKey(t time.Time, interval time.Duration) string {
	secs := int64(interval / time.Second)
	if secs <= 0 {
		secs = 300
	}
	return strconv.FormatInt(t.Unix()/secs, 10)
}

// wordIndex returns a deterministic index for a slot using HMAC(salt, slot) % n.
func wordIndex(slot, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(slot))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
