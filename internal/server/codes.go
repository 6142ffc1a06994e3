package server

import (
	"crypto/rand"
	"fmt"
	"time"
)

// newRoomCode picks a random digit code not already used by a room,
// retrying on collision. Two concurrent calls can both see the same code as
// free; the later Create then overwrites the earlier room. The original
// behaved the same way and the race is kept as-is.
func newRoomCode(store *RoomStore, length int) (string, error) {
	for {
		code := randomDigits(length)
		exists, err := store.Exists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

func randomDigits(length int) string {
	const digits = "0123456789"
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%0*d", length, time.Now().UnixNano()%pow10(length))
	}
	for i := range buf {
		buf[i] = digits[int(buf[i])%len(digits)]
	}
	return string(buf)
}

func pow10(n int) int64 {
	value := int64(1)
	for i := 0; i < n; i++ {
		value *= 10
	}
	return value
}
