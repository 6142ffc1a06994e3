package server

import (
	"strconv"
	"testing"
)

func TestNewRoomCodeSkipsTakenCodes(t *testing.T) {
	store := NewRoomStore(nil)
	for i := 0; i < 10; i++ {
		if i == 7 {
			continue
		}
		if err := store.Create(&Room{Code: strconv.Itoa(i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	code, err := newRoomCode(store, 1)
	if err != nil {
		t.Fatalf("newRoomCode: %v", err)
	}
	if code != "7" {
		t.Fatalf("expected the only free code 7, got %q", code)
	}
}

func TestRandomDigits(t *testing.T) {
	for _, length := range []int{1, 4, 10} {
		code := randomDigits(length)
		if len(code) != length {
			t.Fatalf("expected %d digits, got %q", length, code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
	}
}
