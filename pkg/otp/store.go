// Package otp issues short-lived one-time codes for phone/email
// verification. Codes are single-use and expire after five minutes; the
// backing cache evicts expired entries on its own, so the store never grows
// unbounded.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const TTL = 5 * time.Minute

type Store struct {
	codes *gocache.Cache
}

func NewStore() *Store {
	return &Store{codes: gocache.New(TTL, 10*time.Minute)}
}

// Issue generates a fresh 6-digit code for the contact (phone or email),
// replacing any previous one.
func (s *Store) Issue(contact string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	s.codes.Set(contact, code, TTL)
	return code, nil
}

// Verify checks the code and consumes it on success. A second verification
// with the same code fails.
func (s *Store) Verify(contact, code string) bool {
	v, ok := s.codes.Get(contact)
	if !ok {
		return false
	}
	if v.(string) != code {
		return false
	}
	s.codes.Delete(contact)
	return true
}
