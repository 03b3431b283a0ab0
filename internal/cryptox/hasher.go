// Package cryptox implements one-way, self-salting password hashing.
//
// Two algorithms are available: bcrypt (the default, compatible with hashes
// produced by Python's bcrypt module) and argon2id. Hashes carry their own
// algorithm prefix and parameters, so Verify accepts hashes produced by either
// driver regardless of which one is configured for new hashes.
//
// Neither encoding contains a comma, which keeps hashes safe to store in the
// comma-delimited users file.
package cryptox

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Algorithm names accepted by NewHasher.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// PasswordHasher hashes and verifies secrets.
//
// Hash fails with common.ErrHashing on empty input or encoder failure.
// Verify returns (false, nil) on mismatch and fails with common.ErrHashing
// only when the stored hash is malformed.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) (bool, error)
}

// Hasher produces new hashes with one configured driver and verifies hashes
// from any known driver.
type Hasher struct {
	primary driver
	bcrypt  *BcryptHasher
	argon2  *Argon2idHasher
}

type driver interface {
	PasswordHasher
	matches(hash string) bool
}

// NewHasher returns a Hasher that creates hashes with algorithm.
// bcryptCost is used for bcrypt hashes; zero selects DefaultBcryptCost.
func NewHasher(algorithm string, bcryptCost int) (*Hasher, error) {
	if bcryptCost == 0 {
		bcryptCost = DefaultBcryptCost
	}
	bh, err := NewBcryptHasher(bcryptCost)
	if err != nil {
		return nil, err
	}
	ah := NewArgon2idHasher(DefaultArgon2Params())

	h := &Hasher{bcrypt: bh, argon2: ah}

	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		h.primary = bh
	case AlgorithmArgon2id:
		h.primary = ah
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
	return h, nil
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	return h.primary.Hash(plaintext)
}

func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	for _, d := range []driver{h.bcrypt, h.argon2} {
		if d.matches(hash) {
			return d.Verify(plaintext, hash)
		}
	}
	return false, fmt.Errorf("%w: unrecognised hash format", common.ErrHashing)
}
