package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const argon2Prefix = "$argon2id$"

// Limits on parameters read back from a stored hash. Verify allocates
// m KiB and runs t passes, so an edited hash must not pick them freely.
const (
	maxArgon2Memory  = 1 << 22 // KiB
	maxArgon2Time    = 16
	minArgon2SaltLen = 8
	maxArgon2SaltLen = 64
	minArgon2KeyLen  = 4
	maxArgon2KeyLen  = 64
)

// Argon2Params are the argon2id cost parameters. They are written into
// every hash, so changing them only affects new hashes.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}
}

// Argon2idHasher hashes with argon2id. Output format:
//
//	$argon2id$v=19$m=65536$t=1$p=4$<salt>$<key>
//
// with salt and key in unpadded standard base64. The parameters are separated
// by '$' rather than the PHC ',' so the hash never contains a comma.
type Argon2idHasher struct {
	params Argon2Params
}

func NewArgon2idHasher(p Argon2Params) *Argon2idHasher {
	return &Argon2idHasher{params: p}
}

func (h *Argon2idHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrHashing)
	}
	salt := common.GenerateRandByteArray(int(h.params.SaltLen))
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("%sv=%d$m=%d$t=%d$p=%d$%s$%s",
		argon2Prefix, argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

func (h *Argon2idHasher) Verify(plaintext, hash string) (bool, error) {
	p, salt, key, err := decodeArgon2(hash)
	if err != nil {
		return false, err
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func (h *Argon2idHasher) matches(hash string) bool {
	return strings.HasPrefix(hash, argon2Prefix)
}

func decodeArgon2(hash string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	malformed := func(what string) error {
		return fmt.Errorf("%w: malformed argon2id hash: %s", common.ErrHashing, what)
	}

	if !strings.HasPrefix(hash, argon2Prefix) {
		return p, nil, nil, malformed("prefix")
	}
	// v=19, m=, t=, p=, salt, key
	parts := strings.Split(strings.TrimPrefix(hash, argon2Prefix), "$")
	if len(parts) != 6 {
		return p, nil, nil, malformed("field count")
	}

	version, err := intField(parts[0], "v", 32)
	if err != nil || version != argon2.Version {
		return p, nil, nil, malformed("version")
	}
	memory, err := intField(parts[1], "m", 32)
	if err != nil || memory == 0 || memory > maxArgon2Memory {
		return p, nil, nil, malformed("memory")
	}
	iterations, err := intField(parts[2], "t", 32)
	if err != nil || iterations == 0 || iterations > maxArgon2Time {
		return p, nil, nil, malformed("time")
	}
	threads, err := intField(parts[3], "p", 8)
	if err != nil || threads == 0 {
		return p, nil, nil, malformed("threads")
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[4])
	if err != nil || len(salt) < minArgon2SaltLen || len(salt) > maxArgon2SaltLen {
		return p, nil, nil, malformed("salt")
	}
	key, err := enc.DecodeString(parts[5])
	if err != nil || len(key) < minArgon2KeyLen || len(key) > maxArgon2KeyLen {
		return p, nil, nil, malformed("key")
	}

	p = Argon2Params{
		Time:    uint32(iterations),
		Memory:  uint32(memory),
		Threads: uint8(threads),
		KeyLen:  uint32(len(key)),
		SaltLen: uint32(len(salt)),
	}
	return p, salt, key, nil
}

func intField(s, name string, bits int) (uint64, error) {
	v, ok := strings.CutPrefix(s, name+"=")
	if !ok {
		return 0, fmt.Errorf("missing %s", name)
	}
	return strconv.ParseUint(v, 10, bits)
}
