package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher is the pluggable credential hashing contract. Hash produces a
// self-describing record that Verify can later check a candidate password
// against. Verify must fail closed: a malformed record is simply a mismatch.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

const (
	saltLength = 16 // bytes of random salt per hash

	// Argon2id parameters (RFC 9106 second recommended option).
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonKeyLength   = 32
)

// SaltedSHA256 hashes passwords as a single SHA-256 pass over salt+password
// and stores the pair as "hex(salt):hex(digest)". This is the portal's
// historical credential format; it carries no work factor, so prefer
// Argon2id for new deployments where the stored records allow it.
type SaltedSHA256 struct{}

func (SaltedSHA256) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: salt generation failed: %w", err)
	}

	digest := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(digest[:]), nil
}

func (SaltedSHA256) Verify(password, encoded string) bool {
	saltHex, digestHex, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}

	got := sha256.Sum256(append(salt, []byte(password)...))
	return subtle.ConstantTimeCompare(got[:], want) == 1
}

// Argon2id hashes passwords with Argon2id and stores them in PHC string
// format ("$argon2id$v=19$m=...,t=...,p=...$salt$hash").
type Argon2id struct{}

func (Argon2id) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: salt generation failed: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (Argon2id) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")

	// Expected shape: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	if len(parts) != 6 || parts[1] != "argon2id" || parts[2] != "v=19" {
		return false
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	return subtle.ConstantTimeCompare(got, want) == 1
}

// MultiScheme routes verification by sniffing the record format so a
// deployment can switch its hash scheme while old records stay verifiable.
// Hashing always uses Primary.
type MultiScheme struct {
	Primary Hasher
}

func (m MultiScheme) Hash(password string) (string, error) {
	return m.Primary.Hash(password)
}

func (m MultiScheme) Verify(password, encoded string) bool {
	if strings.HasPrefix(encoded, "$argon2id$") {
		return Argon2id{}.Verify(password, encoded)
	}
	return SaltedSHA256{}.Verify(password, encoded)
}
