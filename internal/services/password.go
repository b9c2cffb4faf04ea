package services

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePrefix = "prefix"
	SchemeBcrypt = "bcrypt"
)

// PasswordHasher turns a plaintext password into its stored form and checks candidates against it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// PrefixHasher reproduces the legacy scheme: the stored form is "hashed_" + plain.
// It is reversible and unsalted. Existing rows depend on it; new deployments should use bcrypt.
type PrefixHasher struct{}

const legacyPrefix = "hashed_"

func (PrefixHasher) Hash(plain string) (string, error) { return legacyPrefix + plain, nil }

func (PrefixHasher) Verify(plain, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(legacyPrefix+plain), []byte(stored)) == 1
}

type BcryptHasher struct{ Cost int }

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

func NewPasswordHasher(scheme string) (PasswordHasher, error) {
	switch scheme {
	case SchemePrefix, "":
		return PrefixHasher{}, nil
	case SchemeBcrypt:
		return BcryptHasher{Cost: bcrypt.DefaultCost}, nil
	}
	return nil, fmt.Errorf("unknown password scheme %q", scheme)
}
