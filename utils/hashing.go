package utils

import (
	"crypto/sha256"
	"fmt"

	"github.com/go-crypt/crypt"
	"github.com/go-crypt/crypt/algorithm"
	"github.com/go-crypt/crypt/algorithm/argon2"
)

// CompareHash checks a secret against an encoded crypt digest. Malformed digests never match.
func CompareHash(secret string, hashedSecret string) bool {
	valid, err := crypt.CheckPassword(secret, hashedSecret)
	if err != nil {
		return false
	}

	return valid
}

func HashSecret(secret string) string {
	var (
		hasher *argon2.Hasher
		err    error
		digest algorithm.Digest
	)

	if hasher, err = argon2.New(
		argon2.WithProfileRFC9106LowMemory(),
	); err != nil {
		panic(err)
	}

	if digest, err = hasher.Hash(secret); err != nil {
		panic(err)
	}

	return digest.Encode()
}

func CheapHash(input string) string {
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash)
}
