package authentication

import (
	"Keyo/internal/caching"
	"Keyo/utils"
	"crypto/subtle"
)

const ServiceKeyHeader = "X-Service-Key"

// verifiedKeyCapacity bounds how many argon2 outcomes the verifier remembers.
const verifiedKeyCapacity = 256

//go:generate mockgen -destination=./mocks/servicekey.go -package=mocks Keyo/internal/authentication ServiceKeyVerifier
type ServiceKeyVerifier interface {
	Verify(key string) bool
}

// NewServiceKeyVerifier prefers the argon2 digest when one is configured.
// Otherwise it compares against the plain key. Digest outcomes, rejections
// included, are remembered so a retried key does not cost another argon2 run.
func NewServiceKeyVerifier(plainKey string, keyHash string) ServiceKeyVerifier {
	return &serviceKeyVerifier{
		plainKey: plainKey,
		keyHash:  keyHash,
		verified: caching.NewMemoryCache[string, bool](verifiedKeyCapacity),
	}
}

type serviceKeyVerifier struct {
	plainKey string
	keyHash  string
	verified caching.Cache[string, bool]
}

func (v *serviceKeyVerifier) Verify(key string) bool {
	if key == "" {
		return false
	}

	if v.keyHash == "" {
		if v.plainKey == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(key), []byte(v.plainKey)) == 1
	}

	cacheKey := utils.CheapHash(key)
	if valid, ok := v.verified.TryGet(cacheKey); ok {
		return valid
	}

	valid := utils.CompareHash(key, v.keyHash)
	v.verified.Put(cacheKey, valid)
	return valid
}
