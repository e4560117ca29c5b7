package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SignInToken is a pending one-time sign-in grant, keyed in the cache by the
// sha256 hash of the raw token so the raw value never sits in memory longer
// than the mail send.
type SignInToken struct {
	UserId uuid.UUID
	Email  string
}

type SignInTokenRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSignInTokenRepository(ttl time.Duration) *SignInTokenRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SignInTokenRepository{
		cache: c,
		ttl:   ttl,
	}
}

func (r *SignInTokenRepository) Save(tokenHash string, token *SignInToken) {
	r.cache.Set(tokenHash, token, cache.DefaultExpiration)
}

// Consume returns and deletes the token in one step; a sign-in link is valid
// exactly once.
func (r *SignInTokenRepository) Consume(tokenHash string) (*SignInToken, bool) {
	x, found := r.cache.Get(tokenHash)
	if !found {
		return nil, false
	}
	r.cache.Delete(tokenHash)
	return x.(*SignInToken), true
}

func (r *SignInTokenRepository) TTL() time.Duration {
	return r.ttl
}
