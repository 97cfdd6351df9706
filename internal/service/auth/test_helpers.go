package auth

import "time"

// NewTestTokenService builds a TokenService with a fixed secret,
// lifetime and time source. Only for use from tests; the injected
// timeFunc makes expiry scenarios deterministic.
func NewTestTokenService(
	secret string,
	lifetime time.Duration,
	timeFunc func() time.Time,
) TokenService {
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      timeFunc,
		clockSkew:     0,
	}
}
