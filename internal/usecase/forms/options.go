package forms

import "time"

type Option func(*UseCase)

// TTL sets how long an untouched form stays open.
func TTL(ttl time.Duration) Option {
	return func(uc *UseCase) {
		if ttl > 0 {
			uc.ttl = ttl
		}
	}
}
