package inventory

import (
	"math"
	"time"

	"preben-prepper/domain"
)

const day = 24 * time.Hour

// DaysUntilExpiration rounds the remaining time up to whole days, so anything
// later today counts as 1 and anything already past is <= 0.
func DaysUntilExpiration(expirationDate, now time.Time) int {
	return int(math.Ceil(float64(expirationDate.Sub(now)) / float64(day)))
}

// Classify buckets an expiration date relative to now. A missing date is
// Fresh; callers building "expiring" lists must skip undated items themselves.
func Classify(expirationDate *time.Time, now time.Time) domain.ExpirationStatus {
	if expirationDate == nil {
		return domain.StatusFresh
	}
	if expirationDate.Before(now) {
		return domain.StatusExpired
	}
	if DaysUntilExpiration(*expirationDate, now) <= domain.ExpiringSoonDays {
		return domain.StatusExpiringSoon
	}
	return domain.StatusFresh
}
