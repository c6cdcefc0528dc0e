package auth

import (
	"math/rand"

	"github.com/JainishBorsaniya/transaction-wallet-app/pkg/config"
)

// initialBalance picks the opening balance for a new account according to the
// configured policy: a fixed amount, or a uniform draw from [min, max).
func (s Service) initialBalance() int64 {
	if s.cfg.InitialBalanceMode == config.BalanceModeFixed {
		if s.cfg.InitialBalanceFixedCents < 0 {
			return 0
		}
		return s.cfg.InitialBalanceFixedCents
	}
	min, max := s.cfg.InitialBalanceMinCents, s.cfg.InitialBalanceMaxCents
	if min < 0 {
		min = 0
	}
	if max <= min {
		return min
	}
	return min + rand.Int63n(max-min)
}
