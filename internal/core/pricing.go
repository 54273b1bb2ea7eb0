package core

import (
	"fmt"
	"math/big"
)

// FinalPriceCents computes a seat's final price from a show's base
// price and the seat type's percentage premium:
//
//	base * (1 + premium/100)
//
// rounded to the cent using round-half-even.  The computation is done
// on exact rationals so that a scheduling preview and the booking
// confirmation agree bit-for-bit.  It fails with ErrValidation when
// the base price is negative or the premium is below -100 (a premium
// cannot make a price negative).  Pure function: no state, no side
// effects.
func FinalPriceCents(baseCents int64, premiumPercent float64) (int64, error) {
	if baseCents < 0 {
		return 0, fmt.Errorf("%w: base price must not be negative", ErrValidation)
	}
	if premiumPercent < -100 {
		return 0, fmt.Errorf("%w: premium must not be below -100", ErrValidation)
	}
	premium := new(big.Rat).SetFloat64(premiumPercent)
	if premium == nil {
		return 0, fmt.Errorf("%w: premium is not a finite number", ErrValidation)
	}
	// factor = 1 + premium/100
	factor := new(big.Rat).Add(
		big.NewRat(1, 1),
		premium.Quo(premium, big.NewRat(100, 1)),
	)
	total := new(big.Rat).Mul(new(big.Rat).SetInt64(baseCents), factor)
	return roundHalfEven(total), nil
}

// roundHalfEven rounds a non-negative rational to the nearest integer,
// breaking exact ties towards the even neighbour (banker's rounding).
func roundHalfEven(r *big.Rat) int64 {
	quo, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	twice := new(big.Int).Lsh(rem, 1) // 2*remainder
	switch twice.CmpAbs(r.Denom()) {
	case 1:
		quo.Add(quo, big.NewInt(1))
	case 0:
		if quo.Bit(0) == 1 { // odd -> round up to even
			quo.Add(quo, big.NewInt(1))
		}
	}
	return quo.Int64()
}
