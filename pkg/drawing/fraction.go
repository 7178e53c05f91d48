package drawing

import (
	"fmt"
	"math"
)

// DefaultFractionPrecision is the finest denominator used for shop
// fractions; woodworking dimensions are read in sixteenths.
const DefaultFractionPrecision = 16

// ShopFraction formats a decimal inch value as a shop fraction string,
// rounded to sixteenths.
//
//	0.625 → 5/8"
//	1.75  → 1 3/4"
//	3.0   → 3"
func ShopFraction(value float64) string {
	return ShopFractionPrec(value, DefaultFractionPrecision)
}

// ShopFractionPrec formats a decimal inch value as a shop fraction with the
// given maximum denominator.
func ShopFractionPrec(value float64, precision int) string {
	if value < 0 {
		return "-" + ShopFractionPrec(-value, precision)
	}
	if precision < 1 {
		precision = 1
	}

	// Shave float residue before splitting (matches decimal rounding to
	// six places, enough for any shop measurement).
	value = math.Round(value*1e6) / 1e6

	whole := int(value)
	frac := value - float64(whole)

	// Snap to the fraction grid; half-grid values round up, the way a rule
	// is read.
	num := int(math.Round(frac * float64(precision)))
	den := precision

	switch {
	case num == 0:
		return fmt.Sprintf("%d\"", whole)
	case num == den:
		return fmt.Sprintf("%d\"", whole+1)
	}

	g := gcd(num, den)
	num, den = num/g, den/g
	if whole == 0 {
		return fmt.Sprintf("%d/%d\"", num, den)
	}
	return fmt.Sprintf("%d %d/%d\"", whole, num, den)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
