package referral

// Tier rules for the referral program, in currency units.
//
// Discount grows by 10 per active referral and caps at 30. Payout only
// starts past the third active referral: the first three buy discount, the
// rest pay out flat.
const (
	discountPerReferral = 10.0
	discountCap         = 30.0

	payoutPerReferral = 10.0
	payoutFreeTier    = 3
)

func Discount(activeCount int) float64 {
	d := float64(activeCount) * discountPerReferral
	if d > discountCap {
		return discountCap
	}
	return d
}

func Payout(activeCount int) float64 {
	eligible := activeCount - payoutFreeTier
	if eligible <= 0 {
		return 0
	}
	return float64(eligible) * payoutPerReferral
}
