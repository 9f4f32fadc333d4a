package models

// Field names follow the JSON documents the web client kept on the file
// host, so existing user files stay readable.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`

	Points         int `json:"points"`
	WinningChances int `json:"winningChances"`

	// PeopleReferKey is the referral key this user hands out.
	// ReferredBy holds the id of the user whose key was used at signup.
	PeopleReferKey string `json:"peopleReferKey,omitempty"`
	ReferredBy     string `json:"referredBy,omitempty"`
	ReferralPaid   bool   `json:"referralPaid,omitempty"`
}

const (
	// InitialPoints is granted to every new account at registration.
	InitialPoints = 5

	// DefaultWinningChances biases the "prefer good card" draws in Blackjack.
	DefaultWinningChances = 45

	// ReferralBonusPoints is paid to the referrer the first time a referred
	// user's balance reaches ReferralThresholdPoints.
	ReferralBonusPoints     = 5
	ReferralThresholdPoints = 100
)

type ReferredUser struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
	Paid     bool   `json:"paid"`
}

type ReferralStats struct {
	TotalReferrals   int            `json:"total_referrals"`
	PaidReferrals    int            `json:"paid_referrals"`
	PendingReferrals int            `json:"pending_referrals"`
	ReferredUsers    []ReferredUser `json:"referred_users"`
}
