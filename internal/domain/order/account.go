package order

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountRole represents the role held by an account in the user directory
type AccountRole string

const (
	AccountRoleCustomer  AccountRole = "customer"
	AccountRoleAffiliate AccountRole = "affiliate"
	AccountRoleAdmin     AccountRole = "admin"
)

// Account is the slice of the user directory this system needs: who can earn
// commissions. Account management itself lives elsewhere.
type Account struct {
	ID    int64 `gorm:"primaryKey"`
	Email string
	Role  AccountRole
}

// CanEarnCommission returns true for roles that participate in the affiliate program
func (a *Account) CanEarnCommission() bool {
	return a.Role == AccountRoleAffiliate || a.Role == AccountRoleAdmin
}

// AffiliateCode returns the account's referral code, or "" for accounts that
// cannot earn commissions
func (a *Account) AffiliateCode() string {
	if !a.CanEarnCommission() {
		return ""
	}
	return fmt.Sprintf("AFF-%06d", a.ID)
}

const affiliateCodePrefix = "AFF-"

// ParseAffiliateCode extracts the account ID from a code of the form
// AFF-<zero-padded id>. Returns false for anything that does not match.
func ParseAffiliateCode(code string) (int64, bool) {
	if !strings.HasPrefix(code, affiliateCodePrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(code, affiliateCodePrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
