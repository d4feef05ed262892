package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccount_AffiliateCode(t *testing.T) {
	tests := []struct {
		name string
		acct Account
		want string
	}{
		{"affiliate gets zero-padded code", Account{ID: 42, Role: AccountRoleAffiliate}, "AFF-000042"},
		{"admin gets code", Account{ID: 7, Role: AccountRoleAdmin}, "AFF-000007"},
		{"large id is not truncated", Account{ID: 1234567, Role: AccountRoleAffiliate}, "AFF-1234567"},
		{"customer has no code", Account{ID: 42, Role: AccountRoleCustomer}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.acct.AffiliateCode())
		})
	}
}

func TestParseAffiliateCode(t *testing.T) {
	tests := []struct {
		code   string
		wantID int64
		wantOK bool
	}{
		{"AFF-000042", 42, true},
		{"AFF-1234567", 1234567, true},
		{"AFF-000000", 0, false},
		{"AFF-", 0, false},
		{"AFF-abc", 0, false},
		{"REF-000042", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			id, ok := ParseAffiliateCode(tt.code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestParseAffiliateCode_RoundTrip(t *testing.T) {
	acct := Account{ID: 42, Role: AccountRoleAffiliate}
	id, ok := ParseAffiliateCode(acct.AffiliateCode())
	assert.True(t, ok)
	assert.Equal(t, acct.ID, id)
}
