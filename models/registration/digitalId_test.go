package registration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpiryFromIssue(t *testing.T) {
	cases := []struct {
		name   string
		issue  time.Time
		expiry time.Time
	}{
		{
			name:   "plain date",
			issue:  time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
			expiry: time.Date(2027, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name:   "year boundary",
			issue:  time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
			expiry: time.Date(2027, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:   "leap day clamps to Feb 28",
			issue:  time.Date(2028, time.February, 29, 9, 0, 0, 0, time.UTC),
			expiry: time.Date(2029, time.February, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name:   "Feb 28 stays Feb 28",
			issue:  time.Date(2026, time.February, 28, 9, 0, 0, 0, time.UTC),
			expiry: time.Date(2027, time.February, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expiry, ExpiryFromIssue(tc.issue))
		})
	}
}

func TestRequiredSlots(t *testing.T) {
	employee := RequiredSlots(TypeEmployee)
	assert.ElementsMatch(t, []string{SlotIDCard, SlotPersonalPhoto, SlotInsuranceDoc}, employee)

	company := RequiredSlots(TypeCompany)
	assert.ElementsMatch(t, []string{SlotCommercialRecord, SlotTaxCard, SlotAuthorizationLetter}, company)
}

func TestKnownSlot(t *testing.T) {
	assert.True(t, KnownSlot(TypeEmployee, SlotIDCard))
	assert.False(t, KnownSlot(TypeEmployee, SlotCommercialRecord))
	assert.True(t, KnownSlot(TypeCompany, SlotTaxCard))
	assert.False(t, KnownSlot(TypeCompany, "passport"))
}
