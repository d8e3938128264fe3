package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+79123456789", "+79123456789"},
		{"+7 (912) 345-67-89", "+79123456789"},
		{"8 912 345 67 89", "89123456789"},
		{"  +7912-345-67-89  ", "+79123456789"},
		{"phone: +79123456789", "+79123456789"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestIsValidRussianPhone(t *testing.T) {
	valid := []string{"+79123456789", "79123456789", "89123456789", "+89123456789"}
	for _, phone := range valid {
		assert.True(t, IsValidRussianPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{"", "+19123456789", "+7912345678", "+791234567890", "9123456789", "++79123456789"}
	for _, phone := range invalid {
		assert.False(t, IsValidRussianPhone(phone), "expected %q to be invalid", phone)
	}
}

func TestAuthorSubscriptionValidate(t *testing.T) {
	valid := AuthorSubscription{AuthorID: 1, Phone: "+79123456789"}
	assert.NoError(t, valid.Validate())

	missingAuthor := AuthorSubscription{Phone: "+79123456789"}
	assert.Error(t, missingAuthor.Validate())

	shortPhone := AuthorSubscription{AuthorID: 1, Phone: "+7912"}
	assert.Error(t, shortPhone.Validate())

	letters := AuthorSubscription{AuthorID: 1, Phone: "+7912345678a"}
	assert.Error(t, letters.Validate())
}
