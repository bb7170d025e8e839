package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMethod(t *testing.T) {
	cases := map[string]string{
		"cash":           MethodCash,
		" CARD ":         MethodCard,
		"Upi":            MethodUPI,
		"bank_transfer":  MethodBankTransfer,
		"OTHER":          MethodOther,
		"cheque":         MethodOther,
		"":               MethodOther,
		"CRYPTOCURRENCY": MethodOther,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeMethod(input), "input %q", input)
	}
}
