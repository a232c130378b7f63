package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bellezza/internal/db"
)

func TestPaymentTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		next    string
		want    bool
	}{
		{db.SalePending, db.SalePaid, true},
		{db.SalePaid, db.SaleRefunded, true},
		{db.SalePaid, db.SalePaid, false},       // duplicate checkout.session.completed
		{db.SaleRefunded, db.SalePaid, false},   // payment webhook after refund
		{db.SaleRefunded, db.SaleRefunded, false},
		{db.SalePending, db.SaleRefunded, false}, // refund before payment ever settled
		{db.SalePaid, db.SalePending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, paymentTransitionAllowed(tc.current, tc.next),
			"%s -> %s", tc.current, tc.next)
	}
}
