package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from    order.Status
		to      order.Status
		wantErr bool
	}{
		{order.Pending, order.Confirmed, false},
		{order.Pending, order.Shipped, false},
		{order.Processing, order.Cancelled, false},
		{order.Shipped, order.Delivered, false},
		{order.Shipped, order.Shipped, false},
		{order.Shipped, order.Cancelled, false},
		{order.Confirmed, order.Pending, true},
		{order.Delivered, order.Cancelled, true},
		{order.Cancelled, order.Pending, true},
		{order.Pending, order.Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, order.Unknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, order.Shipped, s)

	_, err = order.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Cancelled.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "Unknown", order.Status(42).String())
	assert.True(t, order.Delivered.IsTerminal())
	assert.False(t, order.Shipped.IsTerminal())
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := order.ParsePaymentMethod("COD")
	require.NoError(t, err)
	assert.True(t, m.IsCOD())

	_, err = order.ParsePaymentMethod("upi")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
