package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPlaced,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivery,
		OrderStatusDelivered,
		OrderStatusCompleted,
		OrderStatusCancelled,
	} {
		assert.True(t, s.Valid(), "status %s should be valid", s)
	}

	assert.False(t, OrderStatus("shipped").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())

	assert.False(t, OrderStatusPlaced.IsTerminal())
	assert.False(t, OrderStatusDelivered.IsTerminal())

	//未知のステータスはterminal扱いにしない
	assert.False(t, OrderStatus("unknown").IsTerminal())
}

func TestOrderStatus_CanTransitionTo_Forward(t *testing.T) {
	//前進は1段ずつ
	assert.True(t, OrderStatusPlaced.CanTransitionTo(OrderStatusPreparing))
	assert.True(t, OrderStatusPreparing.CanTransitionTo(OrderStatusReady))
	assert.True(t, OrderStatusReady.CanTransitionTo(OrderStatusDelivery))
	assert.True(t, OrderStatusDelivery.CanTransitionTo(OrderStatusDelivered))
	assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusCompleted))

	//飛ばしは不可
	assert.False(t, OrderStatusPlaced.CanTransitionTo(OrderStatusReady))
	assert.False(t, OrderStatusPlaced.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusPreparing.CanTransitionTo(OrderStatusDelivered))

	//逆行も不可
	assert.False(t, OrderStatusReady.CanTransitionTo(OrderStatusPreparing))
	assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPlaced))
}

func TestOrderStatus_CanTransitionTo_Cancel(t *testing.T) {
	//非終端からはいつでもキャンセルできる
	for _, s := range []OrderStatus{
		OrderStatusPlaced,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivery,
		OrderStatusDelivered,
	} {
		assert.True(t, s.CanTransitionTo(OrderStatusCancelled), "cancel from %s", s)
	}
}

func TestOrderStatus_Terminal_NoExit(t *testing.T) {
	//completed/cancelledからはどこへも行けない（二重completedも不可）
	for _, to := range []OrderStatus{
		OrderStatusPlaced,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusDelivery,
		OrderStatusDelivered,
		OrderStatusCompleted,
		OrderStatusCancelled,
	} {
		assert.False(t, OrderStatusCompleted.CanTransitionTo(to), "completed -> %s", to)
		assert.False(t, OrderStatusCancelled.CanTransitionTo(to), "cancelled -> %s", to)
	}
}
