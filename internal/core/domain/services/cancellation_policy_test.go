package services_test

import (
	"testing"
	"time"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderInStatus(t *testing.T, target order.Status, placedAt time.Time) *order.Order {
	t.Helper()

	item, err := order.NewLineItem(kernel.NewUUID(), 1, 1000)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.LineItem{item}, 0, placedAt)
	require.NoError(t, err)

	at := placedAt
	advance := func(to order.Status, actor order.Actor) {
		at = at.Add(time.Minute)
		require.NoError(t, o.ChangeStatus(to, "", actor, at))
	}

	switch target {
	case order.New:
	case order.Confirmed:
		advance(order.Confirmed, order.ActorAdmin)
	case order.Preparing:
		advance(order.Confirmed, order.ActorAdmin)
		advance(order.Preparing, order.ActorAdmin)
	case order.Shipping:
		advance(order.Confirmed, order.ActorAdmin)
		advance(order.Preparing, order.ActorAdmin)
		advance(order.Shipping, order.ActorAdmin)
	case order.Completed:
		advance(order.Confirmed, order.ActorAdmin)
		advance(order.Preparing, order.ActorAdmin)
		advance(order.Shipping, order.ActorAdmin)
		advance(order.Completed, order.ActorAdmin)
	case order.Cancelled:
		advance(order.Cancelled, order.ActorCustomer)
	case order.CancelRequested:
		require.NoError(t, o.RequestCancellation(o.CustomerID(), "", placedAt.Add(time.Minute)))
	default:
		t.Fatalf("cannot build order in status %s", target)
	}

	return o
}

func TestCancellationPolicy_Route(t *testing.T) {
	placedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	policy := services.NewCancellationPolicy()

	t.Run("should cancel directly while the grace window is open", func(t *testing.T) {
		for _, status := range []order.Status{order.New, order.Confirmed} {
			o := orderInStatus(t, status, placedAt)

			route, err := policy.Route(o, o.CancelDeadline().Add(-time.Minute))

			require.NoError(t, err, "status %s", status)
			assert.Equal(t, services.CancelRouteDirect, route, "status %s", status)
		}
	})

	t.Run("should still cancel directly exactly at the deadline", func(t *testing.T) {
		o := orderInStatus(t, order.New, placedAt)

		route, err := policy.Route(o, o.CancelDeadline())

		require.NoError(t, err)
		assert.Equal(t, services.CancelRouteDirect, route)
	})

	t.Run("should route to review one instant past the deadline", func(t *testing.T) {
		for _, status := range []order.Status{order.New, order.Confirmed} {
			o := orderInStatus(t, status, placedAt)

			route, err := policy.Route(o, o.CancelDeadline().Add(time.Second))

			require.NoError(t, err, "status %s", status)
			assert.Equal(t, services.CancelRouteReview, route, "status %s", status)
		}
	})

	t.Run("should route to review once preparation started regardless of the window", func(t *testing.T) {
		o := orderInStatus(t, order.Preparing, placedAt)

		route, err := policy.Route(o, placedAt.Add(5*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, services.CancelRouteReview, route)
	})

	t.Run("should use the deadline restarted by confirmation", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), 1, 1000)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]order.LineItem{item}, 0, placedAt)
		require.NoError(t, err)

		confirmedAt := placedAt.Add(25 * time.Minute)
		require.NoError(t, o.ChangeStatus(order.Confirmed, "", order.ActorAdmin, confirmedAt))

		// 40 min after placement would be past the original window,
		// but confirmation restarted it
		route, err := policy.Route(o, placedAt.Add(40*time.Minute))

		require.NoError(t, err)
		assert.Equal(t, services.CancelRouteDirect, route)
	})

	t.Run("should refuse while shipping", func(t *testing.T) {
		o := orderInStatus(t, order.Shipping, placedAt)

		route, err := policy.Route(o, placedAt.Add(5*time.Minute))

		require.ErrorIs(t, err, services.ErrCannotCancelAtThisStage)
		assert.Equal(t, services.CancelRouteUnknown, route)
	})

	t.Run("should refuse while a request is already pending", func(t *testing.T) {
		o := orderInStatus(t, order.CancelRequested, placedAt)

		route, err := policy.Route(o, placedAt.Add(5*time.Minute))

		require.ErrorIs(t, err, services.ErrCannotCancelAtThisStage)
		assert.Equal(t, services.CancelRouteUnknown, route)
	})

	t.Run("should refuse terminal orders", func(t *testing.T) {
		for _, status := range []order.Status{order.Completed, order.Cancelled} {
			o := orderInStatus(t, status, placedAt)

			route, err := policy.Route(o, placedAt.Add(5*time.Minute))

			require.ErrorIs(t, err, services.ErrAlreadyTerminal, "status %s", status)
			assert.Equal(t, services.CancelRouteUnknown, route, "status %s", status)
		}
	})

	t.Run("should reject unconstructed order", func(t *testing.T) {
		var o order.Order

		route, err := policy.Route(&o, placedAt)

		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
		assert.Equal(t, services.CancelRouteUnknown, route)
	})
}
