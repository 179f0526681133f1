package services_test

import (
	"testing"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/require"
)

type cast struct {
	customer      actor.Actor
	otherCustomer actor.Actor
	courier       actor.Actor
	otherCourier  actor.Actor
	admin         actor.Actor
	anonymous     actor.Actor
}

func newCast(t *testing.T) cast {
	t.Helper()
	mk := func(role actor.Role) actor.Actor {
		a, err := actor.New(kernel.NewUUID(), role)
		require.NoError(t, err)
		return a
	}
	return cast{
		customer:      mk(actor.Customer),
		otherCustomer: mk(actor.Customer),
		courier:       mk(actor.Courier),
		otherCourier:  mk(actor.Courier),
		admin:         mk(actor.Admin),
		anonymous:     actor.Anonymous(),
	}
}

func newPackage(t *testing.T, owner actor.Actor, courier *actor.Actor) *parcel.Package {
	t.Helper()
	details, err := parcel.NewDetails("Books", 2.5, "30x20x10", "1 Pickup St", "9 Delivery Ave")
	require.NoError(t, err)
	p, err := parcel.NewPackage(owner.ID(), details, time.Now().UTC())
	require.NoError(t, err)
	if courier != nil {
		_, err = p.AssignCourier(kernel.NewUUID(), courier.ID(), time.Now().UTC())
		require.NoError(t, err)
	}
	return p
}
