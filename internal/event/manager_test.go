package event

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestEmitEventInvokesListeners(t *testing.T) {
	var got []interface{}
	AddEventListener(ListingCreatedEvent, func(msg interface{}) {
		got = append(got, msg)
	})

	EmitEvent(ListingCreatedEvent, "one")
	EmitEvent(ListingSoldEvent, "ignored")
	EmitEvent(ListingCreatedEvent, "two")

	require.Equal(t, []interface{}{"one", "two"}, got)
}
