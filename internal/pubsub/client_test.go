package pubsub_test

import (
	"context"
	"testing"

	"github.com/mauv0809/court-draw/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestProcessMessage_DecodesEvent(t *testing.T) {
	event := pubsub.BracketChanged{BracketID: "b1", GameType: "SINGLES", Version: 3, Round: 1, Champion: "ann"}
	data, err := msgpack.Marshal(event)
	require.NoError(t, err)

	var got pubsub.BracketChanged
	require.NoError(t, pubsub.NewNoop().ProcessMessage(data, &got))
	assert.Equal(t, event, got)
}

func TestProcessMessage_RejectsGarbage(t *testing.T) {
	var got pubsub.ScheduleGenerated
	err := pubsub.NewNoop().ProcessMessage([]byte{0xc1}, &got)
	assert.Error(t, err)
}

func TestNoop_SendMessage(t *testing.T) {
	c := pubsub.NewNoop()
	defer c.Close()

	err := c.SendMessage(context.Background(), pubsub.EventScheduleGenerated, pubsub.ScheduleGenerated{ScheduleID: "s1"})
	assert.NoError(t, err)

	err = c.SendMessage(context.Background(), pubsub.EventScheduleGenerated, make(chan int))
	assert.Error(t, err)
}
