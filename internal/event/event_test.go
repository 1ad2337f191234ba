package event

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e := New(7, 42, "command:/start", "send_text", nil)

	_, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, e.UpdateID)
	assert.Equal(t, int64(42), e.ChatID)
	assert.Empty(t, e.Error)
	assert.False(t, e.HandledAt.IsZero())

	other := New(7, 42, "command:/start", "send_text", errors.New("boom"))
	assert.NotEqual(t, e.ID, other.ID)
	assert.Equal(t, "boom", other.Error)
}

func TestMulti(t *testing.T) {
	var got []string
	m := Multi{
		SinkFunc(func(e Event) { got = append(got, "a:"+e.Trigger) }),
		nil,
		SinkFunc(func(e Event) { got = append(got, "b:"+e.Trigger) }),
	}

	m.Observe(Event{Trigger: "photo"})
	assert.Equal(t, []string{"a:photo", "b:photo"}, got)
}
