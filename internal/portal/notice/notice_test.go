package notice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostAndDismiss(t *testing.T) {
	c := NewCenter()

	errID := c.Error("something broke")
	warnID := c.Warn("heads up")

	active := c.Active()
	require.Len(t, active, 2)
	require.Equal(t, SeverityError, active[0].Severity)
	require.False(t, active[0].Transient)
	require.Equal(t, SeverityWarn, active[1].Severity)
	require.True(t, active[1].Transient)

	c.Dismiss(errID)
	active = c.Active()
	require.Len(t, active, 1)
	require.Equal(t, warnID, active[0].ID)

	c.Dismiss("no-such-id") // no-op
	require.Len(t, c.Active(), 1)
}

func TestSubscribe(t *testing.T) {
	c := NewCenter()

	var seen []Notice
	unsubscribe := c.Subscribe(func(n Notice) { seen = append(seen, n) })

	c.Error("first")
	require.Len(t, seen, 1)
	require.Equal(t, "first", seen[0].Text)

	unsubscribe()
	c.Error("second")
	require.Len(t, seen, 1, "unsubscribed callbacks must not fire")
}
