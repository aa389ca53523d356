package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackServerCapturesToken(t *testing.T) {
	cs, err := ListenForCallback("127.0.0.1:0")
	require.NoError(t, err)
	defer cs.Close()

	resp, err := http.Get(cs.URL())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(cs.URL() + "?token=custom-abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	tok, err := cs.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "custom-abc", tok)
}

func TestCallbackServerWaitTimesOut(t *testing.T) {
	cs, err := ListenForCallback("127.0.0.1:0")
	require.NoError(t, err)
	defer cs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = cs.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
