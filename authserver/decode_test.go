package authserver

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		req, err := decodeRequest(url.Values{
			"socket_id":    {"123.456"},
			"channel_name": {"private-box"},
		})
		require.NoError(t, err)
		assert.Equal(t, "123.456", req.SocketId)
		assert.Equal(t, "private-box", req.ChannelName)
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		req, err := decodeRequest(url.Values{
			"SOCKET_ID":    {"123.456"},
			"Channel_Name": {"private-box"},
		})
		require.NoError(t, err)
		assert.Equal(t, "123.456", req.SocketId)
		assert.Equal(t, "private-box", req.ChannelName)
	})

	t.Run("FirstValueWins", func(t *testing.T) {
		req, err := decodeRequest(url.Values{
			"socket_id":    {"1.1", "2.2"},
			"channel_name": {"private-box"},
		})
		require.NoError(t, err)
		assert.Equal(t, "1.1", req.SocketId)
	})

	t.Run("ExtraParamsIgnored", func(t *testing.T) {
		req, err := decodeRequest(url.Values{
			"socket_id":    {"123.456"},
			"channel_name": {"private-box"},
			"callback":     {"cb"},
		})
		require.NoError(t, err)
		assert.Equal(t, "123.456", req.SocketId)
	})

	t.Run("Empty", func(t *testing.T) {
		req, err := decodeRequest(url.Values{})
		require.NoError(t, err)
		assert.Empty(t, req.SocketId)
		assert.Empty(t, req.ChannelName)
	})
}
