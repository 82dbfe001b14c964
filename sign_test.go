package pusher

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 本文件的既定值基于固定的输入独立计算得到，不来自实现本身：
// key=KEY secret=SECRET app_id=APPID channel=test_channel event=my_event
// data="Hello, World!" timestamp=1000000000 。

const (
	_timestamp = int64(1000000000)

	_goldenBodyMd5   = "7959b2c4af2fd6d142ba32babd30ceb7"
	_goldenSignature = "b9307149063dba6f7bd8531b3953ff955152fcc9e38bddbca720106909208d08"
	_goldenQuery     = "auth_key=KEY&auth_timestamp=1000000000&auth_version=1.0" +
		"&body_md5=" + _goldenBodyMd5 + "&name=my_event"
	_goldenUrl = "http://api.pusherapp.com:80/apps/APPID/channels/test_channel/events" +
		"?" + _goldenQuery + "&auth_signature=" + _goldenSignature
)

func newTestClient(t *testing.T) *Client {
	c, err := NewClient(Config{
		AppId:   "APPID",
		AuthKey: "KEY",
		Secret:  "SECRET",
		Channel: "test_channel",
	})
	require.NoError(t, err)
	return c
}

func TestHmacSha256(t *testing.T) {
	// 独立计算的 HMAC-SHA256("SECRET", "1234.1234:private-foo") 。
	res := HmacSha256([]byte("SECRET"), []byte("1234.1234:private-foo"))
	assert.Equal(t, "795de7b6a6446437fb5aae1b57b68518d41e97a5d3c9a8de2e7fabc78b7cbfdf", res)
}

func TestClient_SignTrigger(t *testing.T) {
	c := newTestClient(t)

	t.Run("Golden", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{Event: "my_event", Data: "Hello, World!"}, _timestamp)
		require.NoError(t, err)

		assert.Equal(t, "POST", signed.Method)
		assert.Equal(t, ContentTypeJson, signed.ContentType)
		assert.Equal(t, `"Hello, World!"`, string(signed.Body))
		assert.Equal(t, _goldenUrl, signed.Url)
	})

	t.Run("WithSocketId", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{
			Event:    "my_event",
			Data:     "Hello, World!",
			SocketId: "9876.54321",
		}, _timestamp)
		require.NoError(t, err)

		assert.Contains(t, signed.Url, "&socket_id=9876.54321&")
		assert.True(t, strings.HasSuffix(signed.Url,
			"&auth_signature=8e969e204ea8e1b5917287fe4e208c517a5f1ff64bd896286ebc825af2d0caa3"))
	})

	t.Run("ObjectData", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{
			Event: "my_event",
			Data:  map[string]string{"message": "hello"},
		}, _timestamp)
		require.NoError(t, err)

		assert.Equal(t, `{"message":"hello"}`, string(signed.Body))
		assert.Contains(t, signed.Url, "body_md5=e4f7cd14d5e98359c70afff71d6cc93b")
		assert.True(t, strings.HasSuffix(signed.Url,
			"&auth_signature=5420fc33c26b991680f197aa6977ad88453f8586047659cc91ae1c394bc02dc5"))
	})

	t.Run("EscapedEventName", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{Event: "my event", Data: "Hello, World!"}, _timestamp)
		require.NoError(t, err)

		assert.Contains(t, signed.Url, "&name=my+event")
		assert.True(t, strings.HasSuffix(signed.Url,
			"&auth_signature=32b979956b4ff4ebe4fb28da0cd98aaf6f6dad0f8df4c7e193fd78239d8de791"))
	})

	t.Run("ExtraParams", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{
			Event:  "my_event",
			Data:   "Hello, World!",
			Params: map[string]string{"info": "user_count"},
		}, _timestamp)
		require.NoError(t, err)

		// 额外参数按字节顺序插入 query ，并参与签名。
		assert.Contains(t, signed.Url, "&info=user_count&name=my_event")
		assert.True(t, strings.HasSuffix(signed.Url,
			"&auth_signature=adb82005aeb0c4054ce6d73009ae18cbec609ba297fc3680bf913052b9831c5a"))
	})

	t.Run("ReservedParamIgnored", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{
			Event:  "my_event",
			Data:   "Hello, World!",
			Params: map[string]string{"auth_key": "EVIL", "auth_signature": "EVIL"},
		}, _timestamp)
		require.NoError(t, err)
		assert.Equal(t, _goldenUrl, signed.Url)
	})

	t.Run("ChannelOverride", func(t *testing.T) {
		signed, err := c.SignTrigger(TriggerRequest{
			Event:   "my_event",
			Data:    "Hello, World!",
			Channel: "another_channel",
		}, _timestamp)
		require.NoError(t, err)
		assert.Contains(t, signed.Url, "/apps/APPID/channels/another_channel/events")
	})

	t.Run("EmptyEvent", func(t *testing.T) {
		_, err := c.SignTrigger(TriggerRequest{Data: "x"}, _timestamp)
		require.Error(t, err)
		assert.IsType(t, ValidationError{}, err)
		assert.Regexp(t, "event", err.Error())
	})

	t.Run("NoChannel", func(t *testing.T) {
		noDefault, err := NewClient(Config{AppId: "APPID", AuthKey: "KEY", Secret: "SECRET"})
		require.NoError(t, err)

		_, err = noDefault.SignTrigger(TriggerRequest{Event: "my_event", Data: "x"}, _timestamp)
		require.Error(t, err)
		assert.IsType(t, ValidationError{}, err)
		assert.Regexp(t, "channel", err.Error())
	})

	t.Run("BadData", func(t *testing.T) {
		_, err := c.SignTrigger(TriggerRequest{Event: "my_event", Data: make(chan int)}, _timestamp)
		require.Error(t, err)
		assert.IsType(t, SerializationError{}, err)
	})
}

// 签名对每个参数都敏感：任意一个输入变化，签名随之变化。
func TestClient_SignTrigger_sensitivity(t *testing.T) {
	c := newTestClient(t)
	base := TriggerRequest{Event: "my_event", Data: "Hello, World!"}

	signatureOf := func(req TriggerRequest, timestamp int64) string {
		signed, err := c.SignTrigger(req, timestamp)
		require.NoError(t, err)

		idx := strings.LastIndex(signed.Url, "auth_signature=")
		require.Greater(t, idx, 0)
		return signed.Url[idx+len("auth_signature="):]
	}

	golden := signatureOf(base, _timestamp)
	assert.Equal(t, _goldenSignature, golden)

	t.Run("Timestamp", func(t *testing.T) {
		assert.NotEqual(t, golden, signatureOf(base, _timestamp+1))
	})

	t.Run("Event", func(t *testing.T) {
		req := base
		req.Event = "my_event2"
		assert.NotEqual(t, golden, signatureOf(req, _timestamp))
	})

	t.Run("Data", func(t *testing.T) {
		req := base
		req.Data = "Hello, World"
		assert.NotEqual(t, golden, signatureOf(req, _timestamp))
	})

	t.Run("Channel", func(t *testing.T) {
		req := base
		req.Channel = "test_channel2"
		assert.NotEqual(t, golden, signatureOf(req, _timestamp))
	})

	t.Run("SocketId", func(t *testing.T) {
		req := base
		req.SocketId = "1.1"
		assert.NotEqual(t, golden, signatureOf(req, _timestamp))
	})
}

func TestBuildDataToSign(t *testing.T) {
	data := string(buildDataToSign("/apps/APPID/channels/test_channel/events", _goldenQuery))

	// 待签名串固定为三行：恰好两个换行符，且不以换行符结尾。
	assert.Equal(t, 2, strings.Count(data, "\n"))
	assert.False(t, strings.HasSuffix(data, "\n"))
	assert.Equal(t,
		"POST\n/apps/APPID/channels/test_channel/events\n"+_goldenQuery,
		data)
}

// 并发调用时的结果与单线程一致。
func TestClient_SignTrigger_concurrent(t *testing.T) {
	c := newTestClient(t)
	req := TriggerRequest{Event: "my_event", Data: "Hello, World!"}

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			signed, err := c.SignTrigger(req, _timestamp)
			if err == nil {
				results[i] = signed.Url
			}
		}(i)
	}
	wg.Wait()

	for _, v := range results {
		assert.Equal(t, _goldenUrl, v)
	}
}
