package pusher

import (
	"encoding/json"
	"strings"
)

/*
当前文件提供 channel 授权票据的计算。

应用服务端在自己的 HTTP 端点上收到浏览器端的授权请求（携带 socket_id 和 channel 名称）时，
调用这里的方法计算票据并原样返回。浏览器端凭票据向 Pusher 订阅受限 channel 。
*/

// ChannelAuthToken 是 channel 授权票据，序列化后返回给浏览器端。
type ChannelAuthToken struct {
	// Auth 的格式为 {auth_key}:{hex_signature} 。
	Auth string `json:"auth"`
}

// PresenceUser 描述 presence channel 的订阅者身份。
type PresenceUser struct {
	// UserId 是用户在应用内的唯一标识，必填。
	UserId string `json:"user_id"`

	// UserInfo 是随身份下发给其他订阅者的附加信息，需能够被 JSON 序列化。为 nil 时不参与序列化。
	UserInfo any `json:"user_info,omitempty"`
}

// AuthorizePrivate 计算 private channel 的授权票据。
//
// 签名输入为 {socket_id}:{channel} ，使用 HMAC-SHA256 和配置的 secret 计算。
// socketId 为空时返回 [ValidationError] 。 channel 为空时使用 [Config.Channel] ，
// 两者均为空时返回 [ValidationError] 。
func (c *Client) AuthorizePrivate(socketId, channel string) (ChannelAuthToken, error) {
	var zero ChannelAuthToken

	if socketId == "" {
		return zero, CreateValidationError(nil, "socketId must be provided")
	}

	channel, err := c.resolveChannel(channel)
	if err != nil {
		return zero, err
	}

	return c.authToken(socketId + ":" + channel), nil
}

// AuthorizePresence 计算 presence channel 的授权票据。
//
// 用户身份先被序列化为 JSON ，再拼入签名输入：
//
//	{socket_id}:{channel}:{"user_id":"...","user_info":...}
//
// 用户 JSON 只参与签名，不体现在票据上。
// socketId 或 user.UserId 为空时返回 [ValidationError] 。 channel 的处理同 [Client.AuthorizePrivate] 。
func (c *Client) AuthorizePresence(socketId, channel string, user PresenceUser) (ChannelAuthToken, error) {
	var zero ChannelAuthToken

	if socketId == "" {
		return zero, CreateValidationError(nil, "socketId must be provided")
	}
	if user.UserId == "" {
		return zero, CreateValidationError(nil, "userId must be provided")
	}

	channel, err := c.resolveChannel(channel)
	if err != nil {
		return zero, err
	}

	customData, err := json.Marshal(user)
	if err != nil {
		return zero, CreateSerializationError(err, "marshal the user data")
	}

	b := new(strings.Builder)
	b.WriteString(socketId)
	b.WriteByte(':')
	b.WriteString(channel)
	b.WriteByte(':')
	b.Write(customData)
	return c.authToken(b.String()), nil
}

func (c *Client) authToken(message string) ChannelAuthToken {
	signature := HmacSha256([]byte(c.conf.Secret), []byte(message))
	return ChannelAuthToken{Auth: c.conf.AuthKey + ":" + signature}
}
