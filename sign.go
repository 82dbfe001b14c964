package pusher

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

/*
当前文件提供 trigger 请求的签名算法的实现。
*/

// TriggerRequest 描述一次 trigger 调用。
type TriggerRequest struct {
	// Event 是事件的名称，必填。
	Event string

	// Data 是事件携带的数据，需能够被 JSON 序列化。可以是标量，标量被序列化为裸的 JSON 值，
	// 如字符串 Hello 序列化为 "Hello" 。
	Data any

	// Channel 指定目标 channel 。为空时使用 [Config.Channel] 。
	Channel string

	// SocketId 不为空时体现在 socket_id 参数上，使对应的连接不会收到自己触发的事件。
	SocketId string

	// Params 是追加到 query string 上的额外参数，可空。额外参数参与签名计算。
	// 与协议保留的参数（ auth_key 、 auth_timestamp 、 auth_version 、 body_md5 、
	// name 、 socket_id 、 auth_signature ）同名的键被忽略。
	Params map[string]string
}

// SignedRequest 是一个已签名、可直接发送的 trigger 请求。
type SignedRequest struct {
	Method      string // 固定为 POST 。
	Url         string // 完整的 URL ，已包含 auth_signature 参数。
	Body        []byte // 请求的 body ，即 JSON 序列化后的事件数据。
	ContentType string // 固定为 application/json 。
}

// HmacSha256 计算 hmac-sha256 ，返回小写的 HEX 格式。
func HmacSha256(secret, data []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write(data)
	hash := hex.EncodeToString(h.Sum(nil))
	return hash
}

// SignTrigger 对给定的 trigger 请求计算签名，返回可直接发送的 [SignedRequest] 。
// timestamp 是 UNIX 时间戳，单位是秒，对应 URL 上的 auth_timestamp 参数。
//
// 这是一个纯函数：输入相同时，输出逐字节相同。
//
// [TriggerRequest.Event] 为空或 channel 无法确定时返回 [ValidationError] ，
// [TriggerRequest.Data] 不能被 JSON 序列化时返回 [SerializationError] 。
func (c *Client) SignTrigger(req TriggerRequest, timestamp int64) (SignedRequest, error) {
	var zero SignedRequest

	if req.Event == "" {
		return zero, CreateValidationError(nil, "event must be provided")
	}

	channel, err := c.resolveChannel(req.Channel)
	if err != nil {
		return zero, err
	}

	payload, err := json.Marshal(req.Data)
	if err != nil {
		return zero, CreateSerializationError(err, "marshal the event data")
	}

	path := "/apps/" + c.conf.AppId + "/channels/" + channel + "/events"
	query := buildCanonicalQuery(c.conf.AuthKey, timestamp, payload, req.Event, req.SocketId, req.Params)
	signature := HmacSha256([]byte(c.conf.Secret), buildDataToSign(path, query))

	return SignedRequest{
		Method:      "POST",
		Url:         c.baseUrl() + path + "?" + query + "&auth_signature=" + signature,
		Body:        payload,
		ContentType: ContentTypeJson,
	}, nil
}

// 协议保留的参数，不能被额外参数覆盖。
var _reservedQueryKeys = map[string]bool{
	"auth_key":       true,
	"auth_timestamp": true,
	"auth_version":   true,
	"body_md5":       true,
	"name":           true,
	"socket_id":      true,
	"auth_signature": true,
}

// buildCanonicalQuery 拼接 query string ，参数按键的字节顺序升序排列，恰好是协议规定的顺序：
// auth_key 、 auth_timestamp 、 auth_version 、 body_md5 、 name 、 socket_id 。
// socketId 为空时， socket_id 键值对整个被省略。参数值使用标准的 URL 编码。
//
// 顺序是协议的一部分，拼接必须是确定性的。
func buildCanonicalQuery(authKey string, timestamp int64, payload []byte, event, socketId string, extra map[string]string) string {
	sum := md5.Sum(payload)

	params := map[string]string{
		"auth_key":       authKey,
		"auth_timestamp": strconv.FormatInt(timestamp, 10),
		"auth_version":   AuthVersion,
		"body_md5":       hex.EncodeToString(sum[:]),
		"name":           event,
	}
	if socketId != "" {
		params["socket_id"] = socketId
	}
	for k, v := range extra {
		if _reservedQueryKeys[k] {
			continue
		}
		params[k] = v
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := new(strings.Builder)
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params[k]))
	}
	return b.String()
}

// buildDataToSign 构建待签名串，各部分间用换行符（\n）分割，末尾没有空行，依次为：
//   - METHOD 固定为 POST 。
//   - PATH 请求的路径，即 /apps/{app_id}/channels/{channel}/events 。
//   - QUERY 按固定顺序拼接的 query string ，不含 auth_signature 。
func buildDataToSign(path, query string) []byte {
	b := new(strings.Builder)
	b.WriteString("POST")
	b.WriteRune('\n')
	b.WriteString(path)
	b.WriteRune('\n')
	b.WriteString(query)
	return []byte(b.String())
}
