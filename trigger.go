package pusher

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

/*
当前文件提供 trigger 请求的发送过程。
*/

// triggerOkBody 是服务端受理事件时返回的 body ，逐字节匹配。
const triggerOkBody = "202 ACCEPTED\n"

// RawResponse 记录一次 trigger 请求的原始响应。 body 已被完整读取。
type RawResponse struct {
	StatusCode int         // HTTP 状态码。
	Status     string      // 状态行，如 200 OK 。
	Header     http.Header // 响应头。
	Body       []byte      // 完整的响应 body 。
}

// Trigger 向目标 channel 推送一个事件，返回服务端是否受理。
//
// 受理的判定条件为： HTTP 状态码为 2xx ，且 body 逐字节等于“202 ACCEPTED\n”。
// 网络失败和非受理响应均返回 false ，不返回 error 。需要原始响应时，使用 [Client.TriggerRaw] 。
// 参数校验和序列化错误总是作为 error 返回，此时不会发起网络请求。
//
// 没有重试。每次调用对应至多一次 HTTP 请求。
func (c *Client) Trigger(req TriggerRequest) (bool, error) {
	raw, err := c.TriggerRaw(req)
	if err != nil {
		var te TransportError
		if errors.As(err, &te) {
			return false, nil
		}
		return false, err
	}

	ok := raw.StatusCode >= 200 && raw.StatusCode < 300 && string(raw.Body) == triggerOkBody
	return ok, nil
}

// TriggerRaw 向目标 channel 推送一个事件，返回原始响应。
//
// 只要收到了响应，无论状态码是什么，都返回该响应；仅在没有任何响应可用时
// （如网络失败、响应读取失败）返回 [TransportError] 。
// 参数校验和序列化错误的行为与 [Client.Trigger] 相同。
func (c *Client) TriggerRaw(req TriggerRequest) (*RawResponse, error) {
	signed, err := c.SignTrigger(req, c.Now())
	if err != nil {
		c.log(req, "", err)
		return nil, err
	}

	raw, err := c.send(signed)
	c.log(req, signed.Url, err)
	return raw, err
}

func (c *Client) send(signed SignedRequest) (*RawResponse, error) {
	request, err := http.NewRequest(signed.Method, signed.Url, bytes.NewBuffer(signed.Body))
	if err != nil {
		return nil, CreateTransportError(err, "build the request")
	}
	request.Header.Set(HttpHeaderContentType, signed.ContentType)

	response, err := c.HttpClient.Do(request)
	if err != nil {
		return nil, CreateTransportError(err, "send the request")
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, CreateTransportError(err, "read the response")
	}

	return &RawResponse{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Header:     response.Header,
		Body:       body,
	}, nil
}

// log 在 Logger 不为 nil 时输出一行日志，级别由 [DescribeError] 给出。
func (c *Client) log(req TriggerRequest, url string, err error) {
	if c.Logger == nil {
		return
	}

	logLevel, errTypeName, errDescription := DescribeError(err)
	message := make([]any, 0, 8)
	message = append(message, "Event", req.Event, "URL", url)
	if err != nil {
		message = append(message, "ErrorType", errTypeName, "Error", errDescription)
	}

	c.Logger.Log(logLevel, "", message...)
}
