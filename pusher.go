package pusher

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmstar/go-logx"
)

/*
当前文件提供客户端的配置和构造过程。
*/

const (
	// 未指定 Config.Host 时使用的默认地址。
	DefaultHost = "http://api.pusherapp.com"

	// 未指定 Config.Port 时使用的默认端口。
	DefaultPort = 80

	// 签名算法的版本，对应 URL 上的 auth_version 参数，固定值。
	AuthVersion = "1.0"

	// application/json 。
	ContentTypeJson = "application/json"

	// application/x-www-form-urlencoded 。
	ContentTypeForm = "application/x-www-form-urlencoded"

	// HTTP 协议的 Content-Type 头。
	HttpHeaderContentType = "Content-Type"
)

// Config 是客户端的配置。构建 [Client] 后不可再变更。
type Config struct {
	AppId   string // 应用的 ID ，必填。体现在请求路径上。
	AuthKey string // 应用的 key ，必填。用于标识请求方的身份，体现在 auth_key 参数和授权票据上。
	Secret  string // 应用的 secret ，必填。仅用作 HMAC-SHA256 的密钥，不会被发送。
	Channel string // 默认的 channel ，可空。各操作未指定 channel 时使用此值。
	Host    string // 服务地址，可带 http:// 或 https:// 前缀，不带时视为 http:// 。为空时使用 [DefaultHost] 。
	Port    int    // 服务端口。为 0 时使用 [DefaultPort] 。
}

// HttpClient 是 [Client.Trigger] 所使用的 HTTP 传输层。 [http.Client] 实现此接口。
type HttpClient interface {
	Do(r *http.Request) (*http.Response, error)
}

// Client 是 Pusher Channels 的客户端。
//
// 除构造后立刻进行的字段赋值外， Client 不携带可变状态，可被多个 goroutine 并发使用。
type Client struct {
	// HttpClient 指定发送 trigger 请求的传输层。默认为一个新的 [http.Client] 。
	HttpClient HttpClient

	// Now 返回当前的 UNIX 时间戳，单位是秒，对应 URL 上的 auth_timestamp 参数。
	// 默认使用 [time.Now] 。测试时可替换，以获得确定的签名。
	Now func() int64

	// Logger 不为 nil 时，每次 trigger 输出一行日志。
	Logger logx.Logger

	conf Config
}

// NewClient 创建一个 [Client] 。
// Config.AppId 、 Config.AuthKey 、 Config.Secret 任意一个为空时，返回 [ConfigError] 。
func NewClient(conf Config) (*Client, error) {
	switch {
	case conf.AppId == "":
		return nil, CreateConfigError(nil, "AppId must be provided")
	case conf.AuthKey == "":
		return nil, CreateConfigError(nil, "AuthKey must be provided")
	case conf.Secret == "":
		return nil, CreateConfigError(nil, "Secret must be provided")
	}

	if conf.Host == "" {
		conf.Host = DefaultHost
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort
	}

	return &Client{
		HttpClient: new(http.Client),
		Now:        func() int64 { return time.Now().Unix() },
		conf:       conf,
	}, nil
}

// AuthKey 返回配置的 key 。
func (c *Client) AuthKey() string {
	return c.conf.AuthKey
}

// baseUrl 返回 scheme://host:port ，不含路径部分。
func (c *Client) baseUrl() string {
	host := c.conf.Host
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	return host + ":" + strconv.Itoa(c.conf.Port)
}

// resolveChannel 返回给定的 channel ；为空时返回配置的默认 channel ；两者均为空时返回 [ValidationError] 。
func (c *Client) resolveChannel(channel string) (string, error) {
	if channel != "" {
		return channel, nil
	}
	if c.conf.Channel != "" {
		return c.conf.Channel, nil
	}
	return "", CreateValidationError(nil, "channel must be provided")
}
