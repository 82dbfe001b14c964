package authserver

import (
	"net/url"
	"strings"

	"github.com/cmstar/go-conv"
)

/*
当前文件提供授权请求的表单解码。
*/

// Request 是解码后的授权请求。
type Request struct {
	SocketId    string // 表单参数 socket_id 。
	ChannelName string // 表单参数 channel_name 。
}

var _convConf = conv.Config{
	FieldMatcherCreator: &conv.SimpleMatcherCreator{
		Conf: conv.SimpleMatcherConfig{
			CaseInsensitive: true,
		},
	},
}

// Conv 是用于解码授权请求的 [conv.Conv] 实例，使用大小写不敏感（case-insensitive）的方式处理字段。
var Conv = conv.Conv{Conf: _convConf}

// decodeRequest 将表单参数解码为 [Request] 。
// 参数名中的下划线在解码前被去掉，配合大小写不敏感的字段匹配， socket_id 即对应 SocketId 字段。
// 同名参数出现多次时，只取第一个值。
func decodeRequest(form url.Values) (Request, error) {
	// map 到 struct 的转换要求 map[string]interface{} 。
	m := make(map[string]any, len(form))
	for k, vs := range form {
		if len(vs) == 0 {
			continue
		}
		m[strings.ReplaceAll(k, "_", "")] = vs[0]
	}

	req := Request{}
	err := Conv.Convert(m, &req)
	return req, err
}
