package pusher

import (
	"fmt"
	"reflect"

	"github.com/cmstar/go-errx"
	"github.com/cmstar/go-logx"
)

/*
当前文件提供相关错误类型及处理错误的方法。
*/

// describedError 描述一个带原因的错误，用作其他错误的内嵌结构。
type describedError struct {
	errx.ErrorCause

	Message string // Message 记录错误的描述信息。
}

var _ error = (*describedError)(nil)

// Error 实现 error 接口。
func (e describedError) Error() string {
	return e.Message
}

// Unwrap 返回引起此错误的错误，没有时返回 nil 。
func (e describedError) Unwrap() error {
	return e.Err
}

func createDescribedError(cause error, message string, args []any) describedError {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}

	if cause != nil {
		if message != "" {
			message += ":: "
		}
		message += cause.Error()
	}

	return describedError{
		ErrorCause: errx.ErrorCause{Err: cause},
		Message:    message,
	}
}

// ConfigError 表示构造客户端时的配置错误，如缺少必填的凭据。
// 这类错误不会在程序生命周期中自动解决，应在启动阶段即被处理。
type ConfigError struct {
	describedError
}

// CreateConfigError 创建一个 ConfigError 。
// message 和 args 指定描述信息，使用 fmt.Sprintf() 格式化。 cause 是引起此错误的错误，可以为 nil 。
// message 会体现在 ConfigError.Error() ，格式为：
//
//	message:: cause.Error()
func CreateConfigError(cause error, message string, args ...any) ConfigError {
	return ConfigError{createDescribedError(cause, message, args)}
}

// ValidationError 表示单次调用缺少必要的参数，如事件名称、 socket_id 、
// user_id 为空，或 channel 无法确定。出现此错误时，调用立即终止，不会发起网络请求。
type ValidationError struct {
	describedError
}

// CreateValidationError 创建一个 ValidationError 。参数含义同 [CreateConfigError] 。
func CreateValidationError(cause error, message string, args ...any) ValidationError {
	return ValidationError{createDescribedError(cause, message, args)}
}

// SerializationError 表示给定的数据不能被 JSON 序列化。
type SerializationError struct {
	describedError
}

// CreateSerializationError 创建一个 SerializationError 。参数含义同 [CreateConfigError] 。
func CreateSerializationError(cause error, message string, args ...any) SerializationError {
	return SerializationError{createDescribedError(cause, message, args)}
}

// TransportError 表示网络层面的失败，此时没有可用的 HTTP 响应。
// [Client.Trigger] 将其折叠为 false ； [Client.TriggerRaw] 将其原样返回。
type TransportError struct {
	describedError
}

// CreateTransportError 创建一个 TransportError 。参数含义同 [CreateConfigError] 。
func CreateTransportError(cause error, message string, args ...any) TransportError {
	return TransportError{createDescribedError(cause, message, args)}
}

// DescribeError 根据给定的错误，返回错误的日志级别、名称和错误描述。如果 err 为 nil ，返回 logx.LevelInfo 和空字符串。
// 此方法可用于搭配 [logx.Logger] 输出带有错误描述的日志。
func DescribeError(err error) (logLevel logx.Level, errTypeName, errDescription string) {
	if err == nil {
		return logx.LevelInfo, "", ""
	}

	errTypeName = getErrTypeName(err)
	errDescription = errx.Describe(err)

	switch err.(type) {
	case ValidationError, SerializationError:
		// 由调用方的输入导致，不是环境问题。
		logLevel = logx.LevelWarn
	default:
		logLevel = logx.LevelError
	}

	return
}

func getErrTypeName(err error) string {
	// 取 error 内在的实际类型的名称。
	typ := reflect.TypeOf(err)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	name := typ.Name()

	// 如果是个公开类型（首字母大写），直接用其名称。
	if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
		return name
	}

	// 非公开的错误，如果是几个预定义且常见的，返回其接口名称。
	if _, ok := err.(errx.BizError); ok {
		return "BizError"
	}
	if _, ok := err.(errx.StackfulError); ok {
		return "StackfulError"
	}
	return name
}
