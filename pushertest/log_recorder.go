// Package pushertest 提供测试辅助类型。
package pushertest

import (
	"fmt"
	"strings"

	"github.com/cmstar/go-logx"
)

// NewLogRecorder 创建一个 LogRecorder 的新实例。
func NewLogRecorder() *LogRecorder {
	return &LogRecorder{
		buf: &strings.Builder{},
	}
}

// LogRecorder 实现 logx.Logger ，将全部日志追加记录在一个字符串上，每个日志末尾追加一个换行。
// 每个日志的字符串拼接格式为，格式化使用 fmt.Sprintf() ：
//
//	level={LEVEL} message={MESSAGE} KEY1=VALUE1 KEY2=VALUE2 ...
//
// 非线程安全，仅用于测试。
type LogRecorder struct {
	buf *strings.Builder
}

var _ logx.Logger = (*LogRecorder)(nil)

// Log 实现 Logger.Log() 。
func (l *LogRecorder) Log(level logx.Level, message string, keyValues ...any) error {
	l.buf.WriteString("level=")
	l.buf.WriteString(logx.LevelToString(level))

	l.buf.WriteString(" message=")
	l.buf.WriteString(message)

	length := len(keyValues)
	for i := 0; i < length-1; i += 2 {
		l.buf.WriteByte(' ')
		l.buf.WriteString(fmt.Sprintf("%v", keyValues[i]))
		l.buf.WriteByte('=')
		l.buf.WriteString(fmt.Sprintf("%v", keyValues[i+1]))
	}

	if length%2 != 0 {
		l.buf.WriteString(" UNKNOWN=")
		l.buf.WriteString(fmt.Sprintf("%v", keyValues[length-1]))
	}

	l.buf.WriteByte('\n')
	return nil
}

// LogFn 实现 Logger.LogFn() 。
func (l *LogRecorder) LogFn(level logx.Level, messageFactory func() (string, []any)) error {
	m, kv := messageFactory()
	return l.Log(level, m, kv...)
}

// String 返回当前记录的完整日志。
func (l *LogRecorder) String() string {
	if l.buf == nil {
		return ""
	}
	return l.buf.String()
}

// Clear 清空已记录的日志。
func (l *LogRecorder) Clear() {
	l.buf.Reset()
}
