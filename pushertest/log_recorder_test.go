package pushertest

import (
	"testing"

	"github.com/cmstar/go-logx"
	"github.com/stretchr/testify/assert"
)

func TestLogRecorder(t *testing.T) {
	r := NewLogRecorder()
	assert := assert.New(t)
	assert.Empty(r.String())

	r.Log(logx.LevelDebug, "")
	r.Log(logx.LevelError, "msg")
	r.Log(logx.LevelInfo, "", "k1", "v1", "k2", 2, 3)
	r.LogFn(logx.LevelInfo, func() (string, []any) {
		return "msg", []any{"k1", "v1"}
	})

	want := `level=DEBUG message=
level=ERROR message=msg
level=INFO message= k1=v1 k2=2 UNKNOWN=3
level=INFO message=msg k1=v1
`
	assert.Equal(want, r.String())

	r.Clear()
	assert.Empty(r.String())
}
