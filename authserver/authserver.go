package authserver

import (
	"net/http"
	"strings"

	"github.com/cmstar/go-logx"
	"github.com/labstack/echo/v4"

	"github.com/cmstar/go-pusher"
)

// presence channel 的名称前缀。
const presenceChannelPrefix = "presence-"

// UserFinder 用于从当前请求中获取 presence channel 的订阅者身份。
type UserFinder interface {
	// FindUser 返回发起授权请求的用户的身份。
	// 不应放行时返回错误；返回的 [pusher.PresenceUser.UserId] 为空同样视为不放行。
	FindUser(r *http.Request, socketId, channel string) (pusher.PresenceUser, error)
}

type userFinderWrapper struct {
	f func(r *http.Request, socketId, channel string) (pusher.PresenceUser, error)
}

func (x userFinderWrapper) FindUser(r *http.Request, socketId, channel string) (pusher.PresenceUser, error) {
	return x.f(r, socketId, channel)
}

// UserFinderFunc 将给定的函数包装为 [UserFinder] 。
func UserFinderFunc(f func(r *http.Request, socketId, channel string) (pusher.PresenceUser, error)) UserFinder {
	return userFinderWrapper{f}
}

// ServerOp 用于初始化 [Server] 。
type ServerOp struct {
	Client *pusher.Client // 计算票据的客户端，必填。
	Users  UserFinder     // presence channel 的身份来源。为 nil 时， presence channel 的请求一律被拒绝。
	Logger logx.Logger    // 不为 nil 时，每个请求输出一行日志。
}

// Server 实现 channel 授权端点。
type Server struct {
	client *pusher.Client
	users  UserFinder
	logger logx.Logger
}

// New 创建一个 [Server] 。 op.Client 为 nil 时 panic 。
func New(op ServerOp) *Server {
	if op.Client == nil {
		panic("client must be provided")
	}

	return &Server{
		client: op.Client,
		users:  op.Users,
		logger: op.Logger,
	}
}

// Handle 将授权端点注册到给定的 echo 实例的指定路径上，只响应 POST 。
func (s *Server) Handle(e *echo.Echo, path string) {
	e.POST(path, s.HandlerFunc())
}

// HandlerFunc 返回处理授权请求的 [echo.HandlerFunc] ，供自行注册路由时使用。
func (s *Server) HandlerFunc() echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return s.reject(c, Request{}, http.StatusBadRequest, "invalid form", err)
		}

		req, err := decodeRequest(form)
		if err != nil {
			return s.reject(c, req, http.StatusBadRequest, "invalid form", err)
		}

		if req.SocketId == "" {
			return s.reject(c, req, http.StatusBadRequest, "socket_id must be provided", nil)
		}
		if req.ChannelName == "" {
			return s.reject(c, req, http.StatusBadRequest, "channel_name must be provided", nil)
		}

		var token pusher.ChannelAuthToken
		if strings.HasPrefix(req.ChannelName, presenceChannelPrefix) {
			token, err = s.authorizePresence(c, req)
		} else {
			token, err = s.client.AuthorizePrivate(req.SocketId, req.ChannelName)
		}

		if err != nil {
			return s.reject(c, req, http.StatusForbidden, "forbidden", err)
		}

		s.log(c, req, nil)
		return c.JSON(http.StatusOK, token)
	}
}

func (s *Server) authorizePresence(c echo.Context, req Request) (pusher.ChannelAuthToken, error) {
	var zero pusher.ChannelAuthToken

	if s.users == nil {
		return zero, pusher.CreateValidationError(nil, "no UserFinder for the presence channel")
	}

	user, err := s.users.FindUser(c.Request(), req.SocketId, req.ChannelName)
	if err != nil {
		return zero, err
	}

	return s.client.AuthorizePresence(req.SocketId, req.ChannelName, user)
}

// reject 记录日志并以 message 作为 body 返回给定的状态码。具体的错误原因只进日志，不下发。
func (s *Server) reject(c echo.Context, req Request, code int, message string, cause error) error {
	s.log(c, req, pusher.CreateValidationError(cause, message))
	return c.String(code, message)
}

func (s *Server) log(c echo.Context, req Request, err error) {
	if s.logger == nil {
		return
	}

	logLevel, errTypeName, errDescription := pusher.DescribeError(err)
	message := make([]any, 0, 10)
	message = append(message, "IP", c.RealIP(), "Channel", req.ChannelName, "SocketId", req.SocketId)
	if err != nil {
		message = append(message, "ErrorType", errTypeName, "Error", errDescription)
	}

	s.logger.Log(logLevel, "", message...)
}
