/*
authserver 提供 channel 授权端点的现成实现，基于 echo 。

浏览器端订阅 private- 或 presence- 开头的 channel 时，其 Pusher 客户端会向应用自己的
授权端点发起 POST 请求，携带表单参数 socket_id 和 channel_name 。本包将这类请求解码后，
调用 [pusher.Client] 计算授权票据并以 JSON 返回。

presence channel 需要用户身份，通过 [UserFinder] 从当前请求中获取，通常基于应用自己的
登录态（如 cookie 或 session ）。 [UserFinder] 返回错误，或返回的 user_id 为空时，
请求被以 403 拒绝。

# 使用

	client, _ := pusher.NewClient(pusher.Config{ ... })
	server := authserver.New(authserver.ServerOp{
		Client: client,
		Users: authserver.UserFinderFunc(func(r *http.Request, socketId, channel string) (pusher.PresenceUser, error) {
			u := sessionUser(r)
			return pusher.PresenceUser{UserId: u.Id, UserInfo: map[string]string{"name": u.Name}}, nil
		}),
		Logger: logger,
	})

	e := echo.New()
	server.Handle(e, "/pusher/auth")
	e.Start(":8080")

响应约定：

  - 200 票据计算成功， body 为 {"auth":"..."} 。
  - 400 表单缺少 socket_id 或 channel_name 。
  - 403 presence channel 的用户身份不可用。
*/
package authserver
