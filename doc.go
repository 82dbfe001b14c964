/*
pusher 是 Pusher Channels 推送服务的服务端客户端库。它完成两件事：

  - 构建带签名的 REST 请求，向指定的 channel 推送（ trigger ）事件；
  - 计算 channel 授权票据，应用服务端将其返回给自己的浏览器端，
    浏览器端凭此订阅 private- 或 presence- 开头的受限 channel 。

库本身不维护任何连接，也不包含 WebSocket 传输。每次调用都是独立的：
trigger 发起一次 HTTP POST ，授权计算则是纯函数。

# REST 请求签名

字符集统一使用 UTF-8 。签名使用 HMAC-SHA256 算法，通过 secret 对待签名串进行哈希计算得到。
待签名串根据请求的内容生成，格式为：

	POST
	PATH
	QUERY

各部分间用换行符（\n）分割，末尾没有空行，各部分的值为：
 1. 第一行固定是“POST”。
 2. PATH 是请求的路径，固定格式为 /apps/{app_id}/channels/{channel}/events 。
 3. QUERY 是 URL 的 query string 部分，各参数按固定顺序拼接：
    auth_key 、 auth_timestamp （ UNIX 时间戳，单位是秒）、 auth_version （固定值 1.0 ）、
    body_md5 （请求 body 的 MD5 ，小写 HEX ）、 name （事件名称）、
    socket_id （可省略，省略时整个键值对不出现）。
    参数值经过标准的 URL 编码，键值对之间用“&”连接。
    额外参数（如有）按键的字节顺序一并插入，上述各键本身即按字节顺序排列。

计算出的签名以 auth_signature 参数追加在 URL 末尾。 auth_signature 本身不参与签名计算。

# 例子

假设 key 的值为 KEY ， secret 的值为 SECRET ， app_id 为 APPID ，
向 test_channel 推送 my_event 事件，数据为字符串 Hello, World! ，时间戳固定为 1000000000 。

数据 JSON 序列化后作为 body ，标量也是合法的 JSON ：

	"Hello, World!"

其 MD5 为 7959b2c4af2fd6d142ba32babd30ceb7 ，待签名串为：

	POST
	/apps/APPID/channels/test_channel/events
	auth_key=KEY&auth_timestamp=1000000000&auth_version=1.0&body_md5=7959b2c4af2fd6d142ba32babd30ceb7&name=my_event

得到签名 b9307149063dba6f7bd8531b3953ff955152fcc9e38bddbca720106909208d08 ，最终请求为：

	POST http://api.pusherapp.com:80/apps/APPID/channels/test_channel/events
	  ?auth_key=KEY&auth_timestamp=1000000000&auth_version=1.0
	  &body_md5=7959b2c4af2fd6d142ba32babd30ceb7&name=my_event
	  &auth_signature=b9307149063dba6f7bd8531b3953ff955152fcc9e38bddbca720106909208d08

# channel 授权

private channel 的签名输入为：

	{socket_id}:{channel}

presence channel 额外携带用户身份，先将其序列化为 JSON （字段顺序固定为 user_id 、 user_info ），
再拼入签名输入：

	{socket_id}:{channel}:{"user_id":"...","user_info":...}

两者的票据格式相同，为一个 JSON 对象：

	{"auth": "{key}:{hex_signature}"}

presence 的用户 JSON 只参与签名，不单独出现在票据里。

# 使用

	client, err := pusher.NewClient(pusher.Config{
		AppId:   "APPID",
		AuthKey: "KEY",
		Secret:  "SECRET",
		Channel: "test_channel",
	})
	if err != nil {
		panic(err)
	}

	ok, err := client.Trigger(pusher.TriggerRequest{
		Event: "my_event",
		Data:  "Hello, World!",
	})

授权端点的现成实现见子包 authserver 。
*/
package pusher
