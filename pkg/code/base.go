package code

// Success 成功响应码
var Success = NewSuss(0, lang{
	en:    "Success",
	zh_cn: "成功",
})

// 通用错误码 10xxx
var (
	ErrorServerInternal = NewError(10000, lang{
		en:    "Internal server error",
		zh_cn: "服务内部错误",
	})
	ErrorInvalidParams = NewError(10001, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorNotFoundAPI = NewError(10002, lang{
		en:    "API not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10003, lang{
		en:    "Too many requests",
		zh_cn: "请求过多",
	})
	ErrorNotUserAuthToken = NewError(10004, lang{
		en:    "Missing auth token",
		zh_cn: "缺少认证令牌",
	})
	ErrorInvalidUserAuthToken = NewError(10005, lang{
		en:    "Invalid auth token",
		zh_cn: "认证令牌无效",
	})
	ErrorDBQuery = NewError(10006, lang{
		en:    "Database query error",
		zh_cn: "数据库查询错误",
	})
)

// 用户错误码 20xxx
var (
	ErrorUserRegisterIsDisable = NewError(20001, lang{
		en:    "Registration is disabled",
		zh_cn: "注册功能已关闭",
	})
	ErrorUserEmailAlreadyExists = NewError(20002, lang{
		en:    "Email already registered",
		zh_cn: "邮箱已被注册",
	})
	ErrorUserAlreadyExists = NewError(20003, lang{
		en:    "Username already exists",
		zh_cn: "用户名已存在",
	})
	ErrorUserNotExist = NewError(20004, lang{
		en:    "User does not exist",
		zh_cn: "用户不存在",
	})
	ErrorUserPasswordError = NewError(20005, lang{
		en:    "Incorrect password",
		zh_cn: "密码错误",
	})
	ErrorUserPasswordNotMatch = NewError(20006, lang{
		en:    "Passwords do not match",
		zh_cn: "两次输入的密码不一致",
	})
	ErrorPasswordNotValid = NewError(20007, lang{
		en:    "Password is not valid",
		zh_cn: "密码不合法",
	})
	ErrorUserRegister = NewError(20008, lang{
		en:    "Register failed",
		zh_cn: "注册失败",
	})
	ErrorUserLogin = NewError(20009, lang{
		en:    "Login failed",
		zh_cn: "登录失败",
	})
)

// 页面错误码 30xxx
var (
	ErrorPageNotFound = NewError(30001, lang{
		en:    "Page not found",
		zh_cn: "页面不存在",
	})
	ErrorNotPageOwner = NewError(30002, lang{
		en:    "Only the page owner may perform this operation",
		zh_cn: "只有页面所有者才能执行此操作",
	})
	ErrorPageTitleTooLong = NewError(30003, lang{
		en:    "Page title exceeds the maximum length",
		zh_cn: "页面标题超出最大长度",
	})
	ErrorPageContentTooLong = NewError(30004, lang{
		en:    "Page content exceeds the maximum length",
		zh_cn: "页面内容超出最大长度",
	})
	ErrorPageVersionNotFound = NewError(30005, lang{
		en:    "Page version not found",
		zh_cn: "页面历史版本不存在",
	})
	ErrorPageVersionMismatch = NewError(30006, lang{
		en:    "Version does not belong to this page",
		zh_cn: "历史版本不属于该页面",
	})
	ErrorShareTargetNotFound = NewError(30007, lang{
		en:    "Share target not found",
		zh_cn: "分享对象不存在",
	})
	ErrorNotAuthorized = NewError(30008, lang{
		en:    "Not authorized",
		zh_cn: "没有操作权限",
	})
)

// 群组错误码 40xxx
var (
	ErrorGroupNotFound = NewError(40001, lang{
		en:    "Group not found",
		zh_cn: "群组不存在",
	})
	ErrorGroupNameAlreadyExists = NewError(40002, lang{
		en:    "Group name already exists",
		zh_cn: "群组名称已存在",
	})
	ErrorNotGroupMember = NewError(40003, lang{
		en:    "Not a member of this group",
		zh_cn: "不是该群组的成员",
	})
	ErrorInviteNotFound = NewError(40004, lang{
		en:    "Invite not found",
		zh_cn: "邀请不存在",
	})
)
