package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldPageID 页面 ID 字段
	FieldPageID = "pageId"

	// FieldVersionID 页面版本 ID 字段
	FieldVersionID = "versionId"

	// FieldGroupID 群组 ID 字段
	FieldGroupID = "groupId"

	// FieldInviteID 邀请 ID 字段
	FieldInviteID = "inviteId"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldError 错误信息字段
	FieldError = "error"
)
