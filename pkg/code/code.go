package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 错误消息
	Lang lang
	// 数据
	data interface{}
	// 是否含有Data
	haveData bool
	// 错误详细信息
	details []string
	// 是否含有详情
	haveDetails bool
	context     string
	// 是否含有Context
	haveContext bool
}

var codes = map[int]string{}

func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}

	codes[code] = l.GetMessage()

	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()

	return &Code{code: code, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
func (e *Code) Clone() *Code {
	// 创建一个新的副本,而不是修改原对象
	return &Code{
		code:   e.code,
		status: e.status,
		Lang:   e.Lang,
		// 其他字段保持默认零值
		data:        nil,
		haveData:    false,
		details:     []string{},
		haveDetails: false,
		context:     "",
		haveContext: false,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) Context() string {
	return e.context
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) HaveContext() bool {
	return e.haveContext
}

// Is 支持 errors.Is 按错误码比较
// 带附加数据的副本与原始错误码视为同一错误
func (e *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.code == e.code && t.status == e.status
}

// copy 完整复制，供 With* 系列链式调用使用
func (e *Code) copy() *Code {
	cp := *e
	cp.details = append([]string{}, e.details...)
	return &cp
}

// With* 系列方法在副本上附加数据，包级错误码本身保持不可变

func (e *Code) WithData(data interface{}) *Code {
	c := e.copy()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.copy()
	c.haveDetails = true
	c.details = append([]string{}, details...)
	return c
}

func (e *Code) WithContext(context string) *Code {
	c := e.copy()
	c.haveContext = true
	c.context = context
	return c
}

func (e *Code) StatusCode() int {
	return http.StatusOK
}
