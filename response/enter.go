package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cpduel/log/zlog"
)

// Code 业务码，Status 为对外的HTTP状态码
type Code struct {
	Code   int
	Msg    string
	Status int
}

var (
	SUCCESS = Code{Code: 200, Msg: "成功", Status: http.StatusOK}

	// 参数/校验类
	PARAM_NOT_COMPLETE = Code{Code: 10001, Msg: "参数缺失", Status: http.StatusBadRequest}
	PARAM_NOT_VALID    = Code{Code: 10002, Msg: "参数无效", Status: http.StatusBadRequest}
	ACTION_NOT_EXIST   = Code{Code: 10003, Msg: "不支持的操作", Status: http.StatusBadRequest}

	// 认证类
	TOKEN_IS_BLANK     = Code{Code: 20001, Msg: "token为空", Status: http.StatusUnauthorized}
	TOKEN_FORMAT_ERROR = Code{Code: 20002, Msg: "token格式错误", Status: http.StatusUnauthorized}
	TOKEN_IS_EXPIRED   = Code{Code: 20003, Msg: "token无效或已过期", Status: http.StatusUnauthorized}
	USER_NOT_LOGIN     = Code{Code: 20004, Msg: "用户未登录", Status: http.StatusUnauthorized}
	PERMISSION_DENIED  = Code{Code: 20005, Msg: "权限不足", Status: http.StatusForbidden}

	// 业务类
	MEMBER_NOT_EXIST      = Code{Code: 30001, Msg: "用户不存在", Status: http.StatusNotFound}
	MESSAGE_NOT_EXIST     = Code{Code: 30002, Msg: "资源不存在", Status: http.StatusNotFound}
	USER_ALREADY_EXISTS   = Code{Code: 30003, Msg: "用户已存在", Status: http.StatusConflict}
	PASSWORD_ERROR        = Code{Code: 30004, Msg: "密码错误", Status: http.StatusUnauthorized}
	VERIFY_CODE_VALID     = Code{Code: 30005, Msg: "验证码错误或已过期", Status: http.StatusBadRequest}
	EMAIL_NOT_VALID       = Code{Code: 30006, Msg: "邮箱格式错误", Status: http.StatusBadRequest}
	EMAIL_SEND_ERROR      = Code{Code: 30007, Msg: "邮件发送失败", Status: http.StatusInternalServerError}
	REQUEST_FREQUENTLY    = Code{Code: 30008, Msg: "请求过于频繁", Status: http.StatusTooManyRequests}
	NOT_IN_QUEUE          = Code{Code: 31001, Msg: "当前不在匹配队列中", Status: http.StatusForbidden}
	ALREADY_IN_QUEUE      = Code{Code: 31002, Msg: "已在匹配队列中", Status: http.StatusConflict}
	NOT_MATCH_PARTICIPANT = Code{Code: 31003, Msg: "不是该对局的参与者", Status: http.StatusForbidden}
	MATCH_NOT_ACTIVE      = Code{Code: 31004, Msg: "对局不在进行中", Status: http.StatusConflict}
	MATCH_FULL            = Code{Code: 31005, Msg: "对局人数已满", Status: http.StatusConflict}
	INSUFFICIENT_PROBLEMS = Code{Code: 31006, Msg: "可用题目不足", Status: http.StatusConflict}

	// 系统类
	DATABASE_ERROR = Code{Code: 50001, Msg: "服务内部错误", Status: http.StatusInternalServerError}
	REDIS_ERROR    = Code{Code: 50002, Msg: "服务内部错误", Status: http.StatusInternalServerError}
	INTERNAL_ERROR = Code{Code: 50003, Msg: "服务内部错误", Status: http.StatusInternalServerError}
	UPSTREAM_ERROR = Code{Code: 50004, Msg: "上游服务不可用", Status: http.StatusBadGateway}
)

// CodeError 业务错误，向上传播到 Response 统一落地
type CodeError struct {
	Err  error
	Code Code
}

func (e *CodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code.Msg
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// ErrResp 把底层错误包装成带业务码的错误
func ErrResp(err error, code Code) error {
	return &CodeError{Err: err, Code: code}
}

// IsCode 判断err是否携带指定业务码
func IsCode(err error, code Code) bool {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code.Code == code.Code
	}
	return false
}

type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response 统一出口：成功带data，失败只暴露业务码文案，细节留在日志里
func Response(c *gin.Context, resp interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, Body{
			Code:    SUCCESS.Code,
			Message: SUCCESS.Msg,
			Data:    resp,
		})
		return
	}
	var codeErr *CodeError
	if !errors.As(err, &codeErr) {
		codeErr = &CodeError{Err: err, Code: INTERNAL_ERROR}
	}
	if codeErr.Code.Status >= http.StatusInternalServerError {
		zlog.CtxErrorf(zlog.GetCtxFromGin(c), "请求处理失败: %v", codeErr.Err)
	}
	c.JSON(codeErr.Code.Status, Body{
		Code:    codeErr.Code.Code,
		Message: codeErr.Code.Msg,
	})
}

type Writer struct {
	c *gin.Context
}

func NewResponse(c *gin.Context) *Writer {
	return &Writer{c: c}
}

func (w *Writer) Error(code Code) {
	w.c.JSON(code.Status, Body{
		Code:    code.Code,
		Message: code.Msg,
	})
}

func (w *Writer) Success(data interface{}) {
	w.c.JSON(http.StatusOK, Body{
		Code:    SUCCESS.Code,
		Message: SUCCESS.Msg,
		Data:    data,
	})
}
