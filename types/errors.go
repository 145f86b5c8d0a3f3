/*
 * @Author: AsisYu
 * @Date: 2025-05-08 22:02:40
 * @Description: WHOIS查询错误分类
 */
package types

import (
	"errors"
	"fmt"
)

// ErrorKind 查询失败的分类，单个查询的错误互不影响
type ErrorKind string

const (
	ErrNotFound          ErrorKind = "NOT_FOUND"
	ErrTimeout           ErrorKind = "TIMEOUT"
	ErrConnectionRefused ErrorKind = "CONNECTION_REFUSED"
	ErrServerNotFound    ErrorKind = "SERVER_NOT_FOUND"
	ErrRateLimited       ErrorKind = "RATE_LIMITED"
	ErrEmptyResponse     ErrorKind = "EMPTY_RESPONSE"
	ErrOther             ErrorKind = "OTHER"
)

// LookupError 带分类的查询错误
type LookupError struct {
	Kind    ErrorKind
	Server  string
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	if e.Server != "" {
		return fmt.Sprintf("%s: %s (server=%s)", e.Kind, e.Message, e.Server)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError 创建分类错误
func NewLookupError(kind ErrorKind, server, message string, err error) *LookupError {
	return &LookupError{Kind: kind, Server: server, Message: message, Err: err}
}

// KindOf 提取错误分类，非LookupError归为ErrOther
func KindOf(err error) ErrorKind {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ErrOther
}

// Outcome 把错误分类映射为批量查询的终态
func (k ErrorKind) Outcome() string {
	switch k {
	case ErrNotFound:
		return OutcomeNotFound
	case ErrTimeout:
		return OutcomeTimeout
	case ErrRateLimited:
		return OutcomeRateLimited
	default:
		return OutcomeServerError
	}
}
