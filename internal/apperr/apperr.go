package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound 引用的记录不存在（执行/报告/配置）
var ErrNotFound = errors.New("record not found")

// ValidationError 调用方参数错误，未产生任何状态变更
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
