package errno

import "errors"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Is 按错误码比较，WithMessage 之后仍可用 errors.Is 判断
func (e Errno) Is(target error) bool {
	var t Errno
	switch typed := target.(type) {
	case Errno:
		t = typed
	case *Errno:
		if typed == nil {
			return false
		}
		t = *typed
	default:
		return false
	}
	return t.Code == e.Code
}

// WithMessage 返回替换了提示信息的副本，错误码不变
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Code, typed.Message
	}
	var ptr *Errno
	if errors.As(err, &ptr) && ptr != nil {
		return ptr.Code, ptr.Message
	}
	return InternalServerError.Code, err.Error()
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrSessionInvalid   = Errno{Code: 10003, Message: "Session invalid"}
)

// Business Errors (20000+)
var (
	ErrInvalidAmount     = Errno{Code: 20101, Message: "Enter a number > 0"}
	ErrDonationPending   = Errno{Code: 20102, Message: "Donation already pending"}
	ErrNotConnected      = Errno{Code: 20201, Message: "Connect your wallet first"}
	ErrWalletUnavailable = Errno{Code: 20202, Message: "No compatible wallet available"}
	ErrRefreshPending    = Errno{Code: 20203, Message: "Refresh already in flight"}
	ErrProvider          = Errno{Code: 20301, Message: "Provider error"}
)

// Provider 把外部调用失败原样包装成 ErrProvider
func Provider(err error) Errno {
	if err == nil {
		return ErrProvider
	}
	return ErrProvider.WithMessage(err.Error())
}
