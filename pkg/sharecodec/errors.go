package sharecodec

import (
	"errors"
	"fmt"
)

// UserMessage her çözme hatasında son kullanıcıya gösterilen tek mesajdır.
const UserMessage = "Unable to open this card — the link may be invalid or expired."

// ErrMalformedToken tüm çözme hataları için errors.Is hedefi.
var ErrMalformedToken = errors.New("sharecodec: malformed token")

// Stage hatanın hangi adımda oluştuğu (sadece teşhis için).
type Stage string

const (
	StageFormat  Stage = "format"
	StagePadding Stage = "padding"
	StageBase64  Stage = "base64"
	StageInflate Stage = "inflate"
	StageParse   Stage = "parse"
	StageShape   Stage = "shape"
)

// DecodeError çözme hatasının nedenini loglar için taşır.
type DecodeError struct {
	Stage  Stage
	Reason string
	Err    error
}

func newDecodeError(stage Stage, reason string, err error) *DecodeError {
	return &DecodeError{Stage: stage, Reason: reason, Err: err}
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sharecodec: %s: %s: %v", e.Stage, e.Reason, e.Err)
	}
	return fmt.Sprintf("sharecodec: %s: %s", e.Stage, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrMalformedToken }

// UserMessage nedeni ayırt etmeden kullanıcı mesajını döndürür.
func (e *DecodeError) UserMessage() string { return UserMessage }
