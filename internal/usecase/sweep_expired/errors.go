package sweep_expired

import "errors"

var (
	// ErrInternal возвращается, когда не удалось даже выбрать кандидатов
	ErrInternal = errors.New("sweep_expired: internal error")
)
