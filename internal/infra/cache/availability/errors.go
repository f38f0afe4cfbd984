package availability

import "errors"

var (
	// ErrEncode возвращается при ошибке сериализации записи
	ErrEncode = errors.New("availability.cache: failed to encode entry")

	// ErrDecode возвращается, когда в кэше лежит повреждённая запись
	ErrDecode = errors.New("availability.cache: failed to decode entry")

	// ErrRedis возвращается при ошибках Redis
	ErrRedis = errors.New("availability.cache: redis error")
)
