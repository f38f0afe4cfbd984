package dayoff

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("dayoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("dayoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("dayoff.repository: failed to scan row")

	// ErrInvalidRule возвращается, когда в таблице лежит правило с некорректными полями
	ErrInvalidRule = errors.New("dayoff.repository: invalid stored rule")
)
