package calendar

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда персистентная конфигурация
	// календаря отсутствует (используются значения из config.toml)
	ErrCalendarNotFound = errors.New("calendar.repository: calendar config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
