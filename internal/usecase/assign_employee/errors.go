package assign_employee

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_employee: invalid input data")

	// ErrInvalidTimeWindow возвращается при непарсящемся временном окне
	// (внутренняя ошибка парсера; usecase превращает её в пустой результат)
	ErrInvalidTimeWindow = errors.New("assign_employee: invalid time window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_employee: internal error")
)
