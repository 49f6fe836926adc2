package util

import "errors"

// 资源不存在 -> 404
var (
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrChallengeNotFound    = errors.New("microrreto no encontrado")
	ErrProgressNotFound     = errors.New("progreso no encontrado")
	ErrGamificationNotFound = errors.New("registro de gamificación no encontrado")
	ErrCommunityNotFound    = errors.New("comunidad no encontrada")
	ErrNoReportData         = errors.New("no hay datos para el reporte")
)

// 唯一性 / 成员关系冲突 -> 400
var (
	ErrUserNameTaken      = errors.New("el usuario ya existe")
	ErrGamificationExists = errors.New("el usuario ya tiene un registro de gamificación")
	ErrAlreadyMember      = errors.New("el usuario ya pertenece a la comunidad")
	ErrNotMember          = errors.New("el usuario no pertenece a la comunidad")
)

var ErrInvalidFileType = errors.New("tipo de archivo no permitido")

// IsNotFound 判断是否属于“资源不存在”类错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrProgressNotFound) ||
		errors.Is(err, ErrGamificationNotFound) ||
		errors.Is(err, ErrCommunityNotFound) ||
		errors.Is(err, ErrNoReportData)
}

// IsConflict 判断是否属于唯一性冲突类错误
func IsConflict(err error) bool {
	return errors.Is(err, ErrUserNameTaken) ||
		errors.Is(err, ErrGamificationExists) ||
		errors.Is(err, ErrAlreadyMember) ||
		errors.Is(err, ErrNotMember)
}
