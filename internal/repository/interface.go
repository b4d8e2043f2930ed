// File: internal/repository/interface.go
package repository

// Logger is the logging contract shared by the gorm repositories.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Page bounds shared by listing queries.
const (
	MaxPageSize = 100
)

// ClampPage keeps limit within [1, MaxPageSize] (falling back to def) and offset >= 0.
func ClampPage(limit, offset, def int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
