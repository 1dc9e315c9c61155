// internal/app/system/csvutil/limits.go
package csvutil

// Size and row limits for resource tables.
const (
	MaxFileSize = 5 << 20 // 5 MB
	MaxRows     = 20000
)
