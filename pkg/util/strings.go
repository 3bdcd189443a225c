package util

// MaxLogBodySize is the default maximum body size carried in errors and
// logs (4KB).
const MaxLogBodySize = 4 * 1024

// TruncateBody truncates a string to maxSize bytes, appending
// "...(truncated)" if truncated. If maxSize <= 0, uses MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}
