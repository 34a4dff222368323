package models

import (
	"math/rand"
	"time"
)

// generateNumber creates a human-readable reference number, e.g. PO20250829-X4F9
func generateNumber(prefix string) string {
	return prefix + time.Now().Format("20060102") + "-" + randomString(4)
}

// randomString generates a random string of given length. Each character is
// drawn independently so records created in the same instant still get
// distinct suffixes.
func randomString(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
