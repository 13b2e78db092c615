package utils

import (
	"math/rand"
	"os"
	"path/filepath"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func GenerateRandomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// EnsureLogDir creates the directory an output file will land in. bsub does
// not create it and silently drops the log otherwise.
func EnsureLogDir(outputFile string) error {
	dir := filepath.Dir(outputFile)
	if dir == "." || dir == "/" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
