package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// UnitToByte converts a [0,1] channel value to 0..255
func UnitToByte(v float32) uint8 {
	return uint8(Clamp(float64(v), 0, 1)*255 + 0.5)
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// CreateDirIfNotExist creates a directory if it doesn't exist
func CreateDirIfNotExist(dir string) error {
	if !DirExists(dir) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}
	return nil
}

// CreateParentDir creates the directory that will hold path
func CreateParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return CreateDirIfNotExist(dir)
}

// LowerExt returns the lower-cased extension of filename, including the dot
func LowerExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
