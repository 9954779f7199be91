package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Path: path, Detail: "does not exist"}
		}
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("stat: %v", err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Path: path, Detail: "is not a directory"}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("insufficient permissions: %v", err)}
	}
	return Result{Name: name, Path: path, Passed: true, Detail: "read/write ok"}
}

// CheckRegularFile verifies that path is an existing, readable and writable
// regular file.
func CheckRegularFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Path: path, Detail: "does not exist"}
		}
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("stat: %v", err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Path: path, Detail: "is not a regular file"}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Path: path, Detail: fmt.Sprintf("insufficient permissions: %v", err)}
	}
	return Result{Name: name, Path: path, Passed: true, Detail: "read/write ok"}
}
