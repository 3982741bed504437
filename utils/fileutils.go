package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const tempDirPrefix = "mvn-deploy-temp-"

// Check if path points at a file.
// If path points at a symlink and `followSymlink == false`,
// function will return `true` regardless of the symlink target
func IsFileExists(path string, followSymlink bool) (bool, error) {
	fileInfo, err := GetFileInfo(path, followSymlink)
	if err != nil {
		if os.IsNotExist(err) { // If doesn't exist, don't omit an error
			return false, nil
		}
		return false, err
	}
	return !fileInfo.IsDir(), nil
}

// Check if path points at a directory.
// If path points at a symlink and `followSymlink == false`,
// function will return `false` regardless of the symlink target
func IsDirExists(path string, followSymlink bool) (bool, error) {
	fileInfo, err := GetFileInfo(path, followSymlink)
	if err != nil {
		if os.IsNotExist(err) { // If doesn't exist, don't omit an error
			return false, nil
		}
		return false, err
	}
	return fileInfo.IsDir(), nil
}

// Get the file info of the file in path.
// If path points at a symlink and `followSymlink == false`, return the file info of the symlink instead
func GetFileInfo(path string, followSymlink bool) (os.FileInfo, error) {
	if followSymlink {
		return os.Stat(path)
	}
	return os.Lstat(path)
}

func CreateDirIfNotExist(path string) error {
	exist, err := IsDirExists(path, true)
	if exist || err != nil {
		return err
	}
	return os.MkdirAll(path, 0755)
}

// WriteFileInDir writes content to dir/fileName and returns the written file path.
func WriteFileInDir(dir, fileName string, content []byte) (string, error) {
	filePath := filepath.Join(dir, fileName)
	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return "", err
	}
	return filePath, nil
}

// CreateTempDir creates a temporary directory and returns its path.
func CreateTempDir() (string, error) {
	tempDirBase := os.TempDir()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	return os.MkdirTemp(tempDirBase, tempDirPrefix+timestamp+"-*")
}

func RemoveTempDir(dirPath string) error {
	exists, err := IsDirExists(dirPath, false)
	if err != nil || !exists {
		return err
	}
	err = os.RemoveAll(dirPath)
	if err == nil {
		return nil
	}
	// Removing the directory may fail on Windows while another process holds a handle on it (golang.org/issue/30789).
	return removeDirContents(dirPath)
}

func removeDirContents(dirPath string) (err error) {
	d, err := os.Open(dirPath)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, d.Close())
	}()
	names, err := d.Readdirnames(-1)
	if err != nil {
		return
	}
	for _, name := range names {
		if err = os.RemoveAll(filepath.Join(dirPath, name)); err != nil {
			return
		}
	}
	return
}
