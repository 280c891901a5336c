package common

import (
	"fmt"
	"path"
	"strings"
)

const pathSeparator = "/"

// CorrectPath makes the resource path absolute and clean
func CorrectPath(resourcePath string) string {
	if strings.Index(resourcePath, pathSeparator) != 0 {
		resourcePath = fmt.Sprintf("%s%s", pathSeparator, resourcePath)
	}
	return path.Clean(resourcePath)
}

// Split separates the folder part and the filename of the resource path
func Split(resourcePath string) (string, string) {
	resourcePath = CorrectPath(resourcePath)
	if strings.Compare(resourcePath, pathSeparator) == 0 {
		return pathSeparator, ""
	}

	idx := strings.LastIndex(resourcePath, pathSeparator)
	if idx == 0 {
		return pathSeparator, resourcePath[1:]
	}

	return resourcePath[:idx], resourcePath[idx+1:]
}

// ValidateName checks the requested resource name is a file and does not try to
// walk out of the base directory
func ValidateName(name string) bool {
	if len(name) == 0 || strings.ContainsRune(name, 0) {
		return false
	}

	for _, part := range strings.Split(strings.ReplaceAll(name, "\\", pathSeparator), pathSeparator) {
		if strings.Compare(part, "..") == 0 {
			return false
		}
	}

	_, filename := Split(name)
	return len(filename) > 0
}
