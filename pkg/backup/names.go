package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultName names an interactive backup after its first source folder
// and the current time.
func DefaultName(source string) string {
	return fmt.Sprintf("%s_%s", filepath.Base(filepath.Clean(source)), time.Now().Format("20060102150405"))
}

// DefaultServiceName names API backups after the serving process.
func DefaultServiceName() string {
	return fmt.Sprintf("backup_%d", os.Getpid())
}
