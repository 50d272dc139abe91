package install

import (
	"errors"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// PublishPath prepends the executable's directory to the process PATH so
// later pipeline steps find oc without an absolute path. Separators
// follow the agent OS identifier, not the host the task compiles on.
func PublishPath(execPath, osType string) error {
	if execPath == "" {
		return errors.New("path cannot be null or empty")
	}

	pathSep, listSep := "/", ":"
	if osType == "Windows_NT" {
		pathSep, listSep = `\`, ";"
	}

	idx := strings.LastIndex(execPath, pathSep)
	if idx < 0 {
		return errors.New("cannot determine parent directory of " + execPath)
	}
	dir := execPath[:idx]

	logrus.Info("Adding ", dir, " to PATH")
	return os.Setenv("PATH", dir+listSep+os.Getenv("PATH"))
}
