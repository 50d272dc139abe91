package clients

import (
	"context"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"

	"oc-setup-task/pkg/support"
)

type cli struct {
	Name           string
	pathToCLI      string
	setupStrategy  SetupStrategy
	versionCommand string
}

// SetupStrategy acquires the binary and returns its path.
type SetupStrategy func(context.Context, *cli) (string, error)

// passthroughEnv is what subprocesses inherit from the agent.
var passthroughEnv = []string{"PATH", "HOME", "KUBECONFIG", "HTTPS_PROXY", "HTTP_PROXY", "NO_PROXY", "SSL_CERT_DIR", "SSL_CERT_FILE"}

func subprocessEnv() []string {
	envs := make([]string, 0, len(passthroughEnv))
	for _, name := range passthroughEnv {
		if val, ok := os.LookupEnv(name); ok {
			envs = append(envs, name+"="+val)
		}
	}
	return envs
}

func (c *cli) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.pathToCLI, args...) // #nosec G204 - the task exists to run caller-supplied arguments
	cmd.Env = subprocessEnv()

	cmd.Stdout = logrus.NewEntry(logrus.StandardLogger()).WithField("app", c.Name).WriterLevel(logrus.InfoLevel)
	cmd.Stderr = logrus.NewEntry(logrus.StandardLogger()).WithField("app", c.Name).WriterLevel(logrus.ErrorLevel)

	return cmd
}

// CommandLine builds a command from a raw line: ${NAME} references are
// resolved against the current environment, then the line is split with
// shell-like tokenization.
func (c *cli) CommandLine(ctx context.Context, rawLine string) (*exec.Cmd, error) {
	args, err := support.InterpolateArgs(rawLine, support.Environ())
	if err != nil {
		return nil, err
	}
	return c.Command(ctx, args...), nil
}

func (c *cli) CommandOutput(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.pathToCLI, args...) // #nosec G204
	cmd.Env = subprocessEnv()

	output, err := cmd.CombinedOutput()
	entry := logrus.WithField("app", c.Name)
	if err != nil {
		entry.Error(string(output))
		return nil, err
	}

	entry.Info(string(output))

	return output, err
}

func (c *cli) WithSetupStrategy(strategy SetupStrategy) *cli {
	c.setupStrategy = strategy
	return c
}

func (c *cli) PathToCLI() string {
	return c.pathToCLI
}

func (c *cli) Setup(ctx context.Context) error {
	var err error
	c.pathToCLI, err = c.setupStrategy(ctx, c)
	if err == nil {
		if c.versionCommand != "" {
			logrus.Info("Done. Using '", c.pathToCLI, "' with version:")
			_, _ = c.CommandOutput(ctx, c.versionCommand)
		}
	} else {
		logrus.Error("Failed due to\n   ", err)
	}
	return err
}

func (c *cli) Destroy(_ context.Context) error {
	return nil
}
