package clients

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/google/uuid"
	v1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/sirupsen/logrus"

	"oc-setup-task/pkg/api"
	"oc-setup-task/pkg/install"
	"oc-setup-task/pkg/kubernetes"
	"oc-setup-task/pkg/mirror"
	"oc-setup-task/pkg/support"
)

// PreferredSetupStrategy picks the acquisition path from the task
// configuration.
func PreferredSetupStrategy() SetupStrategy {
	var preferredStrategy SetupStrategy
	switch api.GetValueFor(api.OcSetupStrategy) {
	case "mirror":
		preferredStrategy = InstallFromMirror(
			api.GetValueFor(api.OcVersion),
			api.Values.GetBool(api.OcUseLatestPatch))
	case "url":
		url := api.GetValueFor(api.OcDownloadURL)
		if url == "" {
			panic("download URL not specified")
		}
		preferredStrategy = InstallFromURL(url)
	case "cluster":
		preferredStrategy = DownloadFromCluster()
	case "image":
		preferredStrategy = ExtractFromImage(
			api.GetValueFor(api.OcCliImage),
			api.GetValueFor(api.OcCliImagePath))
	case "build":
		preferredStrategy = BuildFromGit(
			api.GetValueFor(api.OcGitURL),
			api.GetValueFor(api.OcGitBranch),
			"./cmd/oc")
	case "local":
		preferredStrategy = LocalBinary()
	default:
		preferredStrategy = LocalBinary()
	}
	return preferredStrategy
}

// LocalBinary uses an installation already present on the agent.
func LocalBinary() SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		logrus.Info("Checking local binary '", c.Name, "'")
		return exec.LookPath(c.Name)
	}
}

// InstallFromMirror resolves version against mirror.openshift.com and
// installs the matching release archive. An empty version means the
// latest stable release; a version that is itself an http(s) link is
// used as the download URL directly. A resolved candidate URL is probed
// with one HEAD request and replaced by the latest stable URL when the
// probe fails.
func InstallFromMirror(version string, latestPatch bool) SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		osType := api.GetValueFor(api.AgentOS)
		proxy := api.GetValueFor(api.OcProxy)

		catalog, err := mirror.LoadCatalog()
		if err != nil {
			return "", err
		}
		resolver := mirror.NewResolver(catalog)

		var link string
		switch {
		case version == "":
			latest, ok := resolver.LatestURL(osType)
			if !ok {
				return "", errors.New("Unable to determine latest oc download URL")
			}
			link = latest
		case strings.HasPrefix(version, "http://"), strings.HasPrefix(version, "https://"):
			link = version
		default:
			candidate, ok := resolver.VersionURL(version, osType, latestPatch)
			if !ok {
				return "", errors.New("Unable to determine oc download URL.")
			}
			if !support.Reachable(ctx, candidate, proxy) {
				logrus.Warn(candidate, " does not answer, falling back to the latest stable release")
				candidate, ok = resolver.LatestURL(osType)
				if !ok {
					return "", errors.New("Unable to determine latest oc download URL")
				}
			}
			link = candidate
		}

		return installFromLink(ctx, link, osType, proxy)
	}
}

// InstallFromURL installs from an explicit download URL, skipping
// version resolution.
func InstallFromURL(url string) SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		osType := api.GetValueFor(api.AgentOS)
		return installFromLink(ctx, url, osType, api.GetValueFor(api.OcProxy))
	}
}

// DownloadFromCluster asks a connected cluster for its advertised oc
// download link and installs from there.
func DownloadFromCluster() SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		logrus.Info("Getting binary '", c.Name, "' from the cluster console")
		link, err := kubernetes.ConsoleCLIDownload(ctx, c.Name, runtime.GOOS, runtime.GOARCH)
		if err != nil {
			return "", err
		}
		return installFromLink(ctx, link, api.GetValueFor(api.AgentOS), api.GetValueFor(api.OcProxy))
	}
}

func installFromLink(ctx context.Context, link, osType, proxy string) (string, error) {
	dir := api.GetValueFor(api.DownloadDir)
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "oc-setup")
	}
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:mnd
		return "", err
	}

	path, err := install.Fetch(ctx, link, dir, osType, proxy)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("Unable to download or extract oc binary.")
	}
	if err := install.PublishPath(path, osType); err != nil {
		return "", err
	}
	return path, nil
}

// ExtractFromImage pulls the CLI image and copies the oc binary out of a
// scratch container.
func ExtractFromImage(image string, path string) SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		logrus.Info("Extracting '", path, "' from ", image)
		dockerCli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		if err != nil {
			return "", err
		}

		registryAuth, err := support.DockerAuth()
		if err != nil {
			return "", err
		}
		pull, err := dockerCli.ImagePull(ctx, image, dockertypes.ImagePullOptions{RegistryAuth: registryAuth})
		if err != nil {
			return "", err
		}
		defer pull.Close()
		out := logrus.NewEntry(logrus.StandardLogger()).WithField("app", "docker").WriterLevel(logrus.DebugLevel)
		_, _ = io.Copy(out, pull)

		var cont container.ContainerCreateCreatedBody
		if cont, err = dockerCli.ContainerCreate(ctx, &container.Config{Image: image},
			nil,
			nil,
			&v1.Platform{OS: runtime.GOOS},
			uuid.New().String()); err != nil {
			return "", err
		}

		var tarOut io.ReadCloser
		if tarOut, _, err = dockerCli.CopyFromContainer(ctx, cont.ID, path); err != nil {
			return "", err
		}
		defer tarOut.Close()

		tmp, err := os.MkdirTemp("", c.Name)
		if err != nil {
			return "", err
		}
		if err := support.Untar(tarOut, tmp); err != nil {
			return "", err
		}

		binary := filepath.Join(tmp, filepath.Base(path))
		if err := os.Chmod(binary, 0755); err != nil { //nolint:mnd
			return "", err
		}
		return binary, nil
	}
}

// BuildFromGit clones the branch and builds the binary with the local Go
// toolchain.
func BuildFromGit(url string, branch string, buildingDirectory string) SetupStrategy {
	return func(ctx context.Context, c *cli) (string, error) {
		logrus.Info("Building '", c.Name, "' from git: ", url, ", branch ", branch)
		dir, _, err := support.GitClone(url, branch)
		if err != nil {
			return "", err
		}
		cmd := exec.CommandContext(ctx, "go", "build", "-C", dir, "-o", c.Name, buildingDirectory)
		cmd.Stdout = logrus.NewEntry(logrus.StandardLogger()).WithField("app", c.Name).WriterLevel(logrus.InfoLevel)
		cmd.Stderr = logrus.NewEntry(logrus.StandardLogger()).WithField("app", c.Name).WriterLevel(logrus.ErrorLevel)
		err = cmd.Run()

		return filepath.Join(dir, c.Name), err
	}
}
