package api

import (
	"runtime"

	"github.com/spf13/viper"
)

const (
	// OcVersion is the requested oc release, e.g. "4.11", "v3.11.0" or a
	// direct download URL. Empty means "latest stable".
	OcVersion = "OC_VERSION"
	// OcDownloadURL overrides version resolution with an explicit URL.
	OcDownloadURL = "OC_DOWNLOAD_URL"
	// OcSetupStrategy selects how the binary is acquired:
	// mirror, url, cluster, image, build or local.
	OcSetupStrategy = "OC_SETUP_STRATEGY"
	// OcUseLatestPatch asks the mirror strategy to replace the requested
	// major.minor line with its newest known patch release.
	OcUseLatestPatch = "OC_USE_LATEST_PATCH"
	// DownloadDir is where release archives are cached and extracted.
	DownloadDir = "DOWNLOAD_DIR"
	// AgentOS is the build agent OS identifier: Linux, Darwin or Windows_NT.
	AgentOS = "AGENT_OS"
	// OcProxy routes the download and the URL probe through a proxy.
	OcProxy = "OC_PROXY"
	// OcArgs is a raw command line executed after setup, with ${NAME}
	// references resolved against the agent environment.
	OcArgs = "OC_ARGS"

	// OcCliImage is the image the "image" strategy extracts oc from.
	OcCliImage = "OC_CLI_IMAGE"
	// OcCliImagePath is the path of the oc binary inside that image.
	OcCliImagePath = "OC_CLI_IMAGE_PATH"
	// OcGitURL and OcGitBranch feed the "build" strategy.
	OcGitURL    = "OC_GIT_URL"
	OcGitBranch = "OC_GIT_BRANCH"

	// 'DockerRegistry*' - Login credentials for 'registry.redhat.io'.
	DockerRegistryUsername = "REGISTRY_USERNAME"
	DockerRegistryPassword = "REGISTRY_PASSWORD"
)

var Values *viper.Viper

func init() {
	Values = viper.New()

	Values.SetDefault(OcSetupStrategy, "local")
	Values.SetDefault(AgentOS, DefaultAgentOS())
	Values.SetDefault(OcCliImage, "registry.redhat.io/openshift4/ose-cli:latest")
	Values.SetDefault(OcCliImagePath, "/usr/bin/oc")
	Values.SetDefault(OcGitURL, "https://github.com/openshift/oc.git")
	Values.SetDefault(OcGitBranch, "master")
	Values.AutomaticEnv()
}

func GetValueFor(key string) string {
	return Values.GetString(key)
}

// DefaultAgentOS maps the runtime platform onto the identifiers build
// agents report: Linux, Darwin or Windows_NT.
func DefaultAgentOS() string {
	switch runtime.GOOS {
	case "windows":
		return "Windows_NT"
	case "darwin":
		return "Darwin"
	default:
		return "Linux"
	}
}
