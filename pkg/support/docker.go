package support

import (
	"encoding/base64"
	"encoding/json"

	"github.com/docker/docker/api/types"

	"oc-setup-task/pkg/api"
)

// DockerAuth encodes the configured registry credentials into the header
// value the docker API expects. Empty credentials yield an empty header,
// which lets anonymous pulls through.
func DockerAuth() (string, error) {
	username := api.GetValueFor(api.DockerRegistryUsername)
	password := api.GetValueFor(api.DockerRegistryPassword)
	if username == "" && password == "" {
		return "", nil
	}
	authConfig := types.AuthConfig{
		Username: username,
		Password: password,
	}
	encoded, err := json.Marshal(authConfig)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(encoded), nil
}
