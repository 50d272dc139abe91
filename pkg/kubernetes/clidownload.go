package kubernetes

import (
	"context"
	"strings"

	consoleV1 "github.com/openshift/api/console/v1"
	controller "sigs.k8s.io/controller-runtime/pkg/client"
)

// ConsoleCLIDownload resolves the download link a connected cluster
// advertises for the named CLI, picking the variant matching os and
// arch. Returns an empty link when no variant matches.
func ConsoleCLIDownload(ctx context.Context, cli string, os string, arch string) (string, error) {
	cld := &consoleV1.ConsoleCLIDownload{}
	if err := GetClient().Get(ctx, controller.ObjectKey{Name: cli}, cld); err != nil {
		return "", err
	}

	var target string
	for _, link := range cld.Spec.Links {
		if strings.Contains(link.Href, "clients/"+os+"/") && strings.Contains(link.Href, arch) {
			target = link.Href
		}
	}
	return target, nil
}
