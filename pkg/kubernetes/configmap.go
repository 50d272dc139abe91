package kubernetes

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	"oc-setup-task/pkg/support"
)

// propertyRe matches one '-key value' pair; a double-quoted value with
// whitespace counts as a single value, quotes included in the match.
var propertyRe = regexp.MustCompile(`-(\S+)\s+("[^"]*"|\S+)`)

// ConfigMapProperty is one ordered key/value pair parsed from a
// flag-style properties line.
type ConfigMapProperty struct {
	Key   string
	Value string
}

// ParseProperties reads '-key value' pairs from line, strips surrounding
// double quotes and resolves ${NAME} references against env. An empty
// line yields no pairs.
func ParseProperties(line string, env map[string]string) []ConfigMapProperty {
	matches := propertyRe.FindAllStringSubmatch(line, -1)
	properties := make([]ConfigMapProperty, 0, len(matches))
	for _, m := range matches {
		value := strings.TrimPrefix(strings.TrimSuffix(m[2], `"`), `"`)
		properties = append(properties, ConfigMapProperty{
			Key:   m[1],
			Value: support.ExpandVariables(value, env),
		})
	}
	return properties
}

// BuildPatchCommand renders the oc arguments that patch the data section
// of the named ConfigMap. Pair order in the payload follows the
// properties line, and the namespace flag is added only when a namespace
// is given. An empty properties line patches an empty data object.
func BuildPatchCommand(resource, propertiesLine, namespace string, env map[string]string) string {
	var payload strings.Builder
	payload.WriteString(`{"data":{`)
	for i, p := range ParseProperties(propertiesLine, env) {
		if i > 0 {
			payload.WriteString(",")
		}
		payload.WriteString(strconv.Quote(p.Key))
		payload.WriteString(":")
		payload.WriteString(strconv.Quote(p.Value))
	}
	payload.WriteString("}}")

	command := fmt.Sprintf("patch configmap %s -p '%s'", resource, payload.String())
	if namespace != "" {
		command += " -n " + namespace
	}
	return command
}

// PatchConfigMapData applies the same data patch straight through the
// API, for callers that hold cluster access and do not need to shell out
// to oc.
func PatchConfigMapData(ctx context.Context, namespace, name string, data map[string]string) error {
	payload, err := json.Marshal(struct {
		Data map[string]string `json:"data"`
	}{Data: data})
	if err != nil {
		return err
	}
	_, err = GetClient().CoreV1().ConfigMaps(namespace).Patch(
		ctx, name, types.StrategicMergePatchType, payload, metav1.PatchOptions{})
	return err
}
