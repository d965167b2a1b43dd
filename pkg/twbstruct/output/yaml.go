package output

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes v to YAML. Values go through their JSON form first so
// YAML keys match the json tags of the models.
func ToYAML(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}
