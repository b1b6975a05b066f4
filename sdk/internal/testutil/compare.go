package testutil

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// AssertConfigEqual fails the test when want and got differ, printing both
// trees as YAML so nested differences are easy to spot.
func AssertConfigEqual(t *testing.T, want, got any) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	reportFailure(t, "config mismatch\nwant:\n%s\n got:\n%s", mustMarshalConfig(want), mustMarshalConfig(got))
}

func mustMarshalConfig(v any) string {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(data)
}
