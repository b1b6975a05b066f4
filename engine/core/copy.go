package core

import (
	"fmt"

	"github.com/mohae/deepcopy"
)

// DeepCopy returns a copy of v that shares no maps, slices or pointers with it.
// A nil map[string]any becomes an empty map so data trees are always writable.
func DeepCopy[T any](v T) (T, error) {
	var zero T
	if tree, ok := any(v).(map[string]any); ok {
		copied, err := copyTree(tree)
		if err != nil {
			return zero, err
		}
		return any(copied).(T), nil
	}
	copied := deepcopy.Copy(v)
	if copied == nil {
		return zero, nil
	}
	result, ok := copied.(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast copied value to type %T", zero)
	}
	return result, nil
}

// CopyTree is DeepCopy for data trees. It never fails: a tree that cannot be
// copied is returned as an empty map.
func CopyTree(tree map[string]any) map[string]any {
	copied, err := copyTree(tree)
	if err != nil {
		return make(map[string]any)
	}
	return copied
}

func copyTree(tree map[string]any) (map[string]any, error) {
	if tree == nil {
		return make(map[string]any), nil
	}
	copied, ok := deepcopy.Copy(tree).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("failed to copy data tree")
	}
	return copied, nil
}
