package util

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Mod is the always-positive modulo, Mod(-1, 12) == 11.
func Mod[A constraints.Signed](num A, n A) A {
	return ((num % n) + n) % n
}

// GetKeys returns the keys of m in ascending order.
func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Ordered](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) A {
	var res A
	for _, n := range nums {
		res += n
	}
	return res
}

// FirstPositive returns the first value greater than zero, or zero.
func FirstPositive[A constraints.Integer](nums ...A) A {
	for _, v := range nums {
		if v > 0 {
			return v
		}
	}
	return 0
}

// CreateJSON writes data to filename, creating parent directories as needed.
func CreateJSON(filename string, data any) error {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return errors.Wrapf(err, "could not encode %v", filename)
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return errors.Wrapf(err, "could not create directory for %v", filename)
		}
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "write failed for %v", filename)
	}
	return nil
}

func ReadJSON[A any](path string) (A, error) {
	var data A
	dat, err := os.ReadFile(path)
	if err != nil {
		return data, errors.Wrapf(err, "could not read %v", path)
	}
	if err := json.Unmarshal(dat, &data); err != nil {
		return data, errors.Wrapf(err, "could not decode %v", path)
	}
	return data, nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
