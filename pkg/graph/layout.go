package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kinview/kinview/pkg/errors"
)

// MarshalLayout encodes l as indented JSON, the format layout files and
// cache entries share.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout. A document without a
// focus or without boxes is rejected with INVALID_FORMAT.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Focus == "" {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout has no focus")
	}
	if len(l.Boxes) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must contain boxes")
	}
	return l, nil
}

// WriteLayout writes l as JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteLayoutFile saves l to path, replacing any existing file.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(l, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// ReadLayoutFile loads a layout saved by WriteLayoutFile.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	l, err := UnmarshalLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
