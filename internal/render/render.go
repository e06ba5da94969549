// Package render writes a Result in the requested output format.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	symerr "github.com/phobologic/symref/internal/errors"
	"github.com/phobologic/symref/internal/model"
	"github.com/phobologic/symref/internal/toon"
)

// Output formats.
const (
	JSON = "json"
	YAML = "yaml"
	TOON = "toon"
)

// Write renders res to w as format.
func Write(w io.Writer, res *model.Result, format string) error {
	switch format {
	case JSON, "":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case TOON:
		_, err := fmt.Fprintln(w, toon.Encode(res))
		return err
	default:
		return symerr.New(symerr.Validation, "unknown format %q", format)
	}
}
