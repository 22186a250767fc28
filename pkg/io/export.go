package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/genogram/pkg/errors"
	"github.com/matzehuels/genogram/pkg/family"
)

// WriteFamily encodes f in the English vocabulary. The output decodes back
// to f with [ReadFamily], placeholder marks included, so a normalized family
// can be stored and re-rendered without repeating repairs.
func WriteFamily(f family.Family, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode family")
	}
	return nil
}

// ExportFamily writes f to a JSON file at path.
func ExportFamily(f family.Family, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer out.Close()
	return WriteFamily(f, out)
}
