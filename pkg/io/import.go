package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/starpath/pkg/errors"
)

// ReadJSON decodes a JSON star map from r.
//
// ReadJSON does not validate the document and does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
	}
	return d, nil
}

// ReadTOML decodes a TOML star map from r.
//
// ReadTOML does not validate the document and does not close r.
func ReadTOML(r io.Reader) (Document, error) {
	var d Document
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
	}
	return d, nil
}

// ImportFile reads the star map at path, choosing the decoder by extension,
// and validates it.
func ImportFile(path string) (Document, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	read := ReadJSON
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		read = ReadTOML
	}

	d, err := read(f)
	if err != nil {
		return Document{}, err
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}
