// Copyright (c) 2024, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/kubehealth/kubehealth/pkg/file"
)

// Save writes the report to the status file, creating parent
// directories as needed.  The JSON is indented and non-ASCII text is
// written as is so organization names stay readable.
func Save(result *StatusReport, outputPath string) error {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	absolutePath, err := file.AbsPath(outputPath)
	if err != nil {
		return err
	}
	if err := file.EnsureDir(filepath.Dir(absolutePath)); err != nil {
		return err
	}
	if err := os.WriteFile(absolutePath, buffer.Bytes(), 0644); err != nil {
		return err
	}

	log.Infof("Status JSON saved to %s", absolutePath)
	return nil
}

// Load reads a previously saved report.
func Load(path string) (*StatusReport, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	result := &StatusReport{}
	if err := json.Unmarshal(bytes, result); err != nil {
		return nil, err
	}
	return result, nil
}
