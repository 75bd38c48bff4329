package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DepartmentFile is the top-level structure of a department import file.
type DepartmentFile struct {
	Departments []DepartmentImport `json:"departments" yaml:"departments"`
}

// DepartmentImport defines one department's scheduling constraints.
type DepartmentImport struct {
	Name           string          `json:"name" yaml:"name"`
	Start          string          `json:"start" yaml:"start"`
	End            string          `json:"end" yaml:"end"`
	LectureMinutes int             `json:"lecture_minutes" yaml:"lecture_minutes"`
	Break          *BreakImport    `json:"break,omitempty" yaml:"break,omitempty"`
	Faculty        []FacultyImport `json:"faculty" yaml:"faculty"`
}

// BreakImport is the optional daily break. Omit it for no break.
type BreakImport struct {
	Start   string `json:"start" yaml:"start"`
	Minutes int    `json:"minutes" yaml:"minutes"`
}

// FacultyImport pairs a faculty member with the subject they teach.
type FacultyImport struct {
	Name    string `json:"name" yaml:"name"`
	Subject string `json:"subject" yaml:"subject"`
}

// LoadFile reads a department file. .json files are decoded as JSON;
// .yaml, .yml and anything else as YAML.
func LoadFile(path string) (*DepartmentFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses file contents. ext selects the format the way LoadFile does.
func Decode(data []byte, ext string) (*DepartmentFile, error) {
	var file DepartmentFile
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing department file: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing department file: %w", err)
		}
	}
	return &file, nil
}
