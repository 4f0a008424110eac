// Package output provides catalog serializers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/StinkyLord/boardcfg/internal/model"
	"github.com/StinkyLord/boardcfg/internal/scanner"
)

// catalogDocument is the top-level JSON document written by WriteCatalog.
type catalogDocument struct {
	Tool       toolInfo              `json:"tool"`
	Timestamp  string                `json:"timestamp"`
	Sources    []string              `json:"sources"`
	Skipped    []string              `json:"skipped,omitempty"`
	Duplicates []string              `json:"duplicates,omitempty"`
	Platforms  []*model.PlatformNode `json:"platforms"`
}

type toolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// WriteCatalog serialises the scan result as JSON and writes it to outputPath.
// If outputPath is "-", it writes to stdout.
//
// Example output:
//
//	{
//	  "platforms": [
//	    {
//	      "package": "arduino",
//	      "architecture": "avr",
//	      "boards": [
//	        {
//	          "id": "nano",
//	          "key": "arduino:avr:nano",
//	          "name": "Arduino Nano",
//	          "buildConfig": "arduino:avr:nano:cpu=atmega328",
//	          "configItems": [ ... ]
//	        }
//	      ]
//	    }
//	  ]
//	}
func WriteCatalog(result *scanner.Result, outputPath, toolVersion string) error {
	if outputPath == "-" {
		return EncodeCatalog(os.Stdout, result, toolVersion)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create %q: %w", outputPath, err)
	}
	if err := EncodeCatalog(f, result, toolVersion); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeCatalog writes the catalog document to w as indented JSON.
func EncodeCatalog(w io.Writer, result *scanner.Result, toolVersion string) error {
	doc := catalogDocument{
		Tool:       toolInfo{Name: "boardcfg", Version: toolVersion},
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Sources:    result.SourcesUsed,
		Skipped:    result.SourcesSkipped,
		Duplicates: result.Duplicates,
		Platforms:  []*model.PlatformNode{},
	}
	if doc.Sources == nil {
		doc.Sources = []string{}
	}
	if result.Catalog != nil {
		if tree := result.Catalog.Tree(); tree != nil {
			doc.Platforms = tree
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal catalog JSON: %w", err)
	}
	return nil
}
