// Package config loads a pipeline document from disk and parses the CLI's
// key=value positional bindings. Document structure itself stays generic
// (map[string]any) — the Document Adapter in internal/pipeline is what gives
// it meaning; this package's job ends at producing that generic tree.
package config

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/shellpipe/internal/pipeline"
	shellpipeerrors "github.com/alexisbeaulieu97/shellpipe/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Load reads the pipeline document at path, substitutes `${name}` placeholders
// in the raw text against seed (the CLI's key=value bindings) before
// decoding, and unmarshals the result into a generic document tree.
func Load(path string, seed map[string]string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shellpipeerrors.NewParseError(path, 0, err)
	}

	view := pipeline.NewGlobalContext(seed)
	substituted, err := pipeline.Substitute(string(data), view, pipeline.PolicyIgnore, pipeline.DefaultSentinel)
	if err != nil {
		return nil, shellpipeerrors.NewParseError(path, 0, err)
	}

	var doc any
	if err := yaml.Unmarshal([]byte(substituted), &doc); err != nil {
		return nil, shellpipeerrors.NewParseError(path, extractLine(err), err)
	}

	return doc, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line := 0
	for _, c := range matches[1] {
		line = line*10 + int(c-'0')
	}
	return line
}
