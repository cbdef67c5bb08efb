package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/waitgate/internal/config"
	"github.com/vk/waitgate/internal/ctxlog"
	"github.com/vk/waitgate/internal/fsutil"
	"github.com/vk/waitgate/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL scenario loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire scenario loading process. It is agnostic to
// whether each path is a single file or a directory of .hcl files. Steps
// keep file discovery order; at most one settings block is allowed across
// all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(".hcl", paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to discover scenario files: %w", err)
	}
	logger.Debug("Discovered scenario files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse scenario file %s: %w", file, diags)
		}

		var root schema.Scenario
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode scenario file %s: %w", file, diags)
		}

		if root.Settings != nil {
			if model.Settings != nil {
				return nil, fmt.Errorf("duplicate settings block in %s: only one settings block is allowed per scenario", file)
			}
			settings, err := l.translateSettings(root.Settings)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Settings = settings
		}

		for _, step := range root.Steps {
			translated, err := l.translateStep(step)
			if err != nil {
				return nil, fmt.Errorf("in %s: %w", file, err)
			}
			model.Steps = append(model.Steps, translated)
		}
	}

	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	logger.Debug("Scenario loading complete.", "steps", len(model.Steps))
	return model, nil
}
