// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package discover walks the task root directory, parses task metadata, and
// merges everything into a single task registry.
package discover

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
	"github.com/wrangle-dev/wrangle/src/pkg/metadata"
	"github.com/wrangle-dev/wrangle/src/pkg/validate"
	"github.com/wrangle-dev/wrangle/src/types"
)

// metadataReadLimit bounds how many bytes of a task file are read for
// metadata. 30 lines fit comfortably in this window.
const metadataReadLimit = 16 * 1024

// excludePatterns skip test and spec files by filename convention.
var excludePatterns = []string{"*_test.sh", "*.spec.sh"}

// Options configures one discovery pass.
type Options struct {
	// ProjectRoot is the absolute project boundary
	ProjectRoot string
	// TaskDirectory is the task root, relative to ProjectRoot
	TaskDirectory string
	// BuiltIns are always-available descriptors, overridden by project tasks
	BuiltIns []types.TaskDescriptor
}

// Tasks discovers every eligible task file under the task root plus one level
// of namespace subdirectories and returns the merged registry. The task
// directory parameter must have been validated before this runs.
func Tasks(opts Options) (*types.Registry, error) {
	registry := types.NewRegistry()

	root := filepath.Join(opts.ProjectRoot, opts.TaskDirectory)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			// No task directory yet: only built-ins are available.
			registerBuiltIns(registry, opts.BuiltIns)
			return registry, nil
		}
		return nil, fmt.Errorf(lang.ErrReadingFile, root, err)
	}

	var rootTasks []types.TaskDescriptor
	var namespaces []string

	// os.ReadDir returns entries sorted by filename, which makes namespace
	// priority ("first discovered wins") stable across platforms.
	for _, entry := range entries {
		if entry.IsDir() {
			if err := validate.TaskName(entry.Name(), "namespace directory"); err != nil {
				registry.Warnf(lang.WarnInvalidNamespaceDir, entry.Name())
				continue
			}
			namespaces = append(namespaces, entry.Name())
			continue
		}
		if !eligibleTaskFile(entry.Name()) {
			continue
		}
		task, ok := parseTaskFile(registry, filepath.Join(root, entry.Name()), "")
		if ok {
			rootTasks = append(rootTasks, task)
		}
	}

	sort.Strings(namespaces)

	var namespacedTasks []types.TaskDescriptor
	for _, namespace := range namespaces {
		nsRoot := filepath.Join(root, namespace)
		nsEntries, err := os.ReadDir(nsRoot)
		if err != nil {
			return nil, fmt.Errorf(lang.ErrReadingFile, nsRoot, err)
		}
		for _, entry := range nsEntries {
			// Files two or more levels deep are deliberately not discovered.
			if entry.IsDir() || !eligibleTaskFile(entry.Name()) {
				continue
			}
			task, ok := parseTaskFile(registry, filepath.Join(nsRoot, entry.Name()), namespace)
			if ok {
				namespacedTasks = append(namespacedTasks, task)
			}
		}
	}

	merge(registry, rootTasks, namespacedTasks, opts.BuiltIns)
	return registry, nil
}

// merge builds the registry with the priority order root > namespace (first
// discovered wins) > built-ins.
func merge(registry *types.Registry, rootTasks, namespacedTasks, builtIns []types.TaskDescriptor) {
	for _, task := range rootTasks {
		for _, name := range task.Names {
			if _, taken := registry.Tasks[name]; taken {
				registry.Warnf("task name %q is defined more than once at the task root, keeping the first definition", name)
				continue
			}
			registry.Tasks[name] = task
		}
	}

	for _, task := range namespacedTasks {
		for _, name := range task.Names {
			resolved := task.Namespace + "-" + name
			if existing, taken := registry.Tasks[resolved]; taken {
				switch {
				case existing.Namespace == task.Namespace:
					registry.Warnf("task name %q is defined more than once in namespace %q, keeping the first definition", name, task.Namespace)
				case existing.Namespace != "":
					registry.Warnf(lang.WarnNamespaceCollision, resolved, task.Namespace, existing.Namespace)
				}
				// Root-level names always outrank namespaced ones, silently.
				continue
			}
			registry.Tasks[resolved] = task
		}
	}

	registerBuiltIns(registry, builtIns)
}

func registerBuiltIns(registry *types.Registry, builtIns []types.TaskDescriptor) {
	for _, task := range builtIns {
		for _, name := range task.Names {
			// Project-defined tasks override built-ins without a warning:
			// that collision is intentional customization.
			if _, taken := registry.Tasks[name]; !taken {
				registry.Tasks[name] = task
			}
		}
	}
}

// parseTaskFile reads one task file's metadata and returns its descriptor.
// Files with unparseable headers or invalid names are dropped with a warning
// so one bad file never aborts discovery.
func parseTaskFile(registry *types.Registry, path, namespace string) (types.TaskDescriptor, bool) {
	f, err := os.Open(path)
	if err != nil {
		registry.Warnf("unable to open task file %s: %s", path, err)
		return types.TaskDescriptor{}, false
	}
	defer f.Close()

	parsed, err := metadata.Parse(io.LimitReader(f, metadataReadLimit), filepath.Base(path))
	if err != nil {
		registry.Warnf("%s", err)
		return types.TaskDescriptor{}, false
	}

	for _, name := range parsed.Names {
		if err := validate.TaskName(name, "task metadata"); err != nil {
			registry.Warnf(lang.WarnInvalidTaskName, name, path, validate.TaskNamePattern)
			return types.TaskDescriptor{}, false
		}
	}

	if parsed.Source == types.NameSourceDerived && !config.SuppressNameWarnings() {
		registry.Warnf(lang.WarnFallbackNaming, path, parsed.Names[0])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		registry.Warnf("unable to resolve task file path %s: %s", path, err)
		return types.TaskDescriptor{}, false
	}

	return types.TaskDescriptor{
		Names:        parsed.Names,
		Description:  parsed.Description,
		Dependencies: parsed.Dependencies,
		ScriptPath:   abs,
		Namespace:    namespace,
		NameSource:   parsed.Source,
	}, true
}

func eligibleTaskFile(name string) bool {
	match, _ := doublestar.Match(config.TaskFilePattern, name)
	if !match {
		return false
	}
	for _, pattern := range excludePatterns {
		if excluded, _ := doublestar.Match(pattern, name); excluded {
			return false
		}
	}
	return !strings.HasPrefix(name, ".")
}
