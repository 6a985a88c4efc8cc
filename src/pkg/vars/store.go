// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present the Wrangle Authors

// Package vars implements the project-scoped variable store backed by a
// wrangle.yaml file discovered by upward search.
package vars

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	goyaml "github.com/goccy/go-yaml"

	"github.com/wrangle-dev/wrangle/src/config"
	"github.com/wrangle-dev/wrangle/src/config/lang"
)

// Store holds the project variable document plus its merged-view cache for
// one invocation. Mutations write through to the backing file and invalidate
// the cache.
type Store struct {
	filePath string
	exists   bool

	cache  map[string]interface{}
	loaded bool
}

// Load searches upward from startDir for a wrangle.yaml file. An absent file
// yields an empty store, not an error; mutations will create the file next to
// startDir.
func Load(startDir string) (*Store, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for current := dir; ; current = filepath.Dir(current) {
		candidate := filepath.Join(current, config.VariablesFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return &Store{filePath: candidate, exists: true}, nil
		}
		if filepath.Dir(current) == current {
			break
		}
	}

	return &Store{filePath: filepath.Join(dir, config.VariablesFileName)}, nil
}

// FilePath returns the backing file location, which may not exist yet.
func (s *Store) FilePath() string {
	return s.filePath
}

// Get returns the value at a dotted path, e.g. "Azure.SubscriptionId".
func (s *Store) Get(path string) (interface{}, bool, error) {
	doc, err := s.document()
	if err != nil {
		return nil, false, err
	}

	var current interface{} = doc
	for _, key := range strings.Split(path, ".") {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false, nil
		}
		if current, ok = node[key]; !ok {
			return nil, false, nil
		}
	}
	return current, true, nil
}

// Add sets the value at a dotted path, creating intermediate nesting as
// needed, and writes the document back to disk.
func (s *Store) Add(path, value string) error {
	doc, err := s.document()
	if err != nil {
		return err
	}

	keys := strings.Split(path, ".")
	node := doc
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			node[key] = child
		}
		node = child
	}
	node[keys[len(keys)-1]] = value

	return s.save(doc)
}

// Remove deletes the value at a dotted path and prunes now-empty parents,
// then writes the document back to disk.
func (s *Store) Remove(path string) error {
	doc, err := s.document()
	if err != nil {
		return err
	}

	keys := strings.Split(path, ".")
	parents := make([]map[string]interface{}, 0, len(keys))
	node := doc
	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key].(map[string]interface{})
		if !ok {
			return fmt.Errorf("variable %q was not found", path)
		}
		parents = append(parents, node)
		node = child
	}
	if _, ok := node[keys[len(keys)-1]]; !ok {
		return fmt.Errorf("variable %q was not found", path)
	}
	delete(node, keys[len(keys)-1])

	// Prune empty parents from the leaf upward.
	for i := len(parents) - 1; i >= 0; i-- {
		if len(node) == 0 {
			delete(parents[i], keys[i])
		}
		node = parents[i]
	}

	return s.save(doc)
}

// UserVariables returns the user document flattened into dotted leaf paths.
func (s *Store) UserVariables() (map[string]string, error) {
	doc, err := s.document()
	if err != nil {
		return nil, err
	}

	flat := map[string]string{}
	flatten("", doc, flat)
	return flat, nil
}

// Paths returns the sorted dotted paths of every user-defined leaf.
func (s *Store) Paths() ([]string, error) {
	flat, err := s.UserVariables()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

// document returns the cached nested document, loading it on first use.
func (s *Store) document() (map[string]interface{}, error) {
	if s.loaded {
		return s.cache, nil
	}

	doc := map[string]interface{}{}
	if s.exists {
		content, err := os.ReadFile(s.filePath)
		if err != nil {
			return nil, fmt.Errorf(lang.ErrReadingFile, s.filePath, err)
		}
		if err := goyaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", s.filePath, err)
		}
	}

	s.cache = doc
	s.loaded = true
	return doc, nil
}

// save atomically rewrites the backing file (write-temp-then-rename) and
// invalidates the cache so the next read reflects the change.
func (s *Store) save(doc map[string]interface{}) error {
	content, err := goyaml.Marshal(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".wrangle-vars-*")
	if err != nil {
		return fmt.Errorf(lang.ErrWritingFile, s.filePath, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf(lang.ErrWritingFile, s.filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf(lang.ErrWritingFile, s.filePath, err)
	}
	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf(lang.ErrWritingFile, s.filePath, err)
	}

	s.exists = true
	s.loaded = false
	s.cache = nil
	return nil
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if child, ok := value.(map[string]interface{}); ok {
			flatten(path, child, out)
			continue
		}
		out[path] = fmt.Sprintf("%v", value)
	}
}
