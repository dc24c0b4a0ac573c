// Package loader resolves model and auxiliary configuration documents for the
// client runtime.
//
// Two kinds of documents are served. Service models describe a service's
// operations and shapes and are resolved by logical service name. Auxiliary
// documents (pagination and waiter configuration) are resolved by data path,
// built as "aws/<service>/<apiVersion>.<kind>".
//
// Absence of an auxiliary document is a normal condition, not a fault: the
// file loader signals it with DataNotFoundError and the client turns it into
// an empty capability set. Any other loader failure propagates unchanged.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Loader is the resolution contract consumed by the client factory.
type Loader interface {
	// LoadServiceModel returns the raw model document for the given logical
	// service name. It fails with UnknownServiceError when the service is
	// not known.
	LoadServiceModel(service string) ([]byte, error)
	// LoadData returns the raw document at the given slash-separated data
	// path (without extension). It fails with DataNotFoundError when no such
	// document exists.
	LoadData(path string) ([]byte, error)
}

// FileLoader serves documents from one or more data directories on disk.
// Directories are searched in order; the first hit wins, so earlier
// directories can shadow later ones.
//
// Layout inside a data directory:
//
//	aws/<service>/<apiVersion>.api.json
//	aws/<service>/<apiVersion>.paginators.json
//	aws/<service>/<apiVersion>.waiters.json
type FileLoader struct {
	searchPaths []string
}

const modelSuffix = ".api.json"

// NewFileLoader builds a loader over the given search directories.
func NewFileLoader(dirs ...string) *FileLoader {
	return &FileLoader{searchPaths: append([]string(nil), dirs...)}
}

// LoadData reads "<dir>/<path>.json" from the first search directory that has
// it. The path uses forward slashes regardless of platform.
func (l *FileLoader) LoadData(path string) ([]byte, error) {
	for _, dir := range l.searchPaths {
		full := filepath.Join(dir, filepath.FromSlash(path)+".json")
		data, err := os.ReadFile(full)
		if err == nil {
			zap.L().Debug("loaded data file", zap.String("path", full))
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read data file %s: %w", full, err)
		}
	}
	return nil, &DataNotFoundError{Path: path}
}

// LoadServiceModel loads the newest API version of the named service.
// Versions are date-stamped (e.g. "2014-01-01"), so the lexicographically
// greatest file name is the latest version.
func (l *FileLoader) LoadServiceModel(service string) ([]byte, error) {
	version, err := l.latestVersion(service)
	if err != nil {
		return nil, err
	}
	data, err := l.LoadData("aws/" + service + "/" + version + ".api")
	if err != nil {
		// The directory listing said the file exists; treat a race here as
		// an unknown service rather than a distinct fault.
		if IsDataNotFound(err) {
			return nil, &UnknownServiceError{Service: service}
		}
		return nil, err
	}
	return data, nil
}

// APIVersions lists the available model versions for a service, oldest first.
func (l *FileLoader) APIVersions(service string) ([]string, error) {
	seen := map[string]bool{}
	for _, dir := range l.searchPaths {
		entries, err := os.ReadDir(filepath.Join(dir, "aws", service))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("list models for %s: %w", service, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasSuffix(name, modelSuffix) {
				seen[strings.TrimSuffix(name, modelSuffix)] = true
			}
		}
	}
	if len(seen) == 0 {
		return nil, &UnknownServiceError{Service: service}
	}

	versions := make([]string, 0, len(seen))
	for v := range seen {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func (l *FileLoader) latestVersion(service string) (string, error) {
	versions, err := l.APIVersions(service)
	if err != nil {
		return "", err
	}
	return versions[len(versions)-1], nil
}
