package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/naologic/reflow/internal/entity"
	"github.com/naologic/reflow/internal/repository"
)

// FixtureLoader provides utilities for loading test fixture files.
type FixtureLoader struct {
	fixturesDir string
}

// NewFixtureLoader creates a new fixture loader pointing to the test
// fixtures directory, searched for relative to the current working
// directory.
func NewFixtureLoader() *FixtureLoader {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	possiblePaths := []string{
		filepath.Join(cwd, "fixtures"),
		filepath.Join(cwd, "tests", "fixtures"),
		filepath.Join(cwd, "..", "fixtures"),
		filepath.Join(cwd, "..", "..", "tests", "fixtures"),
	}

	for _, path := range possiblePaths {
		if stat, err := os.Stat(path); err == nil && stat.IsDir() {
			return &FixtureLoader{fixturesDir: path}
		}
	}

	return &FixtureLoader{fixturesDir: "."}
}

// NewFixtureLoaderWithDir creates a FixtureLoader with a custom fixtures
// directory.
func NewFixtureLoaderWithDir(dir string) *FixtureLoader {
	return &FixtureLoader{fixturesDir: dir}
}

// FixturesDir returns the fixtures directory path.
func (fl *FixtureLoader) FixturesDir() string {
	return fl.fixturesDir
}

// Exists checks if a fixture file exists.
func (fl *FixtureLoader) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(fl.fixturesDir, filename))
	return err == nil
}

// LoadJSONFixture loads and parses a JSON fixture file.
func (fl *FixtureLoader) LoadJSONFixture(filename string, v interface{}) error {
	path := filepath.Join(fl.fixturesDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal JSON fixture %s: %w", filename, err)
	}
	return nil
}

// LoadRawFixture loads the raw bytes of a fixture file.
func (fl *FixtureLoader) LoadRawFixture(filename string) ([]byte, error) {
	path := filepath.Join(fl.fixturesDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file %s: %w", filename, err)
	}
	return data, nil
}

// SaveJSONFixture saves data to a fixture file (useful for regenerating
// fixtures from a known-good scenario).
func (fl *FixtureLoader) SaveJSONFixture(filename string, v interface{}) error {
	path := filepath.Join(fl.fixturesDir, filename)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create fixture directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write fixture file %s: %w", filename, err)
	}
	return nil
}

// ReflowScenario is a named fixture exercising the document decoder and the
// core reflow pipeline end to end: a request document on disk, decoded
// through repository.DecodeReflowRequest. The scenario carries inputs only;
// the expected outcome is supplied by the test that runs it.
type ReflowScenario struct {
	Name                string
	WorkOrders          []*entity.WorkOrder
	WorkCenters         []*entity.WorkCenter
	ManufacturingOrders []*entity.ManufacturingOrder
}

// LoadReflowScenario loads a JSON fixture file in the document-decoder wire
// shape (the same shape accepted by POST /api/reflow) and decodes it into
// entities via repository.DecodeReflowRequest.
func (fl *FixtureLoader) LoadReflowScenario(name, filename string) (*ReflowScenario, error) {
	raw, err := fl.LoadRawFixture(filename)
	if err != nil {
		return nil, err
	}

	workOrders, workCenters, manufacturingOrders, err := repository.DecodeReflowRequest(raw)
	if err != nil {
		return nil, fmt.Errorf("decode reflow scenario %s: %w", filename, err)
	}

	return &ReflowScenario{
		Name:                name,
		WorkOrders:          workOrders,
		WorkCenters:         workCenters,
		ManufacturingOrders: manufacturingOrders,
	}, nil
}
