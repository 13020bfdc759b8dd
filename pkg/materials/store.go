package materials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store persists the material catalog in a sqlite database so that
// deployments can extend or adjust the built-in table without a
// rebuild.
type Store struct {
	db *gorm.DB
}

// Open opens the catalog database, creating it and seeding the built-in
// materials on first run.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open material database: %w", err)
	}

	if err := db.AutoMigrate(&Material{}); err != nil {
		return nil, fmt.Errorf("failed to migrate material schema: %w", err)
	}

	store := &Store{db: db}
	if err := store.seed(); err != nil {
		return nil, fmt.Errorf("failed to seed material catalog: %w", err)
	}
	return store, nil
}

// seed inserts the built-in catalog into an empty database.
func (s *Store) seed() error {
	var count int64
	if err := s.db.Model(&Material{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	builtin := BuiltIn()
	return s.db.Create(&builtin).Error
}

// List returns the full catalog ordered by id
func (s *Store) List() ([]Material, error) {
	var catalog []Material
	if err := s.db.Order("id").Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return catalog, nil
}

// ByID looks up one material by id
func (s *Store) ByID(id uint) (Material, error) {
	var m Material
	err := s.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Material{}, &UnknownMaterialError{ID: id}
	}
	if err != nil {
		return Material{}, fmt.Errorf("failed to look up material %d: %w", id, err)
	}
	return m, nil
}

// ByName looks up one material by name
func (s *Store) ByName(name string) (Material, error) {
	var m Material
	err := s.db.Where("name = ?", name).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Material{}, &UnknownMaterialError{Name: name}
	}
	if err != nil {
		return Material{}, fmt.Errorf("failed to look up material %q: %w", name, err)
	}
	return m, nil
}

// Upsert inserts a material or, when the name already exists, updates
// its density.
func (s *Store) Upsert(m Material) error {
	if m.Density < 0 {
		return fmt.Errorf("material %q: density must be non-negative, got %g", m.Name, m.Density)
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"density"}),
	}).Create(&m).Error
}

// overridesFile is the on-disk shape of a density override file.
type overridesFile struct {
	Materials []struct {
		Name    string  `yaml:"name"`
		Density float64 `yaml:"density"`
	} `yaml:"materials"`
}

// ApplyOverrides reads a YAML override file and upserts each entry into
// the catalog. The serve command calls this on startup and again
// whenever the file changes.
func (s *Store) ApplyOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read overrides file: %w", err)
	}

	var overrides overridesFile
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse overrides file: %w", err)
	}

	for _, entry := range overrides.Materials {
		if err := s.Upsert(Material{Name: entry.Name, Density: entry.Density}); err != nil {
			return err
		}
	}
	return nil
}
