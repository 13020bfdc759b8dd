// Package materials holds the 3D-printing material catalog used to turn
// an estimated volume into a mass. Densities are grams per cubic
// centimeter.
package materials

import "fmt"

// DefaultID is the material assumed when a caller picks none (PLA).
const DefaultID = 2

// Material is one entry of the material catalog.
type Material struct {
	ID      uint    `gorm:"primaryKey" json:"id" yaml:"id"`
	Name    string  `gorm:"uniqueIndex;size:64" json:"name" yaml:"name"`
	Density float64 `json:"density_g_cm3" yaml:"density"`
}

// UnknownMaterialError reports a lookup for a material that does not
// exist in the catalog.
type UnknownMaterialError struct {
	ID   uint
	Name string
}

func (e *UnknownMaterialError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown material %q", e.Name)
	}
	return fmt.Sprintf("unknown material id %d", e.ID)
}

// BuiltIn returns the built-in catalog of common 3D-printing materials.
func BuiltIn() []Material {
	return []Material{
		{ID: 1, Name: "ABS", Density: 1.04},
		{ID: 2, Name: "PLA", Density: 1.25},
		{ID: 3, Name: "3k CFRP", Density: 1.79},
		{ID: 4, Name: "Plexiglass", Density: 1.18},
		{ID: 5, Name: "Alumide", Density: 1.36},
		{ID: 6, Name: "Aluminum", Density: 2.68},
		{ID: 7, Name: "Brass", Density: 8.6},
		{ID: 8, Name: "Bronze", Density: 9.0},
		{ID: 9, Name: "Copper", Density: 9.0},
		{ID: 10, Name: "Gold_14K", Density: 13.6},
		{ID: 11, Name: "Gold_18K", Density: 15.6},
		{ID: 12, Name: "Polyamide_MJF", Density: 1.01},
		{ID: 13, Name: "Polyamide_SLS", Density: 0.95},
		{ID: 14, Name: "Rubber", Density: 1.2},
		{ID: 15, Name: "Silver", Density: 10.26},
		{ID: 16, Name: "Steel", Density: 7.86},
		{ID: 17, Name: "Titanium", Density: 4.41},
		{ID: 18, Name: "Resin", Density: 1.2},
	}
}

// ByID finds a material by id in a catalog slice
func ByID(catalog []Material, id uint) (Material, error) {
	for _, m := range catalog {
		if m.ID == id {
			return m, nil
		}
	}
	return Material{}, &UnknownMaterialError{ID: id}
}

// ByName finds a material by name in a catalog slice
func ByName(catalog []Material, name string) (Material, error) {
	for _, m := range catalog {
		if m.Name == name {
			return m, nil
		}
	}
	return Material{}, &UnknownMaterialError{Name: name}
}
