package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mastercraft/stlmass/pkg/analysis"
	"github.com/mastercraft/stlmass/pkg/materials"
	"github.com/mastercraft/stlmass/pkg/preview"
	"github.com/mastercraft/stlmass/pkg/stl"
)

// calculateResponse mirrors the reference API payload: signed volume
// and mass, as computed. A wound-inside-out mesh reports negative
// values, which is the caller's signal of bad winding.
type calculateResponse struct {
	MaterialID     uint    `json:"material_id"`
	Material       string  `json:"material"`
	TotalVolumeCm3 float64 `json:"total_volume_cm3"`
	TotalMassG     float64 `json:"total_mass_g"`
	Triangles      int     `json:"triangles"`
	ImageURL       string  `json:"image_url"`
}

// Index serves the upload page.
func (s *Server) Index(c *gin.Context) {
	catalog, err := s.store.List()
	if err != nil {
		c.String(http.StatusInternalServerError, "material catalog unavailable")
		return
	}

	c.HTML(http.StatusOK, "upload", gin.H{
		"Materials": catalog,
		"DefaultID": uint(materials.DefaultID),
	})
}

// Materials returns the material catalog as JSON.
func (s *Server) Materials(c *gin.Context) {
	catalog, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "material catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// Calculate handles an STL upload: decode, estimate, render a preview,
// respond with the numbers. The uploaded file is removed on every exit
// path.
func (s *Server) Calculate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file part"})
		return
	}
	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no selected file"})
		return
	}
	if fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d byte limit", s.cfg.MaxUploadBytes)})
		return
	}

	materialID := uint(materials.DefaultID)
	if raw := c.PostForm("material_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid material id %q", raw)})
			return
		}
		materialID = uint(parsed)
	}

	material, err := s.store.ByID(materialID)
	if err != nil {
		var unknown *materials.UnknownMaterialError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "material catalog unavailable"})
		return
	}

	// Spool the upload under a fresh name so concurrent uploads of the
	// same filename cannot collide.
	stem := uuid.NewString()
	uploadPath := filepath.Join(s.cfg.UploadDir, stem+".stl")
	if err := c.SaveUploadedFile(fileHeader, uploadPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer func() {
		if err := os.Remove(uploadPath); err != nil {
			log.Printf("failed to remove upload %s: %v", uploadPath, err)
		}
	}()

	model, err := stl.Parse(uploadPath)
	if err != nil {
		c.JSON(decodeStatus(err), gin.H{"error": err.Error()})
		return
	}

	estimate, err := analysis.EstimateMass(model, material.Density)
	if err != nil {
		var densityErr *analysis.DensityError
		if errors.As(err, &densityErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "estimation failed"})
		return
	}

	imageName := stem + ".png"
	if err := preview.WritePNG(model, filepath.Join(s.cfg.ImageDir, imageName), preview.Options{}); err != nil {
		log.Printf("failed to render preview: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render preview"})
		return
	}

	c.JSON(http.StatusOK, calculateResponse{
		MaterialID:     material.ID,
		Material:       material.Name,
		TotalVolumeCm3: estimate.VolumeCm3,
		TotalMassG:     estimate.MassGrams,
		Triangles:      estimate.Triangles,
		ImageURL:       "/images/" + imageName,
	})
}

// decodeStatus maps decoder failures to HTTP statuses: malformed or
// unsupported input is the client's problem, everything else ours.
func decodeStatus(err error) int {
	var formatErr *stl.FormatError
	var truncatedErr *stl.TruncatedError
	if errors.As(err, &formatErr) || errors.As(err, &truncatedErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
