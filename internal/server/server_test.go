package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mastercraft/stlmass/internal/config"
	"github.com/mastercraft/stlmass/pkg/materials"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.ImageDir = filepath.Join(dir, "images")
	cfg.DatabasePath = filepath.Join(dir, "materials.db")

	store, err := materials.Open(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	s, err := New(cfg, store)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return s
}

// cubeSTL encodes a closed outward-wound cube of the given side length
// as a binary STL stream.
func cubeSTL(side float32) []byte {
	s := side
	quads := [][4][3]float32{
		{{0, 0, 0}, {0, s, 0}, {s, s, 0}, {s, 0, 0}}, // bottom (-Z)
		{{0, 0, s}, {s, 0, s}, {s, s, s}, {0, s, s}}, // top (+Z)
		{{0, 0, 0}, {s, 0, 0}, {s, 0, s}, {0, 0, s}}, // front (-Y)
		{{0, s, 0}, {0, s, s}, {s, s, s}, {s, s, 0}}, // back (+Y)
		{{0, 0, 0}, {0, 0, s}, {0, s, s}, {0, s, 0}}, // left (-X)
		{{s, 0, 0}, {s, s, 0}, {s, s, s}, {s, 0, s}}, // right (+X)
	}

	var facets [][3][3]float32
	for _, q := range quads {
		facets = append(facets, [3][3]float32{q[0], q[1], q[2]})
		facets = append(facets, [3][3]float32{q[0], q[2], q[3]})
	}

	var buf bytes.Buffer
	buf.Write(make([]byte, 80))

	var count [4]byte
	binary.NativeEndian.PutUint32(count[:], uint32(len(facets)))
	buf.Write(count[:])

	for _, facet := range facets {
		buf.Write(make([]byte, 12)) // normal, ignored by the decoder
		for _, p := range facet {
			for _, v := range p {
				var b [4]byte
				binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
				buf.Write(b[:])
			}
		}
		buf.Write([]byte{0, 0})
	}

	return buf.Bytes()
}

func postCalculate(t *testing.T, s *Server, payload []byte, materialID string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "cube.stl")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write payload: %v", err)
	}
	if materialID != "" {
		if err := writer.WriteField("material_id", materialID); err != nil {
			t.Fatalf("failed to write material field: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestCalculateCube(t *testing.T) {
	s := newTestServer(t)

	// 10mm cube at PLA density: 1 cm³, 1.25 g.
	recorder := postCalculate(t, s, cubeSTL(10), "2")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		MaterialID     uint    `json:"material_id"`
		Material       string  `json:"material"`
		TotalVolumeCm3 float64 `json:"total_volume_cm3"`
		TotalMassG     float64 `json:"total_mass_g"`
		Triangles      int     `json:"triangles"`
		ImageURL       string  `json:"image_url"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}

	if resp.Material != "PLA" {
		t.Errorf("expected PLA, got %q", resp.Material)
	}
	if math.Abs(resp.TotalVolumeCm3-1.0) > 1e-6 {
		t.Errorf("expected 1.0 cm³, got %v", resp.TotalVolumeCm3)
	}
	if math.Abs(resp.TotalMassG-1.25) > 1e-6 {
		t.Errorf("expected 1.25 g, got %v", resp.TotalMassG)
	}
	if resp.Triangles != 12 {
		t.Errorf("expected 12 triangles, got %d", resp.Triangles)
	}

	// The preview must exist under the image dir and be served.
	imageName := filepath.Base(resp.ImageURL)
	if _, err := os.Stat(filepath.Join(s.cfg.ImageDir, imageName)); err != nil {
		t.Errorf("preview image missing: %v", err)
	}

	// Upload must be cleaned up.
	entries, err := os.ReadDir(s.cfg.UploadDir)
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty upload dir, found %d entries", len(entries))
	}
}

func TestCalculateDefaultsToPLA(t *testing.T) {
	s := newTestServer(t)

	recorder := postCalculate(t, s, cubeSTL(10), "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		MaterialID uint `json:"material_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.MaterialID != materials.DefaultID {
		t.Errorf("expected default material id %d, got %d", materials.DefaultID, resp.MaterialID)
	}
}

func TestCalculateRejectsASCII(t *testing.T) {
	s := newTestServer(t)

	recorder := postCalculate(t, s, []byte("solid cube\nendsolid cube\n"), "2")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for ascii upload, got %d", recorder.Code)
	}
}

func TestCalculateRejectsTruncated(t *testing.T) {
	s := newTestServer(t)

	data := cubeSTL(10)
	recorder := postCalculate(t, s, data[:len(data)-30], "2")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for truncated upload, got %d", recorder.Code)
	}
}

func TestCalculateUnknownMaterial(t *testing.T) {
	s := newTestServer(t)

	recorder := postCalculate(t, s, cubeSTL(10), "404")
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown material, got %d", recorder.Code)
	}
}

func TestCalculateMissingFile(t *testing.T) {
	s := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("material_id", "2")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", recorder.Code)
	}
}

func TestMaterialsEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/materials", nil)
	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var catalog []materials.Material
	if err := json.Unmarshal(recorder.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(catalog) != len(materials.BuiltIn()) {
		t.Errorf("expected %d materials, got %d", len(materials.BuiltIn()), len(catalog))
	}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !bytes.Contains(recorder.Body.Bytes(), []byte("PLA")) {
		t.Error("expected material options on the upload page")
	}
}
