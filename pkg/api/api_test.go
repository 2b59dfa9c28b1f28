package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkhaus/inkhaus/pkg/db"
	"github.com/inkhaus/inkhaus/pkg/render"
)

func testRouter(t *testing.T) (*Router, *db.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := database.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}

	router := NewRouter(database, render.SampleEvents{}, Config{
		BaseURL: "http://test.local",
		Secret:  []byte("test-secret"),
	})
	return router, database
}

func do(t *testing.T, router *Router, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json response %q: %v", w.Body.String(), err)
	}
	return out
}

const testMAC = "AA:BB:CC:DD:EE:FF"

func TestSetup_CreateThenUpdate(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", map[string]any{"device_name": "Kitchen"}, map[string]string{"ID": testMAC})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["status"] != "created" {
		t.Fatalf("status = %v, want created", body["status"])
	}
	if key, _ := body["api_key"].(string); key == "" {
		t.Error("created response must carry the api key")
	}
	dev := body["device"].(map[string]any)
	if dev["mac_address"] != testMAC {
		t.Errorf("mac_address = %v", dev["mac_address"])
	}
	if !strings.HasPrefix(dev["friendly_id"].(string), "TRMNL_") {
		t.Errorf("friendly_id = %v", dev["friendly_id"])
	}

	// Same MAC again: updated, key withheld.
	w = do(t, router, http.MethodPost, "/api/setup", map[string]any{"timezone": "Europe/Berlin"}, map[string]string{"ID": testMAC})
	body = decode(t, w)
	if body["status"] != "updated" {
		t.Fatalf("status = %v, want updated", body["status"])
	}
	if _, ok := body["api_key"]; ok {
		t.Error("updated response must not re-issue the api key")
	}
	if body["device"].(map[string]any)["timezone"] != "Europe/Berlin" {
		t.Error("timezone update not applied")
	}
}

func TestSetup_InvalidMAC(t *testing.T) {
	router, _ := testRouter(t)

	for _, mac := range []string{"", "nonsense", "AA:BB:CC:DD:EE"} {
		w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": mac})
		if w.Code != http.StatusBadRequest {
			t.Errorf("mac %q: status = %d, want 400", mac, w.Code)
		}
	}
}

func TestSetup_Readiness(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodGet, "/api/setup", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if decode(t, w)["status"] != "ok" {
		t.Error("readiness probe should report ok")
	}
}

func TestDisplay_MACOnlyPollStampsLastSeen(t *testing.T) {
	router, database := testRouter(t)

	do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})

	w := do(t, router, http.MethodGet, "/api/display", nil, map[string]string{
		"ID":              testMAC,
		"Battery-Voltage": "3.91",
		"RSSI":            "-61",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "ok" {
		t.Fatalf("status = %v, body %s", body["status"], w.Body.String())
	}
	imageURL, _ := body["image_url"].(string)
	if !strings.HasPrefix(imageURL, "http://test.local/api/render?") || !strings.Contains(imageURL, "device_id=") {
		t.Errorf("image_url = %q", imageURL)
	}
	if !strings.HasSuffix(body["filename"].(string), ".bmp") {
		t.Errorf("filename = %v", body["filename"])
	}
	if rate, _ := body["refresh_rate"].(float64); rate <= 0 {
		t.Errorf("refresh_rate = %v", body["refresh_rate"])
	}

	dev, err := database.Devices().GetByMAC(context.Background(), testMAC)
	if err != nil {
		t.Fatal(err)
	}
	if dev.LastSeenAt == nil {
		t.Error("poll did not stamp last_seen_at")
	}
	if dev.BatteryVoltage == nil || *dev.BatteryVoltage != 3.91 {
		t.Error("telemetry header not merged")
	}
	if dev.RSSI == nil || *dev.RSSI != -61 {
		t.Error("rssi header not merged")
	}
}

func TestDisplay_UnknownDeviceSoftError(t *testing.T) {
	router, _ := testRouter(t)

	// No identity at all: firmware still needs a 200 with an error status.
	w := do(t, router, http.MethodGet, "/api/display", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "error" {
		t.Errorf("status = %v, want error", body["status"])
	}
	if body["message"] == "" {
		t.Error("error reply should explain itself")
	}
}

func TestDisplay_AutoRegistersFromCredential(t *testing.T) {
	router, database := testRouter(t)

	w := do(t, router, http.MethodGet, "/api/display", nil, map[string]string{"Access-Token": "orphan-key"})
	if decode(t, w)["status"] != "ok" {
		t.Fatalf("credential-only poll should auto-register, body %s", w.Body.String())
	}

	devices, err := database.Devices().List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 1 {
		t.Fatalf("got %d devices, want 1 auto-registered", len(devices))
	}
	if devices[0].APIKey != "orphan-key" {
		t.Error("auto-registered device should keep the presented key")
	}
}

func TestLog_IngestAndList(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})
	deviceID := decode(t, w)["device"].(map[string]any)["id"].(string)

	w = do(t, router, http.MethodPost, "/api/log", map[string]any{
		"level":    "error",
		"message":  "wifi dropped",
		"log_data": map[string]any{"attempt": 3},
	}, map[string]string{"ID": testMAC})
	if w.Code != http.StatusOK || decode(t, w)["status"] != "ok" {
		t.Fatalf("ingest failed: %d %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/devices/"+deviceID+"/logs", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var entries []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0]["message"] != "wifi dropped" || entries[0]["level"] != "error" {
		t.Errorf("entries = %v", entries)
	}
}

func TestLog_UnknownDeviceSoftError(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/log", map[string]any{"message": "hello"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if decode(t, w)["status"] != "error" {
		t.Error("unresolvable device should get a soft error")
	}
}

func TestRender_ContentNegotiation(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})
	deviceID := decode(t, w)["device"].(map[string]any)["id"].(string)

	// No screens yet: the default layout ships as BMP.
	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Content-Type = %q", ct)
	}
	if w.Body.Len() != 48062 {
		t.Errorf("bmp size = %d, want 48062", w.Body.Len())
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("BM")) {
		t.Error("missing BMP magic")
	}

	// Week calendar for a browser: inspectable SVG.
	w = do(t, router, http.MethodPost, "/api/devices/"+deviceID+"/screens", map[string]any{
		"name": "week", "type": "calendar-week", "is_active": true,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create screen: %d %s", w.Code, w.Body.String())
	}
	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID, nil, map[string]string{
		"User-Agent": "Mozilla/5.0",
	})
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("browser week calendar Content-Type = %q, want svg", ct)
	}

	// The same request with the firmware ID header stays BMP.
	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID, nil, map[string]string{
		"User-Agent": "Mozilla/5.0",
		"ID":         testMAC,
	})
	if ct := w.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("panel request Content-Type = %q, want image/bmp", ct)
	}

	// Explicit BMP accept wins over the UA heuristic.
	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID, nil, map[string]string{
		"User-Agent": "Mozilla/5.0",
		"Accept":     "image/bmp",
	})
	if ct := w.Header().Get("Content-Type"); ct != "image/bmp" {
		t.Errorf("Accept image/bmp Content-Type = %q", ct)
	}
}

func TestRender_UnknownDevice(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodGet, "/api/render?device_id=missing", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRender_TypeOverride(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})
	deviceID := decode(t, w)["device"].(map[string]any)["id"].(string)

	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID+"&type=year-progress", nil, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/bmp" {
		t.Fatalf("override render: %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	w = do(t, router, http.MethodGet, "/api/render?device_id="+deviceID+"&type=bogus", nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("bogus type status = %d, want 500", w.Code)
	}
	if decode(t, w)["error"] != "render_failure" {
		t.Errorf("error = %v", decode(t, w)["error"])
	}
}

func TestStandaloneBitmaps(t *testing.T) {
	router, _ := testRouter(t)

	for _, path := range []string{"/api/bitmap/year-progress.bmp", "/api/test-bmp"} {
		w := do(t, router, http.MethodGet, path, nil, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
			continue
		}
		if w.Header().Get("Content-Type") != "image/bmp" {
			t.Errorf("%s: Content-Type = %q", path, w.Header().Get("Content-Type"))
		}
		if w.Body.Len() != 48062 {
			t.Errorf("%s: size = %d, want 48062", path, w.Body.Len())
		}
	}
}

func TestScreens_ConfigValidation(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})
	deviceID := decode(t, w)["device"].(map[string]any)["id"].(string)

	// Valid clock config.
	w = do(t, router, http.MethodPost, "/api/devices/"+deviceID+"/screens", map[string]any{
		"name": "clock", "type": "clock", "config": map[string]any{"format": "24h"}, "is_active": true,
	}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("valid config rejected: %d %s", w.Code, w.Body.String())
	}
	screenID := decode(t, w)["screen"].(map[string]any)["id"].(string)

	// Bad enum value.
	w = do(t, router, http.MethodPost, "/api/devices/"+deviceID+"/screens", map[string]any{
		"name": "clock", "type": "clock", "config": map[string]any{"format": "25h"},
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid config status = %d, want 400", w.Code)
	}

	// Unknown screen type.
	w = do(t, router, http.MethodPost, "/api/devices/"+deviceID+"/screens", map[string]any{
		"name": "x", "type": "marquee",
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown type status = %d, want 400", w.Code)
	}

	// PATCH re-validates the merged result.
	w = do(t, router, http.MethodPatch, "/api/screens/"+screenID, map[string]any{
		"config": map[string]any{"format": "invalid"},
	}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("patch invalid config status = %d, want 400", w.Code)
	}
	w = do(t, router, http.MethodPatch, "/api/screens/"+screenID, map[string]any{
		"config": map[string]any{"format": "12h"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("patch valid config status = %d: %s", w.Code, w.Body.String())
	}
}

func TestDevices_CRUD(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})
	created := decode(t, w)["device"].(map[string]any)
	deviceID := created["id"].(string)
	friendlyID := created["friendly_id"].(string)

	w = do(t, router, http.MethodGet, "/api/devices", nil, nil)
	if decode(t, w)["count"].(float64) != 1 {
		t.Error("list should show one device")
	}

	// Friendly id works as a path key too.
	w = do(t, router, http.MethodGet, "/api/devices/"+friendlyID, nil, nil)
	if w.Code != http.StatusOK {
		t.Errorf("friendly id lookup status = %d", w.Code)
	}

	w = do(t, router, http.MethodPatch, "/api/devices/"+deviceID, map[string]any{
		"name": "Hallway", "refresh_rate": 600,
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status = %d: %s", w.Code, w.Body.String())
	}
	dev := decode(t, w)["device"].(map[string]any)
	if dev["name"] != "Hallway" || dev["refresh_rate"].(float64) != 600 {
		t.Errorf("patch not applied: %v", dev)
	}

	w = do(t, router, http.MethodPatch, "/api/devices/"+deviceID, map[string]any{"refresh_rate": -5}, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative refresh_rate status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodDelete, "/api/devices/"+deviceID, nil, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = do(t, router, http.MethodGet, "/api/devices/"+deviceID, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted device status = %d, want 404", w.Code)
	}
}

func TestDevices_APIKeyNeverSerialized(t *testing.T) {
	router, _ := testRouter(t)

	do(t, router, http.MethodPost, "/api/setup", nil, map[string]string{"ID": testMAC})

	w := do(t, router, http.MethodGet, "/api/devices", nil, nil)
	if strings.Contains(w.Body.String(), "api_key") {
		t.Error("device listings must not leak api keys")
	}
}

func TestCORS_PreflightAllowsDeviceHeaders(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodOptions, "/api/display", nil, map[string]string{
		"Origin":                         "http://dashboard.example",
		"Access-Control-Request-Method":  "GET",
		"Access-Control-Request-Headers": "ID, Access-Token, Battery-Voltage",
	})
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	allowed := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers"))
	for _, h := range []string{"id", "access-token", "battery-voltage"} {
		if !strings.Contains(allowed, h) {
			t.Errorf("preflight does not allow %s header: %q", h, allowed)
		}
	}
}

func TestHealth(t *testing.T) {
	router, _ := testRouter(t)

	w := do(t, router, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode(t, w)
	if body["status"] != "healthy" || body["database"] != "connected" {
		t.Errorf("body = %v", body)
	}
}
