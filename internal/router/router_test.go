package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pet-growth-diary/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h, err := router.NewRouter(router.Options{
		DataDir:   t.TempDir(),
		ImagesDir: t.TempDir(),
		WeekStart: time.Sunday,
	})
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_DiaryFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Abrir sesión para la mascota
	sessionID := startSession(t, ts.URL, "Pochi")

	// 2) Sin fecha de nacimiento, el diario de crecimiento rechaza con 409
	{
		st, body := doReq(t, ts.URL, "POST", "/growth-log", sessionID, map[string]any{
			"timestamp": "2024-02-15 08:00:00",
			"meal":      "kibble",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 without birth date, got %d body=%s", st, string(body))
		}
	}

	// 3) Guardar la información básica con la fecha de nacimiento
	{
		st, body := doReq(t, ts.URL, "POST", "/pages/basic_info", sessionID, map[string]any{
			"records": []map[string]any{{
				"birth_date":  "2024-01-10",
				"birth_time":  "08:30",
				"birth_place": "Tokyo",
			}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit basic info, got %d body=%s", st, string(body))
		}
	}

	// 4) Ahora el diario acepta el registro y calcula la edad en días
	{
		st, body := doReq(t, ts.URL, "POST", "/growth-log", sessionID, map[string]any{
			"timestamp":  "2024-02-15 08:00:00",
			"meal":       "kibble",
			"meal_grams": 120,
			"walk":       "morning walk",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create growth entry, got %d body=%s", st, string(body))
		}
		var resp struct {
			DaysSinceBirth int `json:"days_since_birth"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.DaysSinceBirth != 36 {
			t.Fatalf("expected 36 days since birth, got %d body=%s", resp.DaysSinceBirth, string(body))
		}
	}

	// 5) El filtro por palabra clave es case-insensitive
	{
		st, body := doReq(t, ts.URL, "GET", "/growth-log?q=WALK", sessionID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list growth entries, got %d body=%s", st, string(body))
		}
		var resp struct {
			Entries []map[string]any `json:"entries"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Entries) != 1 {
			t.Fatalf("expected 1 filtered entry, got %d body=%s", len(resp.Entries), string(body))
		}
	}

	// 6) Peso cero en el registro de salud => 400, nada persistido
	{
		st, body := doReq(t, ts.URL, "POST", "/health-log", sessionID, map[string]any{
			"date":      "2024-02-15",
			"weight_kg": 0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for zero weight, got %d body=%s", st, string(body))
		}
	}

	// 7) Registro de salud válido
	{
		st, body := doReq(t, ts.URL, "POST", "/health-log", sessionID, map[string]any{
			"date":      "2024-02-15",
			"weight_kg": 4.2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create health entry, got %d body=%s", st, string(body))
		}
	}

	// 8) La grilla del calendario trae el registro en su día
	{
		st, body := doReq(t, ts.URL, "GET", "/health-log/calendar?year=2024&month=2", sessionID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
		}
		var resp struct {
			Weeks [][]struct {
				Date    string           `json:"date"`
				InMonth bool             `json:"in_month"`
				Entries []map[string]any `json:"entries"`
			} `json:"weeks"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Weeks) == 0 {
			t.Fatalf("expected calendar weeks, body=%s", string(body))
		}
		found := false
		for _, week := range resp.Weeks {
			if len(week) != 7 {
				t.Fatalf("expected weeks of 7 cells, got %d", len(week))
			}
			for _, c := range week {
				if c.Date == "2024-02-15" && len(c.Entries) == 1 {
					found = true
				}
			}
		}
		if !found {
			t.Fatalf("expected entry attached to 2024-02-15, body=%s", string(body))
		}
	}

	// 9) El gráfico de peso trae el punto y el rango con margen fijo
	{
		st, body := doReq(t, ts.URL, "GET", "/health-log/chart", sessionID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 chart, got %d body=%s", st, string(body))
		}
		var resp struct {
			Points []map[string]any `json:"points"`
			YMin   *float64         `json:"y_min"`
			YMax   *float64         `json:"y_max"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Points) != 1 {
			t.Fatalf("expected 1 chart point, body=%s", string(body))
		}
		if resp.YMin == nil || resp.YMax == nil || *resp.YMin != 3.7 || *resp.YMax != 4.7 {
			t.Fatalf("expected bounds [3.7, 4.7], body=%s", string(body))
		}
	}

	// 10) El cursor del calendario vive en la sesión
	{
		st, body := doReq(t, ts.URL, "PATCH", "/session", sessionID, map[string]any{
			"page":     "health_log",
			"calendar": map[string]any{"year": 2024, "month": 3},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch session, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/health-log/calendar", sessionID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 calendar from cursor, got %d body=%s", st, string(body))
		}
		var resp struct {
			Year  int `json:"year"`
			Month int `json:"month"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Year != 2024 || resp.Month != 3 {
			t.Fatalf("expected calendar cursor 2024-03, got %d-%d", resp.Year, resp.Month)
		}
	}
}

func TestHTTP_Pages_EditScopedToPet(t *testing.T) {
	ts := newTestServer(t)

	pochi := startSession(t, ts.URL, "Pochi")
	tama := startSession(t, ts.URL, "Tama")

	for _, sid := range []string{pochi, tama} {
		st, body := doReq(t, ts.URL, "POST", "/pages/memo", sid, map[string]any{
			"records": []map[string]any{{"date": "2024-03-03", "text": "original"}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit memo, got %d body=%s", st, string(body))
		}
	}

	// guardar la edición de Pochi no toca las filas de Tama
	st, body := doReq(t, ts.URL, "PUT", "/pages/memo", pochi, map[string]any{
		"records": []map[string]any{{"date": "2024-03-03", "text": "edited"}},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 save edits, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/pages/memo", tama, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list memos, got %d body=%s", st, string(body))
	}
	var resp struct {
		Records []struct {
			Text string `json:"text"`
		} `json:"records"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Records) != 1 || resp.Records[0].Text != "original" {
		t.Fatalf("expected Tama memo untouched, body=%s", string(body))
	}
}

func TestHTTP_Session_Required(t *testing.T) {
	ts := newTestServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/pages/memo", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "GET", "/pages/memo", "not-a-session", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown session, got %d", st)
	}
}

func TestHTTP_Pages_UnknownCategory(t *testing.T) {
	ts := newTestServer(t)
	sid := startSession(t, ts.URL, "Pochi")

	st, _ := doReq(t, ts.URL, "GET", "/pages/nope", sid, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown category, got %d", st)
	}
}

func TestHTTP_PhotoUpload(t *testing.T) {
	imagesDir := t.TempDir()

	h, err := router.NewRouter(router.Options{
		DataDir:   t.TempDir(),
		ImagesDir: imagesDir,
		WeekStart: time.Sunday,
	})
	if err != nil {
		t.Fatalf("NewRouter error: %v", err)
	}
	ts := httptest.NewServer(h)
	defer ts.Close()

	sid := startSession(t, ts.URL, "Pochi")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("photo", "pochi.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("not-a-real-png"))
	_ = mw.Close()

	req, err := http.NewRequest("POST", ts.URL+"/photos/photo1", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Session-ID", sid)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 upload, got %d body=%s", res.StatusCode, string(body))
	}

	var resp struct {
		Path string `json:"path"`
	}
	_ = json.Unmarshal(body, &resp)
	if filepath.Dir(resp.Path) != imagesDir {
		t.Fatalf("expected photo stored under images dir, got %s", resp.Path)
	}
}

func startSession(t *testing.T, baseURL, petName string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/session", "", map[string]any{
		"pet_name": petName,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 start session, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("start session: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, sessionID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
