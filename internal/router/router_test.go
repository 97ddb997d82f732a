package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vet-clinic/internal/adapters/render/textreport"
	"vet-clinic/internal/router"
)

const adminID = "admin-1"

func TestHTTP_EndToEnd_OwnerDeletionCascades(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Renderer: textreport.New()}))
	defer ts.Close()

	// 1) Alta pública de dueño y doctor
	owner := register(t, ts.URL, map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "secret1",
	})
	doctorUser := register(t, ts.URL, map[string]any{
		"name": "Dr. Vet", "email": "vet@example.com", "password": "secret1",
		"role": "doctor", "specialization": "surgery",
	})
	doctorID := doctorProfileID(t, ts.URL, owner, doctorUser)

	// 2) Dueño crea mascota y reserva
	petID := createID(t, ts.URL, "/pets", owner, "pet_owner", map[string]any{
		"name": "Milo", "species": "dog",
	})
	apptID := createID(t, ts.URL, "/appointments", owner, "pet_owner", map[string]any{
		"pet_id": petID, "doctor_id": doctorID, "date": "2030-05-01", "time": "10:00", "reason": "checkup",
	})

	// 3) Dueño no puede confirmar; el doctor sí
	if st, _ := doReq(t, ts.URL, "POST", "/appointments/"+apptID+"/confirm", owner, "pet_owner", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 when owner confirms, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "POST", "/appointments/"+apptID+"/confirm", doctorUser, "doctor", nil); st != http.StatusOK {
		t.Fatalf("expected 200 confirming, got %d body=%s", st, body)
	}

	// 4) Reporte del doctor
	reportID := createID(t, ts.URL, "/reports", doctorUser, "doctor", map[string]any{
		"pet_id": petID, "appointment_id": apptID, "summary": "healthy",
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, owner, "pet_owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reading pet, got %d", st)
		}
		var pet struct {
			Reports []string `json:"reports"`
		}
		mustJSON(t, body, &pet)
		if len(pet.Reports) != 1 || pet.Reports[0] != reportID {
			t.Fatalf("pet should link report %s, got %v", reportID, pet.Reports)
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/reports/"+reportID+"/document", owner, "pet_owner", nil)
		if st != http.StatusOK || !strings.Contains(string(body), "Milo") {
			t.Fatalf("expected rendered document, got %d body=%s", st, body)
		}
	}

	// 5) Solo admin borra usuarios
	if st, _ := doReq(t, ts.URL, "DELETE", "/users/"+owner, doctorUser, "doctor", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 when doctor deletes user, got %d", st)
	}
	{
		st, body := doReq(t, ts.URL, "DELETE", "/users/"+owner, adminID, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 deleting owner, got %d body=%s", st, body)
		}
		var out struct {
			Cascade struct {
				PetsDeleted         int `json:"pets_deleted"`
				ReportsDeleted      int `json:"reports_deleted"`
				AppointmentsDeleted int `json:"appointments_deleted"`
			} `json:"cascade"`
		}
		mustJSON(t, body, &out)
		if out.Cascade.PetsDeleted != 1 || out.Cascade.ReportsDeleted != 1 || out.Cascade.AppointmentsDeleted != 1 {
			t.Fatalf("unexpected cascade summary: %s", body)
		}
	}

	// 6) Todo lo del dueño desapareció; el doctor sigue
	for _, path := range []string{"/pets/" + petID, "/appointments/" + apptID, "/reports/" + reportID, "/users/" + owner} {
		if st, _ := doReq(t, ts.URL, "GET", path, adminID, "admin", nil); st != http.StatusNotFound {
			t.Fatalf("expected 404 for %s after cascade, got %d", path, st)
		}
	}
	if st, _ := doReq(t, ts.URL, "GET", "/users/"+doctorUser, adminID, "admin", nil); st != http.StatusOK {
		t.Fatalf("doctor user should survive, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/doctors/"+doctorID, adminID, "admin", nil); st != http.StatusOK {
		t.Fatalf("doctor profile should survive, got %d", st)
	}
}

func TestHTTP_DeletePet_OwnerOnly(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	owner := register(t, ts.URL, map[string]any{"name": "Ana", "email": "ana@example.com", "password": "secret1"})
	other := register(t, ts.URL, map[string]any{"name": "Bob", "email": "bob@example.com", "password": "secret1"})
	petID := createID(t, ts.URL, "/pets", owner, "pet_owner", map[string]any{"name": "Milo", "species": "cat"})

	if st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, other, "pet_owner", nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d", st)
	}
	if st, body := doReq(t, ts.URL, "DELETE", "/pets/"+petID, owner, "pet_owner", nil); st != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d body=%s", st, body)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, owner, "pet_owner", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", st)
	}
	// GET /pets sigue funcionando junto con DELETE en el mismo subrouter
	if st, _ := doReq(t, ts.URL, "GET", "/pets", owner, "pet_owner", nil); st != http.StatusOK {
		t.Fatalf("expected 200 listing pets, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

// -------- helpers --------

func register(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", "/auth/register", "", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", st, body)
	}
	return idOf(t, body)
}

func createID(t *testing.T, baseURL, path, userID, role string, payload map[string]any) string {
	t.Helper()
	st, body := doReq(t, baseURL, "POST", path, userID, role, payload)
	if st != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d body=%s", path, st, body)
	}
	return idOf(t, body)
}

func doctorProfileID(t *testing.T, baseURL, callerID, doctorUserID string) string {
	t.Helper()
	st, body := doReq(t, baseURL, "GET", "/doctors", callerID, "pet_owner", nil)
	if st != http.StatusOK {
		t.Fatalf("list doctors: got %d body=%s", st, body)
	}
	var list []struct {
		ID     string `json:"id"`
		UserID string `json:"user_id"`
	}
	mustJSON(t, body, &list)
	for _, d := range list {
		if d.UserID == doctorUserID {
			return d.ID
		}
	}
	t.Fatalf("doctor profile for %s not found in %s", doctorUserID, body)
	return ""
}

func idOf(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	if out.ID == "" {
		t.Fatalf("missing id in %s", body)
	}
	return out.ID
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func doReq(t *testing.T, baseURL, method, path, userID, role string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
		req.Header.Set("X-Debug-Role", role)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
