// README: End-to-end flow against a running API: register, create a trip,
// generate an itinerary with the offline provider, and read it back.
// Requires the server started with TRIPMASTER_LLM_OFFLINE=true.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"
)

func TestTripGenerationFlow(t *testing.T) {
	baseURL := strings.TrimRight(envOrDefault("TRIPMASTER_API_BASE_URL", "http://localhost:4000"), "/")

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Timeout: 30 * time.Second, Jar: jar}

	waitForAPIReady(t, client, baseURL)

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())

	status, body := call(t, client, baseURL, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "integration-pass",
		"name":     "Integration",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected %d, got %d, body=%s", http.StatusCreated, status, body)
	}

	status, body = call(t, client, baseURL, http.MethodPost, "/api/trips", map[string]any{
		"title":       "Kyoto long weekend",
		"destination": "Kyoto",
		"startDate":   "2026-06-01",
		"endDate":     "2026-06-03",
	})
	if status != http.StatusCreated {
		t.Fatalf("create trip: expected %d, got %d, body=%s", http.StatusCreated, status, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == "" {
		t.Fatalf("create trip: unmarshal id: %v, raw=%s", err, body)
	}

	status, body = call(t, client, baseURL, http.MethodPost, "/api/trips/"+created.ID+"/generate-itinerary", map[string]string{
		"prompt": "temples and food",
	})
	if status != http.StatusOK {
		t.Fatalf("generate: expected %d, got %d, body=%s", http.StatusOK, status, body)
	}

	var generated struct {
		Days []struct {
			DayIndex int `json:"dayIndex"`
			Items    []struct {
				Title string `json:"title"`
			} `json:"items"`
		} `json:"days"`
	}
	if err := json.Unmarshal(body, &generated); err != nil {
		t.Fatalf("generate: unmarshal: %v, raw=%s", err, body)
	}
	if len(generated.Days) != 3 {
		t.Fatalf("generate: expected 3 days for a 3-day span, got %d", len(generated.Days))
	}
	for i, day := range generated.Days {
		if day.DayIndex != i {
			t.Errorf("day %d: dayIndex = %d", i, day.DayIndex)
		}
		if len(day.Items) == 0 {
			t.Errorf("day %d: no items", i)
		}
	}

	status, body = call(t, client, baseURL, http.MethodGet, "/api/trips/"+created.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("get trip: expected %d, got %d, body=%s", http.StatusOK, status, body)
	}
	if !bytes.Contains(body, []byte("Kyoto long weekend")) {
		t.Fatalf("get trip: persisted trip missing title, raw=%s", body)
	}
}

func call(t *testing.T, client *http.Client, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("call %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/health", nil)
		if err == nil {
			resp, err := client.Do(req)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Skipf("api not ready: GET %s/health did not return 200 in time", baseURL)
}
