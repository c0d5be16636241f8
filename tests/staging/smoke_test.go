//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

type BusinessListResponse []struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	GameType string `json:"game_type"`
}

func TestBusinessCatalog(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/businesses", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var businesses BusinessListResponse
	if err := json.Unmarshal(body, &businesses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(businesses) == 0 {
		t.Error("Expected at least one business in catalog")
	}

	// Verify the starter business exists (lemonade_stand)
	foundStarter := false
	for _, b := range businesses {
		if b.ID == "lemonade_stand" {
			foundStarter = true
			break
		}
	}

	if !foundStarter {
		t.Error("Expected to find 'lemonade_stand' business in catalog")
	}
}

func TestVersionEndpoint(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/version", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var info map[string]interface{}
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if _, ok := info["version"]; !ok {
		t.Error("Expected 'version' field in response")
	}
}
