package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"tashil/config"

	"github.com/go-resty/resty/v2"
)

// RegistryRecord is the civil registry's view of a national ID
type RegistryRecord struct {
	NationalID string `json:"national_id"`
	FullName   string `json:"full_name"`
	Valid      bool   `json:"valid"`
}

// VerifyNationalID checks a national ID against the external civil registry.
// The lookup is best-effort: when the registry is not configured or
// unreachable the submission proceeds and the caller only logs the miss.
// A definitive "invalid" answer from the registry is returned as ok=false.
func VerifyNationalID(nationalID string) (bool, error) {
	if config.AppConfig.RegistryApiURL == "" {
		return true, nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("X-Api-Key", config.AppConfig.RegistryApiKey).
		SetQueryParam("national_id", nationalID).
		Get(config.AppConfig.RegistryApiURL + "/citizens/lookup")
	if err != nil {
		log.Printf("[REGISTRY] Lookup failed for %s: %v", nationalID, err)
		return true, nil
	}
	if resp.StatusCode() == 404 {
		return false, nil
	}
	if resp.StatusCode() != 200 {
		log.Printf("[REGISTRY] Unexpected status %d: %s", resp.StatusCode(), resp.String())
		return true, nil
	}

	var record RegistryRecord
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return true, fmt.Errorf("invalid registry response: %w", err)
	}

	return record.Valid, nil
}
