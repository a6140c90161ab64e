// Package geo guesses the user's location from their public IP so a zone can
// be suggested when none is configured.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Location holds the place detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Region    string  `json:"region"` // state name, e.g. "Selangor"
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Timezone   string  `json:"timezone"`
}

// geoAPIURL is a variable so tests can point it at an httptest server.
var geoAPIURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,regionName,country,timezone"

// DetectLocation asks ip-api.com where the public IP address is.
// The service is free and needs no API key.
func DetectLocation(ctx context.Context) (*Location, error) {
	resp, err := resty.New().
		SetTimeout(5*time.Second).
		R().
		SetContext(ctx).
		Get(geoAPIURL)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode())
	}

	var result ipAPIResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Region:    result.RegionName,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}
