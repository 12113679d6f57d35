package domain

import "strings"

type HealthStatus string

const (
	HealthGreen   HealthStatus = "green"
	HealthYellow  HealthStatus = "yellow"
	HealthRed     HealthStatus = "red"
	HealthUnknown HealthStatus = "unknown"
)

// ParseHealthStatus maps anything outside the closed status set, including a
// missing or malformed field, to HealthUnknown. It never fails.
func ParseHealthStatus(s string) HealthStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green":
		return HealthGreen
	case "yellow":
		return HealthYellow
	case "red":
		return HealthRed
	default:
		return HealthUnknown
	}
}

func (s HealthStatus) IsValid() bool {
	switch s {
	case HealthGreen, HealthYellow, HealthRed, HealthUnknown:
		return true
	}
	return false
}

// ClusterHealth is a single-round-trip snapshot of the engine's health endpoint.
type ClusterHealth struct {
	Status HealthStatus
}

// ClusterInfo is a single-round-trip snapshot of the engine's root endpoint.
type ClusterInfo struct {
	ClusterName string
	Version     string
}
