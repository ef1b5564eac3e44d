package domain

import "time"

// AuditFields holds standard audit information for persisted entities.
// CreatedBy/LastUpdatedBy carry the operator name from the auth layer.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
