package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"github.com/jmoiron/sqlx/types"
)

type CancellationDetails struct {
	Reason       string    `json:"reason"`
	ViaPhoneCall bool      `json:"via_phone_call"`
	CancelledAt  time.Time `json:"cancelled_at"`
}

type IllnessDetails struct {
	RequiresEarlyCheckout bool      `json:"requires_early_checkout"`
	ReportedAt            time.Time `json:"reported_at"`
}

type GuestSubmission struct {
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Resolution struct {
	Notes      string    `json:"resolution_notes"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// Details is stored as JSONB. Each section is set by the workflow that owns it.
type Details struct {
	Cancellation    *CancellationDetails `json:"cancellation,omitempty"`
	Illness         *IllnessDetails      `json:"illness,omitempty"`
	GuestSubmission *GuestSubmission     `json:"guest_submission,omitempty"`
	Resolution      *Resolution          `json:"resolution,omitempty"`
	AdditionalNotes map[string]string    `json:"additional_notes,omitempty"`
}

// Merge overlays the sections set in other. Sections other leaves nil are kept,
// and additional notes are merged key by key.
func (d Details) Merge(other Details) Details {
	merged := d

	if other.Cancellation != nil {
		merged.Cancellation = other.Cancellation
	}

	if other.Illness != nil {
		merged.Illness = other.Illness
	}

	if other.GuestSubmission != nil {
		merged.GuestSubmission = other.GuestSubmission
	}

	if other.Resolution != nil {
		merged.Resolution = other.Resolution
	}

	if len(other.AdditionalNotes) > 0 {
		notes := make(map[string]string, len(d.AdditionalNotes)+len(other.AdditionalNotes))
		maps.Copy(notes, d.AdditionalNotes)
		maps.Copy(notes, other.AdditionalNotes)
		merged.AdditionalNotes = notes
	}

	return merged
}

func (d Details) Value() (driver.Value, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal emergency details: %w", err)
	}

	return types.JSONText(raw).Value() //nolint:wrapcheck
}

// Scan accepts anything types.JSONText does. NULL scans to empty details.
func (d *Details) Scan(src any) error {
	var text types.JSONText
	if err := text.Scan(src); err != nil {
		return fmt.Errorf("failed to scan emergency details: %w", err)
	}

	*d = Details{}

	if err := text.Unmarshal(d); err != nil {
		return fmt.Errorf("failed to unmarshal emergency details: %w", err)
	}

	return nil
}
