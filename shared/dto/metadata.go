package dto

import (
	"time"

	"hotel/shared/constant"
	"hotel/shared/model"
	"hotel/shared/timezone"
)

// Metadata is the audit block embedded in resource responses.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedAt:  stamp(source.CreatedAt),
		CreatedBy:  source.CreatedBy,
		ModifiedAt: stamp(source.ModifiedAt),
		ModifiedBy: source.ModifiedBy,
	}
}

// stamp renders audit times in the hotel's zone. A zero time renders empty.
func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
