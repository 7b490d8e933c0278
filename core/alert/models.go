package alert

import (
	"errors"
	"time"

	"github.com/trezcool/hatari/core"
)

var (
	// errors
	ErrNotFound = errors.New("alert not found")
)

type Type string

const (
	TypeRiskLevelChange   Type = "Risk Level Change"
	TypeAttendanceWarning Type = "Attendance Warning"
	TypeGradeDrop         Type = "Grade Drop"
	TypeBehaviorIncident  Type = "Behavior Incident"
	TypeManual            Type = "Manual"
)

type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Alert is never deleted; the only mutation after creation is setting the
// acknowledgment fields.
type Alert struct {
	ID             string     `json:"id"`
	StudentID      string     `json:"student_id"`
	Type           Type       `json:"type"`
	Message        string     `json:"message"`
	Severity       Severity   `json:"severity"`
	Timestamp      time.Time  `json:"timestamp"` // UTC
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

// NewAlert contains information needed to create an Alert; id and timestamp
// are assigned by the service.
type NewAlert struct {
	StudentID string   `json:"student_id" validate:"required"`
	Type      Type     `json:"type" validate:"required,oneof='Risk Level Change' 'Attendance Warning' 'Grade Drop' 'Behavior Incident' 'Manual'"`
	Message   string   `json:"message" validate:"required"`
	Severity  Severity `json:"severity" validate:"required,oneof=Low Medium High"`
}

func (na *NewAlert) Validate() error {
	na.Message = core.CleanString(na.Message)
	return core.TranslateValidationError(core.Validate.Struct(na))
}

// ManualAlert is a free-form alert entered by a user; severity defaults to
// Medium when omitted.
type ManualAlert struct {
	StudentID string   `json:"student_id" validate:"required"`
	Message   string   `json:"message" validate:"required"`
	Severity  Severity `json:"severity" validate:"omitempty,oneof=Low Medium High"`
}

func (ma *ManualAlert) Validate() error {
	ma.Message = core.CleanString(ma.Message)
	return core.TranslateValidationError(core.Validate.Struct(ma))
}

// UpdateAlert carries the acknowledgment mutation.
type UpdateAlert struct {
	Acknowledged   bool
	AcknowledgedBy string
	AcknowledgedAt time.Time
}
