package setting

import (
	"errors"

	"github.com/trezcool/hatari/core"
	"github.com/trezcool/hatari/core/student"
)

var (
	// errors
	ErrBadThresholds = errors.New("risk thresholds must be increasing and within [0,1]")
)

type (
	AlertSettings struct {
		EnableBrowserNotifications bool `json:"enable_browser_notifications"`
		EnableEmailAlerts          bool `json:"enable_email_alerts"`
		EnableSMSAlerts            bool `json:"enable_sms_alerts"`
		AutoAcknowledgeAfterHours  int  `json:"auto_acknowledge_after_hours" validate:"gte=0"`
	}

	ModelSettings struct {
		AutoRetrainThreshold int    `json:"auto_retrain_threshold" validate:"gte=0"`
		CurrentModelVersion  string `json:"current_model_version"`
	}

	// AppSettings is a single process-wide record; it is loaded per request
	// rather than cached, so concurrent writers always see the stored value.
	AppSettings struct {
		RiskThresholds student.Thresholds `json:"risk_thresholds"`
		AlertSettings  AlertSettings      `json:"alert_settings"`
		ModelSettings  ModelSettings      `json:"model_settings"`
	}
)

// Defaults are the settings a fresh install starts with; reads from an
// absent settings key return exactly this value.
func Defaults() AppSettings {
	return AppSettings{
		RiskThresholds: student.Thresholds{Low: 0.3, Medium: 0.6, High: 0.8},
		AlertSettings: AlertSettings{
			EnableBrowserNotifications: true,
			EnableEmailAlerts:          false,
			EnableSMSAlerts:            false,
			AutoAcknowledgeAfterHours:  24,
		},
		ModelSettings: ModelSettings{
			AutoRetrainThreshold: 50,
			CurrentModelVersion:  "1.0.0",
		},
	}
}

func (s *AppSettings) Validate() error {
	if err := core.TranslateValidationError(core.Validate.Struct(s)); err != nil {
		return err
	}
	t := s.RiskThresholds
	if !(0 <= t.Low && t.Low < t.Medium && t.Medium < t.High && t.High <= 1) {
		return core.NewValidationError(ErrBadThresholds, core.FieldError{
			Field: "risk_thresholds", Error: ErrBadThresholds.Error(),
		})
	}
	return nil
}
