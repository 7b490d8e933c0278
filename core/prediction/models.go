package prediction

import (
	"errors"
	"time"

	"github.com/trezcool/hatari/core/student"
)

var (
	// errors
	ErrNotFound   = errors.New("prediction not found")
	ErrNoMetadata = errors.New("model metadata not found")
)

// Factor is a named explanatory contributor to a risk prediction. Impact is
// in [-1,1]; positive means the factor increases risk.
type Factor struct {
	Feature     string  `json:"feature"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
}

// RiskPrediction is the latest risk assessment for a student. Predictions
// are keyed by StudentID: a new prediction overwrites the previous one.
type RiskPrediction struct {
	StudentID    string            `json:"student_id"`
	RiskScore    float64           `json:"risk_score"`
	RiskLevel    student.RiskLevel `json:"risk_level"`
	Confidence   float64           `json:"confidence"`
	Factors      []Factor          `json:"factors"`
	ModelVersion string            `json:"model_version"`
	PredictedAt  time.Time         `json:"predicted_at"` // UTC
}

// ModelMetadata describes the active scoring model.
type ModelMetadata struct {
	Version      string             `json:"version"`
	TrainingDate time.Time          `json:"training_date"`
	SampleSize   int                `json:"sample_size"`
	Accuracy     float64            `json:"accuracy"`
	Thresholds   student.Thresholds `json:"thresholds"`
}

// Repository is the storage contract for predictions and the model
// metadata singleton.
type Repository interface {
	QueryAllPredictions() ([]RiskPrediction, error)
	GetPredictionByStudentID(studentID string) (RiskPrediction, error)
	// SavePrediction upserts by StudentID; the latest prediction wins.
	SavePrediction(p RiskPrediction) error
	SavePredictions(predictions []RiskPrediction) error
	GetModelMetadata() (ModelMetadata, error)
	SaveModelMetadata(m ModelMetadata) error
}
