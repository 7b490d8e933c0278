package prediction

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/hatari/core/student"
)

var (
	errNoJSON      = errors.New("no JSON object found in model response")
	errNoRiskScore = errors.New("model response is missing riskScore")
)

// modelAnswer is the JSON object the model is instructed to produce.
// Numeric fields are pointers so absent and zero can be told apart.
type modelAnswer struct {
	RiskScore  *float64 `json:"riskScore"`
	RiskLevel  string   `json:"riskLevel"`
	Confidence *float64 `json:"confidence"`
	Factors    []Factor `json:"factors"`
	Reasoning  string   `json:"reasoning"`
}

// parseModelAnswer extracts the first JSON object from the model's free-text
// answer (models routinely wrap it in prose or markdown fences) and turns it
// into a validated RiskPrediction. Scores are clamped to [0,1] and the risk
// level is always re-derived from the score so the stored classification
// cannot disagree with the thresholds.
func parseModelAnswer(studentID, text string) (RiskPrediction, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return RiskPrediction{}, errNoJSON
	}

	var ans modelAnswer
	if err := json.Unmarshal([]byte(text[start:end+1]), &ans); err != nil {
		return RiskPrediction{}, errors.Wrap(err, "decoding model response")
	}
	if ans.RiskScore == nil {
		return RiskPrediction{}, errNoRiskScore
	}

	confidence := 0.8
	if ans.Confidence != nil {
		confidence = *ans.Confidence
	}
	score := clamp01(*ans.RiskScore)
	factors := ans.Factors
	if factors == nil {
		factors = []Factor{}
	}
	return RiskPrediction{
		StudentID:    studentID,
		RiskScore:    score,
		RiskLevel:    student.RiskLevelFor(score),
		Confidence:   clamp01(confidence),
		Factors:      factors,
		ModelVersion: remoteModelVersion,
		PredictedAt:  nowFunc().UTC(),
	}, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
