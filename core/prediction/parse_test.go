package prediction

import (
	"testing"

	"github.com/trezcool/hatari/core/student"
)

func TestParseModelAnswer(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantErr        bool
		wantScore      float64
		wantLevel      student.RiskLevel
		wantConfidence float64
	}{
		{
			name:           "bare JSON",
			text:           `{"riskScore": 0.72, "riskLevel": "High", "confidence": 0.9, "factors": []}`,
			wantScore:      0.72,
			wantLevel:      student.RiskHigh,
			wantConfidence: 0.9,
		},
		{
			name: "markdown fenced",
			text: "Here is my assessment:\n```json\n{\"riskScore\": 0.45, \"confidence\": 0.85}\n```\nLet me know if you need more.",
			wantScore:      0.45,
			wantLevel:      student.RiskMedium,
			wantConfidence: 0.85,
		},
		{
			name:           "missing confidence defaults",
			text:           `{"riskScore": 0.1}`,
			wantScore:      0.1,
			wantLevel:      student.RiskLow,
			wantConfidence: 0.8,
		},
		{
			name:           "score clamped",
			text:           `{"riskScore": 1.7, "confidence": -2}`,
			wantScore:      1,
			wantLevel:      student.RiskHigh,
			wantConfidence: 0,
		},
		{
			name:      "level re-derived from score",
			text:      `{"riskScore": 0.1, "riskLevel": "High", "confidence": 0.5}`,
			wantScore: 0.1,
			wantLevel: student.RiskLow, wantConfidence: 0.5,
		},
		{name: "no JSON", text: "I cannot assess this student.", wantErr: true},
		{name: "empty", text: "", wantErr: true},
		{name: "malformed JSON", text: `{"riskScore": oops}`, wantErr: true},
		{name: "missing riskScore", text: `{"riskLevel": "High"}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := parseModelAnswer("s1", tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseModelAnswer() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseModelAnswer() failed: %v", err)
			}
			if pred.StudentID != "s1" {
				t.Errorf("StudentID = %v; want s1", pred.StudentID)
			}
			if pred.RiskScore != tt.wantScore {
				t.Errorf("RiskScore = %v; want %v", pred.RiskScore, tt.wantScore)
			}
			if pred.RiskLevel != tt.wantLevel {
				t.Errorf("RiskLevel = %v; want %v", pred.RiskLevel, tt.wantLevel)
			}
			if pred.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v; want %v", pred.Confidence, tt.wantConfidence)
			}
			if pred.ModelVersion != remoteModelVersion {
				t.Errorf("ModelVersion = %v; want %v", pred.ModelVersion, remoteModelVersion)
			}
			if pred.Factors == nil {
				t.Error("Factors = nil; want non-nil")
			}
		})
	}
}
