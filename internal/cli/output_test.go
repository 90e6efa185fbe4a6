package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/erabu/internal/models"
)

func sampleResponse() *models.MatchResponse {
	return &models.MatchResponse{
		Results: []*models.MatchResult{
			{
				Profile: &models.CreatorProfile{
					Name: "Neha Sharma", Bio: "Fashion & lifestyle influencer",
					Niche: "Fashion", Location: "Mumbai",
					AudienceRaw: "180000", AudienceSize: 180000,
				},
				Score: 0.8123,
				Rank:  1,
			},
		},
		Total:     2,
		Brief:     "beauty campaign",
		QueryTime: 12,
	}
}

func TestWriteMatchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Neha Sharma", "Fashion", "Mumbai", "180k", "0.8123", "Top 1 of 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteMatchResults_TextCached(t *testing.T) {
	resp := sampleResponse()
	resp.Cached = true
	var buf bytes.Buffer
	if err := WriteMatchResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(cached)") {
		t.Errorf("cached response should be labeled:\n%s", buf.String())
	}
}

func TestWriteMatchResults_TextEmpty(t *testing.T) {
	resp := &models.MatchResponse{Brief: "x"}
	var buf bytes.Buffer
	if err := WriteMatchResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No matching creators") {
		t.Errorf("empty result message missing:\n%s", buf.String())
	}
}

func TestWriteMatchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMatchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.MatchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Profile.Name != "Neha Sharma" {
		t.Errorf("decoded: %+v", decoded)
	}
	if decoded.Results[0].Score != 0.8123 {
		t.Errorf("score: got %v", decoded.Results[0].Score)
	}
}

func TestAudienceLabel(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.CreatorProfile
		want    string
	}{
		{"parsed", &models.CreatorProfile{AudienceSize: 95000, AudienceRaw: "95000"}, "95k"},
		{"raw fallback", &models.CreatorProfile{AudienceRaw: "lots"}, "lots"},
		{"missing", &models.CreatorProfile{}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audienceLabel(tt.profile); got != tt.want {
				t.Errorf("audienceLabel = %q, want %q", got, tt.want)
			}
		})
	}
}
