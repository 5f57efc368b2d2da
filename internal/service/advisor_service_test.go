package service

import (
	"testing"

	"cardmax/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdvicePrompt(t *testing.T) {
	req := &dto.RecommendationRequest{Description: "DELTA AIR", Amount: 420, ForeignTransaction: true}
	rec := &dto.RecommendationResponse{
		Card:        dto.CardResponse{Name: "Sapphire", Issuer: "Chase", RewardType: "points"},
		RewardValue: 9.24,
		Explanation: "Using Sapphire will earn you 9.24 points on your 420.00 travel purchase",
		Category:    "travel",
		Alternatives: []dto.AlternativeResponse{
			{Card: dto.CardResponse{Name: "Venture", RewardType: "miles"}, RewardValue: 8.4},
		},
	}

	prompt := buildAdvicePrompt(req, rec)

	assert.Contains(t, prompt, "Purchase: 420.00 in category travel (DELTA AIR), foreign transaction.")
	assert.Contains(t, prompt, "Selected card: Sapphire by Chase, value 9.24 points.")
	assert.Contains(t, prompt, "- Venture: 8.40 miles")
}

func TestSanitizeUTF8(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"caf\xc3\xa9", "café"},
		{"bad\xffbyte", "badbyte"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeUTF8(tt.in))
	}
}
