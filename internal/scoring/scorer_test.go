package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanJSONResponse(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "raw json",
			in:   `{"match_score": 85, "analysis": "good fit"}`,
			want: `{"match_score": 85, "analysis": "good fit"}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"match_score\": 85}\n```",
			want: `{"match_score": 85}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"match_score\": 85}\n```",
			want: `{"match_score": 85}`,
		},
		{
			name: "surrounding prose",
			in:   "Here is the result:\n{\"match_score\": 40}\nHope that helps.",
			want: `{"match_score": 40}`,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, cleanJSONResponse(c.in))
		})
	}
}

func TestClampScore(t *testing.T) {
	require.Equal(t, 0, ClampScore(-5))
	require.Equal(t, 0, ClampScore(0))
	require.Equal(t, 55, ClampScore(55))
	require.Equal(t, 100, ClampScore(100))
	require.Equal(t, 100, ClampScore(140))
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Request{
		Resume:          "ten years of Go",
		JobDescription:  "backend role",
		JobRequirements: "Go, PostgreSQL",
	})

	require.Contains(t, prompt, "ten years of Go")
	require.Contains(t, prompt, "backend role")
	require.Contains(t, prompt, "Go, PostgreSQL")
	require.Contains(t, prompt, "match_score")
	// Optional sections stay out when empty.
	require.False(t, strings.Contains(prompt, "COVER LETTER"))
}

func TestBuildPromptWithCoverLetter(t *testing.T) {
	prompt := buildPrompt(Request{
		Resume:         "resume text",
		CoverLetter:    "dear hiring manager",
		JobDescription: "role",
	})
	require.Contains(t, prompt, "COVER LETTER")
	require.Contains(t, prompt, "dear hiring manager")
}
