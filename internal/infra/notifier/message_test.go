package notifier

import (
	"testing"
	"time"

	"blog-notify/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestBuildMessage(t *testing.T) {
	published := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		post entity.Post
		want string
	}{
		{
			name: "link only",
			post: entity.Post{
				URL:         "https://example.com/p/1",
				Title:       "Post one",
				PublishedAt: published,
			},
			want: "<https://example.com/p/1|Post one>",
		},
		{
			name: "label prefix",
			post: entity.Post{
				SourceLabel: "K8s",
				URL:         "https://example.com/p/2",
				Title:       "Post two",
				PublishedAt: published,
			},
			want: "K8s: <https://example.com/p/2|Post two>",
		},
		{
			name: "summary appended trimmed",
			post: entity.Post{
				SourceLabel: "K8s",
				URL:         "https://example.com/p/3",
				Title:       "Post three",
				Summary:     "  A short summary.  ",
				PublishedAt: published,
			},
			want: "K8s: <https://example.com/p/3|Post three>\n\nA short summary.",
		},
		{
			name: "techiness prefix",
			post: entity.Post{
				SourceLabel: "K8s",
				URL:         "https://example.com/p/4",
				Title:       "Post four",
				Techiness:   intPtr(3),
				PublishedAt: published,
			},
			want: "3️⃣ / 5️⃣: K8s: <https://example.com/p/4|Post four>",
		},
		{
			name: "all parts",
			post: entity.Post{
				SourceLabel: "DevOps",
				URL:         "https://example.com/p/5",
				Title:       "Post five",
				Summary:     "Summary body.",
				Techiness:   intPtr(5),
				PublishedAt: published,
			},
			want: "5️⃣ / 5️⃣: DevOps: <https://example.com/p/5|Post five>\n\nSummary body.",
		},
		{
			name: "gke label renamed",
			post: entity.Post{
				SourceLabel: "Google Kubernetes Engine Release Notes",
				URL:         "https://example.com/p/6",
				Title:       "Post six",
				PublishedAt: published,
			},
			want: "GKE feature log: <https://example.com/p/6|Post six>",
		},
		{
			name: "out of range techiness omitted",
			post: entity.Post{
				SourceLabel: "K8s",
				URL:         "https://example.com/p/7",
				Title:       "Post seven",
				Techiness:   intPtr(9),
				PublishedAt: published,
			},
			want: "K8s: <https://example.com/p/7|Post seven>",
		},
		{
			name: "whitespace-only summary omitted",
			post: entity.Post{
				SourceLabel: "K8s",
				URL:         "https://example.com/p/8",
				Title:       "Post eight",
				Summary:     "   \n ",
				PublishedAt: published,
			},
			want: "K8s: <https://example.com/p/8|Post eight>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildMessage(&tt.post); got != tt.want {
				t.Errorf("BuildMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSourceLabel(t *testing.T) {
	if got := renderSourceLabel("Google Kubernetes Engine"); got != "GKE feature log" {
		t.Errorf("renderSourceLabel() = %q", got)
	}
	if got := renderSourceLabel("Serverless"); got != "Serverless" {
		t.Errorf("renderSourceLabel() = %q", got)
	}
}
