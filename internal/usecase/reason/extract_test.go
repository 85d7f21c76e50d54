package reason

import (
	"strings"
	"testing"

	"github.com/pawmatch/pawmatch/internal/domain"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantOK      bool
		wantPrimary string
	}{
		{
			name:        "bare object",
			raw:         `{"primary": "A gentle soul.", "additional": ["Walks well"], "concerns": []}`,
			wantOK:      true,
			wantPrimary: "A gentle soul.",
		},
		{
			name:        "fenced json block",
			raw:         "Here you go:\n```json\n{\"primary\": \"Loves kids.\"}\n```\nHope that helps!",
			wantOK:      true,
			wantPrimary: "Loves kids.",
		},
		{
			name:        "object buried in prose",
			raw:         `Sure! Based on the profile {"primary": "Calm and steady."} is my take.`,
			wantOK:      true,
			wantPrimary: "Calm and steady.",
		},
		{
			name:        "braces inside string values",
			raw:         `{"primary": "Loves {fetch} and naps.", "concerns": ["none"]}`,
			wantOK:      true,
			wantPrimary: "Loves {fetch} and naps.",
		},
		{
			name:        "first balanced object invalid, second parses",
			raw:         `{"oops": } and then {"primary": "Second try."}`,
			wantOK:      true,
			wantPrimary: "Second try.",
		},
		{
			name:   "object without primary rejected",
			raw:    `{"additional": ["nice dog"]}`,
			wantOK: false,
		},
		{
			name:        "payload directly after a rejected object",
			raw:         `{"note":"ignore"}{"primary":"Buddy matches your size preference."}`,
			wantOK:      true,
			wantPrimary: "Buddy matches your size preference.",
		},
		{
			name:   "plain prose",
			raw:    "This dog is wonderful and you should meet her.",
			wantOK: false,
		},
		{
			name:   "unbalanced braces",
			raw:    `{"primary": "never closes`,
			wantOK: false,
		},
		{
			name:   "empty input",
			raw:    "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (got %+v)", ok, tt.wantOK, got)
			}
			if ok && got.Primary != tt.wantPrimary {
				t.Errorf("primary = %q, want %q", got.Primary, tt.wantPrimary)
			}
		})
	}
}

func TestExtract_FullPayload(t *testing.T) {
	raw := `{"primary": "Great fit.", "additional": ["House trained", "Leash trained"], "concerns": ["Needs a yard"]}`

	got, ok := Extract(raw)
	if !ok {
		t.Fatal("expected successful extraction")
	}
	if len(got.Additional) != 2 || got.Additional[0] != "House trained" {
		t.Errorf("additional = %v", got.Additional)
	}
	if len(got.Concerns) != 1 || got.Concerns[0] != "Needs a yard" {
		t.Errorf("concerns = %v", got.Concerns)
	}
}

func TestFromRaw(t *testing.T) {
	long := strings.Repeat("a very good dog indeed ", 20)
	got := FromRaw("```json\n" + long + "\n```")

	if got.Primary == "" {
		t.Fatal("expected truncated primary")
	}
	if len(got.Primary) > domain.PrimaryMaxLen {
		t.Errorf("primary length %d exceeds %d", len(got.Primary), domain.PrimaryMaxLen)
	}
	if strings.Contains(got.Primary, "```") {
		t.Errorf("fence markers leaked into primary: %q", got.Primary)
	}

	if got := FromRaw("   \n\t "); got.Primary != "" {
		t.Errorf("whitespace input should yield empty reasoning, got %q", got.Primary)
	}
}
