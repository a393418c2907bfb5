package extract

import (
	"testing"
	"time"
)

func TestExtractReminder_TimePhrases(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		text    string
		wantDue time.Time
	}{
		{
			name:    "in N hours",
			text:    "remind me to stretch in 2 hours",
			wantDue: now.Add(2 * time.Hour),
		},
		{
			name:    "in N minutes",
			text:    "remind me to call Sam in 30 minutes",
			wantDue: now.Add(30 * time.Minute),
		},
		{
			name:    "in N days",
			text:    "remind me to water the plants in 3 days",
			wantDue: now.Add(3 * 24 * time.Hour),
		},
		{
			name:    "tomorrow",
			text:    "remind me to submit the report tomorrow",
			wantDue: now.Add(24 * time.Hour),
		},
		{
			name:    "next week",
			text:    "remind me to review the budget next week",
			wantDue: now.Add(7 * 24 * time.Hour),
		},
		{
			name:    "hours pattern wins over tomorrow",
			text:    "remind me to check in 2 hours or tomorrow",
			wantDue: now.Add(2 * time.Hour),
		},
		{
			name:    "no time phrase defaults to one hour",
			text:    "remind me to drink water",
			wantDue: now.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReminder(tt.text, now)
			if got == nil {
				t.Fatal("ExtractReminder() = nil, want reminder")
			}
			if !got.DueAt.Equal(tt.wantDue) {
				t.Errorf("DueAt = %v, want %v", got.DueAt, tt.wantDue)
			}
		})
	}
}

func TestExtractReminder_Priority(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name         string
		text         string
		wantPriority string
	}{
		{name: "urgent", text: "remind me to pay rent, urgent", wantPriority: "high"},
		{name: "important", text: "remind me to pay rent, it is important", wantPriority: "high"},
		{name: "asap", text: "remind me to reply asap", wantPriority: "high"},
		{name: "no rush", text: "remind me to tidy the garage, no rush", wantPriority: "low"},
		{name: "whenever", text: "remind me to read that article whenever", wantPriority: "low"},
		{name: "default medium", text: "remind me to buy milk", wantPriority: "medium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReminder(tt.text, now)
			if got == nil {
				t.Fatal("ExtractReminder() = nil, want reminder")
			}
			if got.Priority != tt.wantPriority {
				t.Errorf("Priority = %q, want %q", got.Priority, tt.wantPriority)
			}
		})
	}
}

func TestExtractReminder_TitleStripping(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		text      string
		wantTitle string
	}{
		{
			name:      "strips lead-in, time and priority",
			text:      "remind me to call Sam in 30 minutes, urgent",
			wantTitle: "call Sam",
		},
		{
			name:      "strips tomorrow",
			text:      "remind me to submit the report tomorrow",
			wantTitle: "submit the report",
		},
		{
			name:      "empty after stripping defaults",
			text:      "remind me in 1 hour",
			wantTitle: "Reminder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReminder(tt.text, now)
			if got == nil {
				t.Fatal("ExtractReminder() = nil, want reminder")
			}
			if got.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", got.Title, tt.wantTitle)
			}
		})
	}
}

func TestExtractReminder_EmptyText(t *testing.T) {
	if got := ExtractReminder("   ", time.Now()); got != nil {
		t.Errorf("ExtractReminder(blank) = %+v, want nil", got)
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		want        *Email
		wantNothing bool
	}{
		{
			name: "full request",
			text: "email jane@example.com subject Lunch let's meet at noon",
			want: &Email{To: "jane@example.com", Subject: "Lunch", Body: "let's meet at noon"},
		},
		{
			name: "send to phrasing",
			text: "send to bob@work.io about deadlines the report slips a week",
			want: &Email{To: "bob@work.io", Subject: "deadlines", Body: "the report slips a week"},
		},
		{
			name: "no subject or body uses defaults",
			text: "email ops@example.org",
			want: &Email{To: "ops@example.org", Subject: "No subject", Body: "Sent from voice assistant"},
		},
		{
			name:        "no address yields nothing",
			text:        "send a message to my manager about the outage",
			wantNothing: true,
		},
		{
			name:        "empty text yields nothing",
			text:        "",
			wantNothing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractEmail(tt.text)
			if tt.wantNothing {
				if got != nil {
					t.Errorf("ExtractEmail() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ExtractEmail() = nil, want result")
			}
			if got.To != tt.want.To {
				t.Errorf("To = %q, want %q", got.To, tt.want.To)
			}
			if got.Subject != tt.want.Subject {
				t.Errorf("Subject = %q, want %q", got.Subject, tt.want.Subject)
			}
			if got.Body != tt.want.Body {
				t.Errorf("Body = %q, want %q", got.Body, tt.want.Body)
			}
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "in", text: "what's the weather in Paris", want: "Paris"},
		{name: "for", text: "forecast for Tokyo please", want: "Tokyo"},
		{name: "at", text: "conditions at Heathrow", want: "Heathrow"},
		{name: "no match falls back", text: "how's the weather", want: "London"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLocation(tt.text, "London"); got != tt.want {
				t.Errorf("ExtractLocation(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
