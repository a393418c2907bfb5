// Package extract turns free-form utterances into structured action inputs
// using best-effort pattern matching, with no network calls. The heuristics
// favor the common phrasings and are not guaranteed-correct NLP.
package extract

import (
	"regexp"
	"strings"
	"time"
)

// Reminder is a candidate reminder recovered from natural language.
type Reminder struct {
	Title    string
	DueAt    time.Time
	Priority string
}

// Email is a candidate outbound email recovered from natural language.
type Email struct {
	To      string
	Subject string
	Body    string
}

const (
	defaultSubject = "No subject"
	defaultBody    = "Sent from voice assistant"
	defaultTitle   = "Reminder"
)

// Relative-time patterns in priority order; the first match wins.
var timePatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+hours?\b`), time.Hour},
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+minutes?\b`), time.Minute},
	{regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`), 24 * time.Hour},
	{regexp.MustCompile(`(?i)\btomorrow\b`), 0},
	{regexp.MustCompile(`(?i)\bnext\s+week\b`), 0},
}

var (
	highPriorityRe = regexp.MustCompile(`(?i)\b(urgent|important|asap)\b`)
	lowPriorityRe  = regexp.MustCompile(`(?i)\b(whenever|someday|eventually|no rush|low priority)\b`)
	remindLeadRe   = regexp.MustCompile(`(?i)^(?:please\s+)?remind\s+me(?:\s+to)?\b\s*`)

	emailAddrRe    = regexp.MustCompile(`(?i)\b(?:send\s+(?:an?\s+email\s+)?to|email|to)\s+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	emailSubjectRe = regexp.MustCompile(`(?i)\b(?:subject|about|regarding)[:\s]+([^\s,.!?]+)`)

	locationRe = regexp.MustCompile(`(?i)\b(?:in|for|at)\s+([a-zA-Z][a-zA-Z'-]*)`)
)

// ExtractReminder parses a reminder request out of free text. Returns nil
// only when the text is empty; otherwise the due time defaults to one hour
// from now and the priority to medium.
func ExtractReminder(text string, now time.Time) *Reminder {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	dueAt := now.Add(time.Hour)
	title := text

	for i, p := range timePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch i {
		case 3: // tomorrow
			dueAt = now.Add(24 * time.Hour)
		case 4: // next week
			dueAt = now.Add(7 * 24 * time.Hour)
		default:
			n := 0
			for _, c := range m[1] {
				n = n*10 + int(c-'0')
			}
			dueAt = now.Add(time.Duration(n) * p.unit)
		}
		title = strings.Replace(title, m[0], "", 1)
		break
	}

	priority := "medium"
	if m := highPriorityRe.FindString(title); m != "" {
		priority = "high"
		title = strings.Replace(title, m, "", 1)
	} else if m := lowPriorityRe.FindString(title); m != "" {
		priority = "low"
		title = strings.Replace(title, m, "", 1)
	}

	title = remindLeadRe.ReplaceAllString(title, "")
	title = cleanup(title)
	if title == "" {
		title = defaultTitle
	}

	return &Reminder{Title: title, DueAt: dueAt, Priority: priority}
}

// ExtractEmail parses an outbound email out of free text. Returns nil when
// no recipient address can be found.
func ExtractEmail(text string) *Email {
	addrMatch := emailAddrRe.FindStringSubmatch(text)
	if addrMatch == nil {
		return nil
	}

	email := &Email{
		To:      addrMatch[1],
		Subject: defaultSubject,
		Body:    defaultBody,
	}

	body := strings.Replace(text, addrMatch[0], "", 1)
	if subjMatch := emailSubjectRe.FindStringSubmatch(body); subjMatch != nil {
		email.Subject = subjMatch[1]
		body = strings.Replace(body, subjMatch[0], "", 1)
	}

	body = cleanup(body)
	if body != "" {
		email.Body = body
	}
	return email
}

// ExtractLocation captures the word following "in", "for" or "at", falling
// back to the given default when nothing matches.
func ExtractLocation(text, fallback string) string {
	if m := locationRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return fallback
}

// cleanup collapses whitespace left behind by phrase stripping and trims
// stray punctuation from the edges.
func cleanup(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " ,.!?:;")
}
