// Package receptionist is the showroom's canned-response chat assistant. It
// classifies a visitor message into an intent by keyword and answers from a
// fixed response table. It keeps no state of its own.
package receptionist

import (
	"strings"
	"unicode"
)

type Intent string

const (
	IntentGreeting    Intent = "greeting"
	IntentInventory   Intent = "inventory"
	IntentTestDrive   Intent = "test_drive"
	IntentFinancing   Intent = "financing"
	IntentHours       Intent = "hours"
	IntentServices    Intent = "services"
	IntentPricing     Intent = "pricing"
	IntentFerrari     Intent = "ferrari"
	IntentLamborghini Intent = "lamborghini"
	IntentMcLaren     Intent = "mclaren"
	IntentFallback    Intent = "fallback"
)

type rule struct {
	intent   Intent
	keywords []string
}

// rules are tried in order; the first rule with a keyword present in the
// message wins. Keywords match whole words, or a run of whole words for
// phrases, so "hi" does not fire inside "vehicles" or "lamborghini".
var rules = []rule{
	{IntentGreeting, []string{"hello", "hi", "hey"}},
	{IntentInventory, []string{"inventory", "cars", "vehicles"}},
	{IntentTestDrive, []string{"test drive", "test drives", "schedule", "appointment"}},
	{IntentFinancing, []string{"finance", "financing", "loan", "loans", "payment", "payments"}},
	{IntentHours, []string{"hours", "open", "location", "address"}},
	{IntentServices, []string{"service", "services", "maintenance", "repair"}},
	{IntentPricing, []string{"price", "prices", "pricing", "cost", "costs"}},
	{IntentFerrari, []string{"ferrari"}},
	{IntentLamborghini, []string{"lamborghini"}},
	{IntentMcLaren, []string{"mclaren"}},
}

// Classify maps any text, including the empty string, to an intent.
func Classify(text string) Intent {
	words := normalize(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(words, " "+kw+" ") {
				return r.intent
			}
		}
	}
	return IntentFallback
}

// normalize lowercases text and reduces it to single-space separated words
// with a space on each end.
func normalize(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(fields, " ") + " "
}

// Intents lists every intent, fallback last.
func Intents() []Intent {
	out := make([]Intent, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.intent)
	}
	return append(out, IntentFallback)
}
