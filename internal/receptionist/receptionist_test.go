package receptionist

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"Hello there", IntentGreeting},
		{"HEY", IntentGreeting},
		{"show me your vehicles", IntentInventory},
		{"Tell me about financing options", IntentFinancing},
		{"Can I book a test drive?", IntentTestDrive},
		{"I need an appointment", IntentTestDrive},
		{"what about a loan", IntentFinancing},
		{"monthly payment?", IntentFinancing},
		{"when are you open", IntentHours},
		{"where is your address", IntentHours},
		{"do you do maintenance", IntentServices},
		{"what does it cost", IntentPricing},
		{"Ferrari", IntentFerrari},
		{"lamborghini", IntentLamborghini},
		{"McLaren", IntentMcLaren},
		{"", IntentFallback},
		{"purple", IntentFallback},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		// greeting outranks everything
		{"hello, what is the price of the ferrari", IntentGreeting},
		// keywords are whole words: no "hi" inside "which" or "lamborghini"
		{"which models", IntentFallback},
		{"hi, which models", IntentGreeting},
		{"the lamborghini", IntentLamborghini},
		// punctuation separates words
		{"test-drive?", IntentTestDrive},
		// inventory outranks a brand name
		{"what cars like the mclaren", IntentInventory},
		// only the plural forms ask for the inventory
		{"tell me about the ferrari car", IntentFerrari},
		{"is that vehicle a mclaren", IntentMcLaren},
		// financing outranks pricing
		{"loan cost", IntentFinancing},
		// "service" is checked before "price"
		{"service price", IntentServices},
		// pricing outranks brands
		{"lamborghini price", IntentPricing},
	}
	for _, tt := range tests {
		if got := Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestRespond_EveryIntentHasAnswer(t *testing.T) {
	for _, i := range Intents() {
		if Respond(i) == "" {
			t.Errorf("no response for %s", i)
		}
	}
	if Respond("unknown") != Respond(IntentFallback) {
		t.Fatal("unknown intent should fall back")
	}
	if !strings.Contains(Greeting(), "Fast & Furious") {
		t.Fatal("unexpected greeting")
	}
}

func TestReply(t *testing.T) {
	i, answer := Reply("tell me about the McLaren")
	if i != IntentMcLaren || !strings.Contains(answer, "$320,000") {
		t.Fatalf("Reply = %s, %q", i, answer)
	}
}

func TestQuickActions(t *testing.T) {
	for _, qa := range QuickActions() {
		if Classify(qa.Prompt) != qa.Intent {
			t.Errorf("quick action %s prompt classifies as %s, want %s", qa.ID, Classify(qa.Prompt), qa.Intent)
		}
		got, ok := LookupQuickAction(qa.ID)
		if !ok || got != qa {
			t.Errorf("lookup %s failed", qa.ID)
		}
	}
	if _, ok := LookupQuickAction("nope"); ok {
		t.Fatal("unexpected quick action")
	}
}
