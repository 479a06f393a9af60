package receptionist

var responses = map[Intent]string{
	IntentGreeting:    "Hello! I'm your AI assistant at Fast & Furious Car Showroom. I can help you with vehicle information, schedule test drives, calculate financing, and answer any questions. How can I assist you today?",
	IntentInventory:   "We have an amazing selection of luxury vehicles including Ferrari 488 GTB ($280,000), Lamborghini Aventador ($450,000), and McLaren 720S ($320,000). Would you like more details about any specific model?",
	IntentTestDrive:   "I'd be happy to help you schedule a test drive! We have availability throughout the week. Which vehicle interests you, and what dates work best for you?",
	IntentFinancing:   "We offer competitive financing options with rates starting at 4.9% APR. Our finance calculator can help you estimate monthly payments. Would you like me to help you calculate payments for a specific vehicle?",
	IntentHours:       "Our showroom is open Monday-Saturday 9AM-8PM, and Sunday 10AM-6PM. We're located at 123 Luxury Drive, Miami, FL 33101. You can also reach us at (555) 123-4567.",
	IntentServices:    "We offer comprehensive services including maintenance, repair, trade-ins, and extended warranties. All services are performed by certified technicians using genuine parts.",
	IntentPricing:     "Our vehicles range from luxury sports cars starting at $280,000 to ultra-premium models at $450,000+. Each vehicle includes a comprehensive warranty and service package. Would you like specific pricing for any model?",
	IntentFerrari:     "The Ferrari 488 GTB is priced at $280,000. It features a 3.9L V8 twin-turbo engine with 661 HP, 0-60 mph in 3.0 seconds, and a top speed of 205 mph. Would you like to schedule a test drive?",
	IntentLamborghini: "The Lamborghini Aventador is our flagship model at $450,000. It has a 6.5L V12 engine producing 740 HP, 0-60 mph in 2.9 seconds, and a top speed of 217 mph. It's truly an extraordinary machine!",
	IntentMcLaren:     "The McLaren 720S is available for $320,000. It features a 4.0L V8 twin-turbo engine with 710 HP, 0-60 mph in 2.8 seconds, and butterfly doors. It's the perfect blend of performance and luxury.",
	IntentFallback:    "I understand you're interested in learning more. I can help you with vehicle information, scheduling test drives, financing options, and general inquiries. Is there something specific you'd like to know about our luxury vehicles or services?",
}

// Respond returns the canned answer for an intent. Unknown intents get the
// fallback answer.
func Respond(i Intent) string {
	if r, ok := responses[i]; ok {
		return r
	}
	return responses[IntentFallback]
}

// Greeting opens every fresh conversation.
func Greeting() string { return responses[IntentGreeting] }

// Reply classifies text and answers it.
func Reply(text string) (Intent, string) {
	i := Classify(text)
	return i, Respond(i)
}

// QuickAction is a one-tap shortcut in the chat widget. Its prompt is shown
// as the visitor's message; the answer comes straight from its intent.
type QuickAction struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
	Intent Intent `json:"intent"`
}

var quickActions = []QuickAction{
	{ID: "inventory", Label: "View Inventory", Prompt: "Tell me about your inventory", Intent: IntentInventory},
	{ID: "testDrive", Label: "Book Test Drive", Prompt: "I want to schedule a test drive", Intent: IntentTestDrive},
	{ID: "financing", Label: "Finance Calculator", Prompt: "Tell me about financing options", Intent: IntentFinancing},
	{ID: "hours", Label: "Contact Info", Prompt: "What are your hours and location?", Intent: IntentHours},
}

func QuickActions() []QuickAction {
	out := make([]QuickAction, len(quickActions))
	copy(out, quickActions)
	return out
}

// LookupQuickAction finds a quick action by id.
func LookupQuickAction(id string) (QuickAction, bool) {
	for _, qa := range quickActions {
		if qa.ID == id {
			return qa, true
		}
	}
	return QuickAction{}, false
}
