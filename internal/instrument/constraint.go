package instrument

// Constraint returns the core constraint diagnostic: five organizational
// domains, three questions each, single-respondent, with the full directed
// pattern table.
func Constraint() *Instrument {
	return &Instrument{
		ID:      "core-constraint",
		Name:    "Core Constraint Diagnostic",
		Version: "1",
		Scale:   DefaultScale,
		Dimensions: []Dimension{
			{ID: "strategic_clarity", Label: "Strategic Clarity", QuestionIDs: []string{"q1", "q2", "q3"}},
			{ID: "resource_alignment", Label: "Resource Alignment", QuestionIDs: []string{"q4", "q5", "q6"}},
			{ID: "leadership_impact", Label: "Leadership Impact", QuestionIDs: []string{"q7", "q8", "q9"}},
			{ID: "operational_capacity", Label: "Operational Capacity", QuestionIDs: []string{"q10", "q11", "q12"}},
			{ID: "organizational_resilience", Label: "Organizational Resilience", QuestionIDs: []string{"q13", "q14", "q15"}},
		},
		Questions: []Question{
			{ID: "q1", DimensionID: "strategic_clarity", Text: "Our strategic priorities are clear and understood by all staff."},
			{ID: "q2", DimensionID: "strategic_clarity", Text: "We make decisions quickly because we know what matters most."},
			{ID: "q3", DimensionID: "strategic_clarity", Text: "Our programs and initiatives are tightly aligned with our mission."},
			{ID: "q4", DimensionID: "resource_alignment", Text: "We have the financial resources needed to achieve our goals."},
			{ID: "q5", DimensionID: "resource_alignment", Text: "We often pursue opportunities that stretch us too thin.", ReverseScored: true},
			{ID: "q6", DimensionID: "resource_alignment", Text: "Our budget allocations reflect our true priorities."},
			{ID: "q7", DimensionID: "leadership_impact", Text: "Leadership transitions have disrupted our progress in the past.", ReverseScored: true},
			{ID: "q8", DimensionID: "leadership_impact", Text: "Our board and executive team have a strong, productive partnership."},
			{ID: "q9", DimensionID: "leadership_impact", Text: "We develop leaders at all levels of the organization."},
			{ID: "q10", DimensionID: "operational_capacity", Text: "Our systems and processes help us work efficiently."},
			{ID: "q11", DimensionID: "operational_capacity", Text: "Staff burnout is a recurring challenge for us.", ReverseScored: true},
			{ID: "q12", DimensionID: "operational_capacity", Text: "We can scale our programs without proportionally scaling our problems."},
			{ID: "q13", DimensionID: "organizational_resilience", Text: "We adapt well to unexpected challenges and changes."},
			{ID: "q14", DimensionID: "organizational_resilience", Text: "We are heavily dependent on a single funding source.", ReverseScored: true},
			{ID: "q15", DimensionID: "organizational_resilience", Text: "Our organization would thrive even if key people left."},
		},
		Patterns: constraintPatterns,
	}
}

// constraintPatterns maps the directed (weakest, second-weakest) pair to its
// narrative. The reverse pair tells a different story on purpose: "A is the
// bottleneck, compounded by B" is not the same diagnosis as the other way
// around.
var constraintPatterns = map[string]Pattern{
	PatternKey("strategic_clarity", "resource_alignment"): {
		Name:        "The Scattered Mission",
		Description: "Without clear priorities, resources get spread thin across too many initiatives.",
		Teaser:      "Your organization may be trying to do too much. Clarity would unlock focus.",
	},
	PatternKey("strategic_clarity", "leadership_impact"): {
		Name:        "The Drifting Ship",
		Description: "Leadership energy is consumed by ambiguity rather than execution.",
		Teaser:      "Your leaders are working hard but may be pulling in different directions.",
	},
	PatternKey("strategic_clarity", "operational_capacity"): {
		Name:        "The Busy Blur",
		Description: "Operations run constantly but without a clear north star.",
		Teaser:      "You're busy but may not be making the progress you want.",
	},
	PatternKey("strategic_clarity", "organizational_resilience"): {
		Name:        "The Reactive Cycle",
		Description: "Without strategic clarity, every challenge feels like a crisis.",
		Teaser:      "You may be constantly responding to the urgent instead of the important.",
	},
	PatternKey("resource_alignment", "strategic_clarity"): {
		Name:        "The Resource Trap",
		Description: "Limited resources make it hard to think strategically.",
		Teaser:      "Financial pressure may be driving decisions more than mission.",
	},
	PatternKey("resource_alignment", "leadership_impact"): {
		Name:        "The Scarcity Mindset",
		Description: "Leaders spend more time on survival than vision.",
		Teaser:      "Your leaders may be focused on keeping the lights on rather than growth.",
	},
	PatternKey("resource_alignment", "operational_capacity"): {
		Name:        "The Underfunded Engine",
		Description: "Operations are constrained by resource limitations.",
		Teaser:      "You may know what to do but lack the resources to do it well.",
	},
	PatternKey("resource_alignment", "organizational_resilience"): {
		Name:        "The Precarious Balance",
		Description: "Financial instability creates organizational fragility.",
		Teaser:      "One funding setback could significantly disrupt your work.",
	},
	PatternKey("leadership_impact", "strategic_clarity"): {
		Name:        "The Leadership Vacuum",
		Description: "Unclear leadership direction creates strategic drift.",
		Teaser:      "Your organization may need stronger leadership alignment.",
	},
	PatternKey("leadership_impact", "resource_alignment"): {
		Name:        "The Talent Drain",
		Description: "Leadership challenges affect your ability to attract resources.",
		Teaser:      "Leadership stability could unlock new funding opportunities.",
	},
	PatternKey("leadership_impact", "operational_capacity"): {
		Name:        "The Bottleneck",
		Description: "Too much depends on too few leaders.",
		Teaser:      "Key people may be carrying too much of the organizational weight.",
	},
	PatternKey("leadership_impact", "organizational_resilience"): {
		Name:        "The Key Person Risk",
		Description: "The organization's future is tied to specific individuals.",
		Teaser:      "What would happen if a key leader left tomorrow?",
	},
	PatternKey("operational_capacity", "strategic_clarity"): {
		Name:        "The Efficiency Trap",
		Description: "Operational focus without strategic direction.",
		Teaser:      "You may be efficiently doing the wrong things.",
	},
	PatternKey("operational_capacity", "resource_alignment"): {
		Name:        "The Stretched Team",
		Description: "Operations outpace available resources.",
		Teaser:      "Your team may be doing more with less—but at what cost?",
	},
	PatternKey("operational_capacity", "leadership_impact"): {
		Name:        "The Overwhelmed Organization",
		Description: "Operational demands consume leadership capacity.",
		Teaser:      "Leaders may be too busy managing to lead.",
	},
	PatternKey("operational_capacity", "organizational_resilience"): {
		Name:        "The Fragile Machine",
		Description: "Operations work but can't handle disruption.",
		Teaser:      "Everything works—until something breaks.",
	},
	PatternKey("organizational_resilience", "strategic_clarity"): {
		Name:        "The Survival Mode",
		Description: "Constant adaptation without clear direction.",
		Teaser:      "You're surviving but may not be thriving.",
	},
	PatternKey("organizational_resilience", "resource_alignment"): {
		Name:        "The Vulnerable Position",
		Description: "Resilience challenges stem from resource instability.",
		Teaser:      "Building reserves could transform your organization's confidence.",
	},
	PatternKey("organizational_resilience", "leadership_impact"): {
		Name:        "The Succession Gap",
		Description: "Organizational resilience depends too heavily on current leaders.",
		Teaser:      "Your organization's future may be too tied to present leadership.",
	},
	PatternKey("organizational_resilience", "operational_capacity"): {
		Name:        "The Rigid Structure",
		Description: "Operations can't flex to meet changing needs.",
		Teaser:      "Your systems may be limiting your ability to adapt.",
	},
}
