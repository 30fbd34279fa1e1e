package instrument

import "fmt"

// Leadership returns the leadership profile: 48 questions across four
// dimensions, with anchor items weighted 1.2 and a 30/60/90 growth plan per
// dimension. No pattern table; the report leads with the weakest dimension's
// growth plan instead.
func Leadership() *Instrument {
	qids := func(from, to int) []string {
		out := make([]string, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, fmt.Sprintf("q%d", i))
		}
		return out
	}

	return &Instrument{
		ID:      "leadership-profile",
		Name:    "Leadership Profile",
		Version: "1",
		Scale:   DefaultScale,
		Dimensions: []Dimension{
			{ID: "clarity", Label: "Vision & Clarity", QuestionIDs: qids(1, 12)},
			{ID: "investment", Label: "People Investment", QuestionIDs: qids(13, 24)},
			{ID: "ownership", Label: "Radical Ownership", QuestionIDs: qids(25, 36)},
			{ID: "reflection", Label: "Growth & Reflection", QuestionIDs: qids(37, 48)},
		},
		Questions:   leadershipQuestions,
		GrowthPlans: leadershipGrowthPlans,
	}
}

var leadershipQuestions = []Question{
	{ID: "q1", DimensionID: "clarity", Text: "When I make a difficult decision, people can trace it back to what I've said matters.", Weight: 1},
	{ID: "q2", DimensionID: "clarity", Text: "I can describe where we're going in a way that makes people want to be part of it.", Weight: 1},
	{ID: "q3", DimensionID: "clarity", Text: "My calendar reflects my stated priorities.", Weight: 1},
	{ID: "q4", DimensionID: "clarity", Text: "I tell people the truth, even when it's uncomfortable.", Weight: 1.2},
	{ID: "q5", DimensionID: "clarity", Text: "I make expectations clear—people know what success looks like.", Weight: 1},
	{ID: "q6", DimensionID: "clarity", Text: "When I talk about our mission, it's specific enough that people can picture it.", Weight: 1},
	{ID: "q7", DimensionID: "clarity", Text: "I make hard calls rather than avoiding them.", Weight: 1.2},
	{ID: "q8", DimensionID: "clarity", Text: "I say what I stand for—and it's consistent over time.", Weight: 1},
	{ID: "q9", DimensionID: "clarity", Text: "The people we serve would recognize themselves in how I describe our work.", Weight: 1},
	{ID: "q10", DimensionID: "clarity", Text: "I provide direction, not just inspiration.", Weight: 1},
	{ID: "q11", DimensionID: "clarity", Text: "I help people believe the future can be better than today.", Weight: 1},
	{ID: "q12", DimensionID: "clarity", Text: "I challenge things that aren't working—even when it's uncomfortable to name them.", Weight: 1},

	{ID: "q13", DimensionID: "investment", Text: "I spend regular time developing the people on my team—not just managing tasks.", Weight: 1},
	{ID: "q14", DimensionID: "investment", Text: "I know what's going on in my people's lives—not just their work.", Weight: 1},
	{ID: "q15", DimensionID: "investment", Text: "I give people real responsibility, not just assignments.", Weight: 1},
	{ID: "q16", DimensionID: "investment", Text: "I think about who will carry this work forward after me.", Weight: 1.2},
	{ID: "q17", DimensionID: "investment", Text: "When making decisions, I ask whose voice isn't in the room.", Weight: 1},
	{ID: "q18", DimensionID: "investment", Text: "I pay attention to who gets opportunities—and who consistently doesn't.", Weight: 1},
	{ID: "q19", DimensionID: "investment", Text: "I recognize people in ways that are specific to what they did and who they are.", Weight: 1},
	{ID: "q20", DimensionID: "investment", Text: "I've built a team that could succeed without me.", Weight: 1.2},
	{ID: "q21", DimensionID: "investment", Text: "I actively create space for people to lead, even when I could do it myself.", Weight: 1},
	{ID: "q22", DimensionID: "investment", Text: "I notice when someone is struggling and make time to check in.", Weight: 1},
	{ID: "q23", DimensionID: "investment", Text: "I help people see their potential, not just their performance.", Weight: 1},
	{ID: "q24", DimensionID: "investment", Text: "I celebrate progress, not just outcomes.", Weight: 1},

	{ID: "q25", DimensionID: "ownership", Text: "When things go wrong, I look at my role first.", Weight: 1.2},
	{ID: "q26", DimensionID: "ownership", Text: "I follow through on what I say I'll do.", Weight: 1},
	{ID: "q27", DimensionID: "ownership", Text: "I take responsibility for the culture my leadership creates.", Weight: 1},
	{ID: "q28", DimensionID: "ownership", Text: "I own my mistakes publicly, not just privately.", Weight: 1.2},
	{ID: "q29", DimensionID: "ownership", Text: "I act on problems rather than waiting for someone else to fix them.", Weight: 1},
	{ID: "q30", DimensionID: "ownership", Text: "I hold myself to the same standards I expect from others.", Weight: 1},
	{ID: "q31", DimensionID: "ownership", Text: "I address difficult conversations directly rather than avoiding them.", Weight: 1},
	{ID: "q32", DimensionID: "ownership", Text: "I make decisions and stand behind them.", Weight: 1},
	{ID: "q33", DimensionID: "ownership", Text: "I take accountability for results, not just effort.", Weight: 1},
	{ID: "q34", DimensionID: "ownership", Text: "I create clarity when things are ambiguous rather than waiting for direction.", Weight: 1},
	{ID: "q35", DimensionID: "ownership", Text: "I speak up when I see something that needs to change.", Weight: 1},
	{ID: "q36", DimensionID: "ownership", Text: "I prioritize what matters most, even when it's not what's most urgent.", Weight: 1},

	{ID: "q37", DimensionID: "reflection", Text: "I make time to reflect on how I'm leading, not just what I'm doing.", Weight: 1},
	{ID: "q38", DimensionID: "reflection", Text: "I ask for feedback—and actually change based on what I hear.", Weight: 1.2},
	{ID: "q39", DimensionID: "reflection", Text: "I can name what I'm learning right now.", Weight: 1},
	{ID: "q40", DimensionID: "reflection", Text: "I notice when I'm reacting out of fear or ego.", Weight: 1},
	{ID: "q41", DimensionID: "reflection", Text: "I learn from failures rather than just moving past them.", Weight: 1},
	{ID: "q42", DimensionID: "reflection", Text: "I take time to rest and recover—not just power through.", Weight: 1},
	{ID: "q43", DimensionID: "reflection", Text: "I'm honest with myself about my limitations.", Weight: 1},
	{ID: "q44", DimensionID: "reflection", Text: "I revisit my assumptions when things aren't working.", Weight: 1},
	{ID: "q45", DimensionID: "reflection", Text: "I have people in my life who will tell me the truth.", Weight: 1.2},
	{ID: "q46", DimensionID: "reflection", Text: "I can sit with uncertainty without rushing to resolve it.", Weight: 1},
	{ID: "q47", DimensionID: "reflection", Text: "I notice patterns in my leadership—both strengths and blind spots.", Weight: 1},
	{ID: "q48", DimensionID: "reflection", Text: "I invest in my own growth, not just the growth of others.", Weight: 1},
}

var leadershipGrowthPlans = map[string]GrowthPlan{
	"clarity": {
		Near: "Write your personal leadership manifesto in 100 words or less. Share it with one trusted colleague for feedback.",
		Mid:  `Conduct a "values audit" — ask 3 team members what they think you stand for. Compare to your intent.`,
		Far:  `Create a "clarity ritual" — a monthly practice where you reconnect with why this work matters.`,
	},
	"investment": {
		Near: "Identify one person who deserves more of your time. Schedule three 1:1s with them this month.",
		Mid:  `Create a "development plan" for your top 3 direct reports. What do they need to grow?`,
		Far:  "Build a succession map. Who could step into your role? What do they need to be ready?",
	},
	"ownership": {
		Near: "Identify one problem you've been waiting for someone else to solve. Own it this week.",
		Mid:  `Ask your team: "What do I avoid addressing?" Act on what you hear.`,
		Far:  `Build an "accountability partner" relationship with a peer. Meet monthly to truth-tell.`,
	},
	"reflection": {
		Near: "Block 30 minutes every Friday for reflection. Use a simple prompt: What did I learn? What will I do differently?",
		Mid:  "Find a mentor, coach, or peer group. Commit to monthly learning conversations.",
		Far:  `Create a personal "board of advisors" — 3-4 people who will tell you the truth about your leadership.`,
	},
}
