package instrument

// BoardEvaluation returns the board-led executive evaluation: six dimensions,
// five rated questions each, plus three open questions. Evaluators and the
// subject's private self-rating answer the same scored items; the reflection
// prompts belong to the self-rating only and never appear in board output.
func BoardEvaluation() *Instrument {
	return &Instrument{
		ID:      "board-evaluation",
		Name:    "Board-Led Executive Evaluation",
		Version: "1",
		Scale:   DefaultScale,
		Dimensions: []Dimension{
			{
				ID: "vision", Label: "Vision & Strategic Direction",
				QuestionIDs:      []string{"v1", "v2", "v3", "v4", "v5"},
				ReflectionPrompt: "What is one strategic priority you have been avoiding or delaying — and why?",
			},
			{
				ID: "board_relations", Label: "Board Relations & Governance",
				QuestionIDs:      []string{"br1", "br2", "br3", "br4", "br5"},
				ReflectionPrompt: "Where is your board partnership strongest — and where does it need the most honest attention?",
			},
			{
				ID: "financial_stewardship", Label: "Financial Stewardship",
				QuestionIDs:      []string{"fs1", "fs2", "fs3", "fs4", "fs5"},
				ReflectionPrompt: "What financial risk or gap are you carrying right now that the board should probably know more about?",
			},
			{
				ID: "staff_leadership", Label: "Staff Leadership & Culture",
				QuestionIDs:      []string{"sl1", "sl2", "sl3", "sl4", "sl5"},
				ReflectionPrompt: "Is there someone on your team whose performance or fit you have been avoiding addressing? What would it take to act?",
			},
			{
				ID: "external_relations", Label: "External Relations & Impact",
				QuestionIDs:      []string{"er1", "er2", "er3", "er4", "er5"},
				ReflectionPrompt: "Which external relationship or opportunity are you underinvesting in right now?",
			},
			{
				ID: "sustainability", Label: "Personal Growth & Sustainability",
				QuestionIDs:      []string{"pg1", "pg2", "pg3", "pg4", "pg5"},
				ReflectionPrompt: "If you left tomorrow, how ready would this organization be — and what does that tell you?",
			},
		},
		Questions: []Question{
			{ID: "v1", DimensionID: "vision", Text: "The CEO articulates a clear and compelling vision for the organization."},
			{ID: "v2", DimensionID: "vision", Text: "The CEO translates vision into actionable strategic priorities."},
			{ID: "v3", DimensionID: "vision", Text: "The CEO maintains mission focus under pressure or changing conditions."},
			{ID: "v4", DimensionID: "vision", Text: "The CEO anticipates trends and opportunities relevant to the mission."},
			{ID: "v5", DimensionID: "vision", Text: "The CEO effectively communicates strategic direction to key stakeholders."},

			{ID: "br1", DimensionID: "board_relations", Text: "The CEO provides the board with timely, accurate, and complete information."},
			{ID: "br2", DimensionID: "board_relations", Text: "The CEO respects the board's governance role and appropriate boundaries."},
			{ID: "br3", DimensionID: "board_relations", Text: "The CEO is responsive and accessible to board members."},
			{ID: "br4", DimensionID: "board_relations", Text: "The CEO supports and develops board leadership effectively."},
			{ID: "br5", DimensionID: "board_relations", Text: "The CEO facilitates productive board meetings and discussions."},

			{ID: "fs1", DimensionID: "financial_stewardship", Text: "The CEO ensures sound financial management and accountability."},
			{ID: "fs2", DimensionID: "financial_stewardship", Text: "The CEO keeps the board appropriately informed about financial performance."},
			{ID: "fs3", DimensionID: "financial_stewardship", Text: "The CEO effectively manages resources to advance the mission."},
			{ID: "fs4", DimensionID: "financial_stewardship", Text: "The CEO demonstrates a proactive approach to financial sustainability."},
			{ID: "fs5", DimensionID: "financial_stewardship", Text: "The CEO leads fundraising and revenue development effectively."},

			{ID: "sl1", DimensionID: "staff_leadership", Text: "The CEO builds and retains a strong leadership team."},
			{ID: "sl2", DimensionID: "staff_leadership", Text: "The CEO fosters a positive and productive organizational culture."},
			{ID: "sl3", DimensionID: "staff_leadership", Text: "The CEO develops staff capacity and invests in talent."},
			{ID: "sl4", DimensionID: "staff_leadership", Text: "The CEO models the values and culture the organization aspires to."},
			{ID: "sl5", DimensionID: "staff_leadership", Text: "The CEO manages organizational change effectively."},

			{ID: "er1", DimensionID: "external_relations", Text: "The CEO effectively represents the organization to external stakeholders."},
			{ID: "er2", DimensionID: "external_relations", Text: "The CEO builds and maintains strong community partnerships."},
			{ID: "er3", DimensionID: "external_relations", Text: "The CEO advances the organization's public profile and brand."},
			{ID: "er4", DimensionID: "external_relations", Text: "The CEO demonstrates measurable impact in the community."},
			{ID: "er5", DimensionID: "external_relations", Text: "The CEO cultivates relationships with funders and donors effectively."},

			{ID: "pg1", DimensionID: "sustainability", Text: "The CEO demonstrates a commitment to their own professional development."},
			{ID: "pg2", DimensionID: "sustainability", Text: "The CEO manages their workload in a way that is sustainable long-term."},
			{ID: "pg3", DimensionID: "sustainability", Text: "The CEO has taken steps to develop succession and leadership continuity."},
			{ID: "pg4", DimensionID: "sustainability", Text: "The CEO seeks and is receptive to feedback."},
			{ID: "pg5", DimensionID: "sustainability", Text: "The CEO maintains appropriate work-life balance and models healthy boundaries."},
		},
		OpenQuestions: []OpenQuestion{
			{ID: "open1", Text: "What does this CEO do exceptionally well that the board should recognize and reinforce?"},
			{ID: "open2", Text: "Where is the greatest opportunity for this CEO to grow or strengthen their leadership?"},
			{ID: "open3", Text: "Is there anything else the board should know as it considers this evaluation?"},
		},
	}
}
