package config

// Default returns the compiled-in tuning tables. The keyword lists and
// bias phrases started from the advisor's original corpus and get tuned
// from usage; treat this as data.
func Default() *Config {
	return &Config{
		Intents: []IntentRule{
			{
				Intent:   "startup_visa",
				Keywords: []string{"startup", "founder", "entrepreneur", "innovative business"},
				Patterns: []string{`استارت.?آپ`, `کارآفرین`, `بیزینس نو`},
			},
			{
				Intent:   "student_visa",
				Keywords: []string{"student", "study", "university", "college", "msc", "phd", "education"},
				Patterns: []string{`دانشجو`, `تحصیل`, `دانشگاه`, `مدرسه`, `ویزا.?تحصیلی`},
			},
			{
				Intent:   "visitor_visa",
				Keywords: []string{"tourist", "visit", "visitor", "holiday", "short stay", "travel"},
				Patterns: []string{`توریستی`, `ویزای.?بازدید`, `مسافرت`, `دیدار`, `توریست`},
			},
			{
				Intent:   "freelancer_visa",
				Keywords: []string{"work", "job", "freelancer", "self-employed", "employment"},
				Patterns: []string{`کار`, `ویزای.?کار`, `فریلنسر`, `خویش.?فرما`},
			},
			{
				Intent:   "residence_permit",
				Keywords: []string{"permanent", "residence", "pr", "citizenship", "immigrate"},
				Patterns: []string{`اقامت`, `مهاجرت`, `شهروندی`},
			},
		},
		Slots: []SlotSpec{
			{
				Name:       "age",
				QuestionEN: "What is your age?",
				QuestionFA: "چند سالته؟",
			},
			{
				Name:       "latest_degree",
				QuestionEN: "What is your latest degree or education level?",
				QuestionFA: "آخرین مدرک یا مقطع تحصیلی‌ات چیه؟",
			},
			{
				Name:       "english_level",
				QuestionEN: "What is your English level (IELTS, TOEFL, etc.)?",
				QuestionFA: "سطح زبان انگلیسی‌ات چقدره؟ (مثل آیلتس یا تافل)",
			},
			{
				Name:       "marital_status",
				QuestionEN: "Are you single or married?",
				QuestionFA: "مجردی یا متأهل؟",
			},
			{
				Name:       "budget",
				QuestionEN: "What is your approximate study or visa budget in euros?",
				QuestionFA: "بودجه‌ی تقریبی‌ات برای تحصیل یا ویزا چقدره؟ (به یورو)",
			},
		},
		Modes: ModeTriggers{
			Advisory: []string{"advice", "recommend", "personal", "based on me", "help me choose"},
			QA:       []string{"general", "question", "info", "information"},
		},
		Chunker: ChunkerConfig{
			MaxLen:       700,
			MinParagraph: 20,
		},
		Retrieval: RetrievalConfig{
			TopK: 3,
			Bias: map[string]string{
				"student_visa":     "study visa university admission requirements tuition scholarship residence permit",
				"startup_visa":     "startup visa Netherlands IND RVO facilitator innovation business plan entrepreneur",
				"visitor_visa":     "tourist visa visitor visa UK cost requirements duration embassy appointment",
				"freelancer_visa":  "work permit freelancer self-employed business visa contract registration",
				"residence_permit": "residence permit renewal extension permanent stay Netherlands EU card",
				"family_reunion":   "family reunification spouse dependent children application visa",
				"embassy_docs":     "embassy document submission appointment biometrics passport upload",
			},
		},
		Generation: GenerationConfig{
			MaxTokens:      100,
			MaxTokensWide:  180,
			Temperature:    0.45,
			AdvisoryTokens: 150,
		},
	}
}
