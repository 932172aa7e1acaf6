package models

type BuiltinSymptom struct {
	Tag  string `json:"tag"`
	Icon string `json:"icon"`
}

func DefaultBuiltinSymptoms() []BuiltinSymptom {
	return []BuiltinSymptom{
		{Tag: "cramps", Icon: "🩸"},
		{Tag: "headache", Icon: "🤕"},
		{Tag: "bloating", Icon: "🎈"},
		{Tag: "fatigue", Icon: "😴"},
		{Tag: "mood-swings", Icon: "😢"},
		{Tag: "breast-tenderness", Icon: "💔"},
		{Tag: "acne", Icon: "🔴"},
		{Tag: "back-pain", Icon: "🦴"},
		{Tag: "nausea", Icon: "🤢"},
		{Tag: "insomnia", Icon: "🌙"},
		{Tag: "food-cravings", Icon: "🍫"},
		{Tag: "irritability", Icon: "😤"},
	}
}

func BuiltinSymptomIcon(tag string) (string, bool) {
	for _, symptom := range DefaultBuiltinSymptoms() {
		if symptom.Tag == tag {
			return symptom.Icon, true
		}
	}
	return "", false
}
