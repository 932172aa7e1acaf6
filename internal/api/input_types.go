package api

type registerInput struct {
	Name            string `json:"name" form:"name"`
	Email           string `json:"email" form:"email"`
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type loginInput struct {
	Username   string `json:"username" form:"username"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type periodPayload struct {
	StartDate     string `json:"start_date" form:"start_date"`
	FlowIntensity string `json:"flow_intensity" form:"flow_intensity"`
	Cramping      bool   `json:"cramping" form:"cramping"`
	Notes         string `json:"notes" form:"notes"`
}

type symptomPayload struct {
	Date        string   `json:"date" form:"date"`
	Symptoms    []string `json:"symptoms" form:"symptoms"`
	MoodRating  int      `json:"mood_rating" form:"mood_rating"`
	EnergyLevel int      `json:"energy_level" form:"energy_level"`
}

type insightsInput struct {
	Feeling string `json:"feeling" form:"feeling"`
}

type cycleSettingsInput struct {
	CycleLength int `json:"cycle_length" form:"cycle_length"`
}

type passwordChangeInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}
