package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/periodtracker/internal/models"
	"github.com/terraincognita07/periodtracker/internal/services"
)

type dashboardResponse struct {
	services.DashboardSummary
	PhaseLabel     string `json:"phase_label,omitempty"`
	NextPeriodText string `json:"next_period_text"`
	LastPeriodText string `json:"last_period_text"`
	TodayMoodText  string `json:"today_mood_text"`
}

// withUserSession loads the caller's state; mutate requests hold the
// per-user lock for the whole load-append-save cycle.
func (handler *Handler) withUserSession(c *fiber.Ctx, mutate bool, fn func(*services.Session) error) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if mutate {
		unlock := handler.userLocks.lock(user.ID)
		defer unlock()
	}

	session, err := handler.openSession(user.ID)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return fn(session)
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		summary := services.BuildDashboard(session.Model(), handler.now(), handler.location)
		response := dashboardResponse{
			DashboardSummary: summary,
			NextPeriodText:   "-",
			LastPeriodText:   "-",
			TodayMoodText:    handler.message(c, "dashboard.not_tracked"),
		}
		if summary.HasPeriods {
			response.PhaseLabel = handler.message(c, "phase."+string(summary.Phase))
		}
		if summary.NextPeriod != nil {
			response.NextPeriodText = services.FormatDisplayDate(*summary.NextPeriod, handler.location)
		}
		if summary.LastPeriod != nil {
			response.LastPeriodText = services.FormatDisplayDate(*summary.LastPeriod, handler.location)
		}
		if summary.TodayMood != nil {
			response.TodayMoodText = summary.MoodEmoji + " " + services.FormatMoodScore(*summary.TodayMood)
		}
		return c.JSON(response)
	})
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	now := handler.now()
	today := services.DateAtLocation(now, handler.location)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, handler.location)
	if raw := c.Query("month"); raw != "" {
		parsed, err := services.ParseMonthInput(raw, handler.location)
		if err != nil {
			return handler.serviceError(c, err)
		}
		monthStart = parsed
	}

	return handler.withUserSession(c, false, func(session *services.Session) error {
		month := services.BuildCalendarMonth(session.Model(), monthStart, now, handler.location)
		return c.JSON(fiber.Map{
			"month":    month,
			"weekdays": services.CalendarWeekdayHeaders,
			"previous": services.ShiftMonth(monthStart, -1).Format("2006-01"),
			"next":     services.ShiftMonth(monthStart, 1).Format("2006-01"),
		})
	})
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		return c.JSON(services.BuildHistory(session.Model(), handler.location))
	})
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		return c.JSON(fiber.Map{"periods": session.Model().Periods()})
	})
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	payload := periodPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_request")
	}
	startDate, err := services.ParseDayInput(payload.StartDate, handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}

	return handler.withUserSession(c, true, func(session *services.Session) error {
		entry, err := session.LogPeriod(services.PeriodInput{
			StartDate:     startDate,
			FlowIntensity: payload.FlowIntensity,
			Cramping:      payload.Cramping,
			Notes:         payload.Notes,
		}, handler.now())
		if err != nil {
			return handler.serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":                   true,
			"message":              handler.message(c, "message.period_logged"),
			"entry":                entry,
			"average_cycle_length": session.Model().AverageCycleLength(),
		})
	})
}

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		return c.JSON(fiber.Map{"symptoms": session.Model().Symptoms()})
	})
}

func (handler *Handler) LogSymptom(c *fiber.Ctx) error {
	payload := symptomPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_request")
	}

	input := services.SymptomInput{
		Symptoms:    payload.Symptoms,
		MoodRating:  payload.MoodRating,
		EnergyLevel: payload.EnergyLevel,
	}
	if payload.Date != "" {
		date, err := services.ParseDayInput(payload.Date, handler.location)
		if err != nil {
			return handler.serviceError(c, err)
		}
		input.Date = date
	}

	return handler.withUserSession(c, true, func(session *services.Session) error {
		entry, err := session.LogSymptom(input, handler.now())
		if err != nil {
			return handler.serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":      true,
			"message": handler.message(c, "message.symptoms_logged"),
			"entry":   entry,
		})
	})
}

func (handler *Handler) SymptomCatalog(c *fiber.Ctx) error {
	type catalogItem struct {
		Tag   string `json:"tag"`
		Icon  string `json:"icon"`
		Label string `json:"label"`
	}

	builtin := models.DefaultBuiltinSymptoms()
	items := make([]catalogItem, 0, len(builtin))
	for _, symptom := range builtin {
		items = append(items, catalogItem{
			Tag:   symptom.Tag,
			Icon:  symptom.Icon,
			Label: services.CapitalizeTag(symptom.Tag),
		})
	}
	return c.JSON(fiber.Map{
		"symptoms": items,
		"flows":    models.FlowIntensities(),
	})
}

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		return c.JSON(fiber.Map{
			"cycle_length":     session.Model().AverageCycleLength(),
			"min_cycle_length": services.MinCycleLength,
			"max_cycle_length": services.MaxCycleLength,
			"language":         currentLanguage(c),
			"languages":        handler.i18n.SupportedLanguages(),
		})
	})
}

func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	input := cycleSettingsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid_request")
	}

	return handler.withUserSession(c, true, func(session *services.Session) error {
		if err := session.UpdateCycleLength(input.CycleLength); err != nil {
			return handler.serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"ok":           true,
			"message":      handler.message(c, "message.cycle_length_updated", input.CycleLength),
			"cycle_length": session.Model().AverageCycleLength(),
		})
	})
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	return handler.withUserSession(c, false, func(session *services.Session) error {
		payload, err := services.ExportStateJSON(session.Model().State())
		if err != nil {
			return handler.serviceError(c, err)
		}
		c.Attachment(services.ExportFilename(handler.now(), handler.location))
		c.Type("json", "utf-8")
		return c.Send(payload)
	})
}
