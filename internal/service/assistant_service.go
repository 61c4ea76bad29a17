package service

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/felipe23murillo/parking/internal/domain"
	"github.com/felipe23murillo/parking/internal/repository"
)

// ErrAssistantBusy is returned when a question arrives while a previous
// one is still being answered. One in-flight request per assistant.
var ErrAssistantBusy = errors.New("assistant is already answering a question")

// platePattern matches plates like ABC123, AB-1234 or ABC 123D; the
// separator and internal whitespace are stripped before lookup.
var platePattern = regexp.MustCompile(`\b([A-Z]{2,3}[- ]?[0-9]{3,4}[A-Z]?)\b`)

// AssistantService answers free-text questions from the ledger. There is
// no inference: an ordered list of keyword predicates is evaluated top to
// bottom and the first match handles the message.
type AssistantService struct {
	reports  *ReportService
	settings repository.SettingsRepository
	location *time.Location

	rules []assistantRule

	mu      sync.Mutex
	busy    bool
	delay   func()
	nowFunc func() time.Time
}

type assistantRule struct {
	match   func(msg string) bool
	respond func(msg string) (string, error)
}

func NewAssistantService(reports *ReportService, settings repository.SettingsRepository, location *time.Location) *AssistantService {
	if location == nil {
		location = time.UTC
	}
	s := &AssistantService{
		reports:  reports,
		settings: settings,
		location: location,
		nowFunc:  time.Now,
	}
	s.delay = func() {
		// simulated typing; purely cosmetic
		time.Sleep(time.Duration(400+rand.Intn(300)) * time.Millisecond)
	}
	s.rules = s.buildRules()
	return s
}

// SetClock replaces the time source. Tests use it to pin "now".
func (s *AssistantService) SetClock(now func() time.Time) {
	s.nowFunc = now
}

// DisableTypingDelay removes the simulated pause. Used by tests.
func (s *AssistantService) DisableTypingDelay() {
	s.delay = func() {}
}

// Welcome is the assistant's opening message.
func (s *AssistantService) Welcome() string {
	lotName := "the parking lot"
	if settings, err := s.settings.Get(); err == nil && settings.LotName != "" {
		lotName = settings.LotName
	}
	return fmt.Sprintf("Hello! I am the assistant for %s.\n\n"+
		"I can look things up in real time:\n"+
		"- general statistics and summary\n"+
		"- active vehicles and spaces\n"+
		"- search by plate\n"+
		"- tariffs and history\n\n"+
		"Type your question or a plate number.", lotName)
}

// Ask answers one question. A second call while the first is still
// pending fails with ErrAssistantBusy; the caller should retry once the
// first answer arrives.
func (s *AssistantService) Ask(text string) (string, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return "", ErrAssistantBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	s.delay()

	msg := strings.ToLower(strings.TrimSpace(text))
	for _, rule := range s.rules {
		if rule.match(msg) {
			return rule.respond(msg)
		}
	}
	return s.fallback(), nil
}

// buildRules assembles the dispatch table. Order is the contract: the
// first matching rule wins, so broad predicates sit near the bottom.
func (s *AssistantService) buildRules() []assistantRule {
	var (
		carWords   = []string{"carro", "coche", "auto", "car"}
		motoWords  = []string{"moto", "motocicleta", "motorcycle"}
		truckWords = []string{"camión", "camion", "truck"}
		bikeWords  = []string{"bicicleta", "bici", "cicla", "bike"}
	)

	return []assistantRule{
		{
			match: anyOf("hola", "buenos días", "buenas tardes", "buenas noches", "buenas", "hey", "hi", "hello", "buen día"),
			respond: func(string) (string, error) {
				return s.greeting(), nil
			},
		},
		{
			match: anyOf("ayuda", "help", "comandos", "que puedes", "qué puedes", "cómo funciona", "como funciona", "commands"),
			respond: func(string) (string, error) {
				return s.help(), nil
			},
		},
		{
			match: anyOf("estadística", "estadisticas", "resumen", "estado general", "general", "info", "información", "cuántos", "cuantos hay", "reporte", "informe", "stats", "summary"),
			respond: func(string) (string, error) {
				return s.statsResponse()
			},
		},
		{
			match: anyOf("espacio", "disponible", "libre", "capacidad", "ocupado", "ocupación", "puesto", "space", "free"),
			respond: func(msg string) (string, error) {
				switch {
				case containsAny(msg, carWords):
					return s.spacesResponse(domain.CategoryCar)
				case containsAny(msg, motoWords):
					return s.spacesResponse(domain.CategoryMotorcycle)
				case containsAny(msg, truckWords):
					return s.spacesResponse(domain.CategoryTruck)
				case containsAny(msg, bikeWords):
					return s.spacesResponse(domain.CategoryBicycle)
				}
				return s.spacesResponse("")
			},
		},
		{
			match: anyOf("tarifa", "precio", "costo", "cobro", "cuánto cuesta", "cuanto cuesta", "vale", "valor hora", "cuánto cobra", "cuanto cobra", "rate", "price"),
			respond: func(string) (string, error) {
				return s.tariffsResponse()
			},
		},
		{
			match: anyOf("historial", "historia", "ingreso", "ganancia", "recaudo", "venta", "total cobrado", "salida", "history", "revenue"),
			respond: func(string) (string, error) {
				return s.historyResponse()
			},
		},
		{
			match: withoutPlate(anyOf(carWords...)),
			respond: func(string) (string, error) {
				return s.vehiclesByCategory(domain.CategoryCar)
			},
		},
		{
			match: withoutPlate(anyOf(motoWords...)),
			respond: func(string) (string, error) {
				return s.vehiclesByCategory(domain.CategoryMotorcycle)
			},
		},
		{
			match: withoutPlate(anyOf(truckWords...)),
			respond: func(string) (string, error) {
				return s.vehiclesByCategory(domain.CategoryTruck)
			},
		},
		{
			match: withoutPlate(anyOf(bikeWords...)),
			respond: func(string) (string, error) {
				return s.vehiclesByCategory(domain.CategoryBicycle)
			},
		},
		{
			match: anyOf("vehículo", "vehiculo", "activo", "parqueado", "dentro", "vehicle", "parked"),
			respond: func(string) (string, error) {
				return s.activeVehicles()
			},
		},
		{
			match: func(msg string) bool { return ExtractPlate(msg) != "" },
			respond: func(msg string) (string, error) {
				return s.plateResponse(ExtractPlate(msg))
			},
		},
		{
			match: anyOf("buscar", "busca", "encontrar", "placa", "dónde está", "donde esta", "search", "find"),
			respond: func(string) (string, error) {
				return "To find a vehicle, type its plate directly.\nExample: ABC123", nil
			},
		},
		{
			match: anyOf("hora", "tiempo", "fecha", "día", "hoy", "time", "date", "today"),
			respond: func(string) (string, error) {
				now := s.nowFunc().In(s.location)
				return fmt.Sprintf("Current date and time:\n%s\n%s",
					now.Format("Monday, January 2 2006"), now.Format("15:04:05")), nil
			},
		},
		{
			match: anyOf("último", "ultimo", "reciente", "nuevo", "acaba de", "latest", "last"),
			respond: func(string) (string, error) {
				return s.lastVehicle()
			},
		},
	}
}

// ExtractPlate pulls a plate-shaped token out of free text, with the
// separator removed, or returns "".
func ExtractPlate(msg string) string {
	match := platePattern.FindString(strings.ToUpper(msg))
	if match == "" {
		return ""
	}
	return strings.NewReplacer(" ", "", "-", "").Replace(match)
}

func anyOf(keywords ...string) func(string) bool {
	return func(msg string) bool { return containsAny(msg, keywords) }
}

func containsAny(msg string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func withoutPlate(match func(string) bool) func(string) bool {
	return func(msg string) bool {
		return match(msg) && ExtractPlate(msg) == ""
	}
}

func (s *AssistantService) greeting() string {
	var salute string
	switch hour := s.nowFunc().In(s.location).Hour(); {
	case hour < 12:
		salute = "Good morning!"
	case hour < 18:
		salute = "Good afternoon!"
	default:
		salute = "Good evening!"
	}
	return salute + "\n\nI am ready to help. You can ask me about:\n" +
		"- stats: overall summary\n" +
		"- spaces: current availability\n" +
		"- tariffs: prices per vehicle type\n" +
		"- history: archived records and revenue\n" +
		"- a plate number to find a vehicle"
}

func (s *AssistantService) help() string {
	return "Available commands:\n\n" +
		"- stats: overall summary\n" +
		"- vehicles: list of active vehicles\n" +
		"- cars / motorcycles / trucks / bicycles: by type\n" +
		"- spaces: availability\n" +
		"- tariffs: current prices\n" +
		"- history: records and revenue\n" +
		"- ABC123: look up a vehicle by plate"
}

func (s *AssistantService) statsResponse() (string, error) {
	stats, err := s.reports.Stats()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("General summary\n\n")
	fmt.Fprintf(&b, "Active vehicles: %d\n", stats.ActiveTotal)
	if stats.ActiveTotal > 0 {
		for _, cat := range domain.Categories {
			if n := stats.ActiveByCategory[cat]; n > 0 {
				fmt.Fprintf(&b, "- %ss: %d\n", strings.ToLower(string(cat)), n)
			}
		}
	} else {
		b.WriteString("- no vehicles parked\n")
	}
	occ := stats.Occupancy
	fmt.Fprintf(&b, "\nOccupancy: %d/%d (%d%%)\n", occ.Occupied, occ.Total, occ.Percent)
	fmt.Fprintf(&b, "Free spaces: %d\n", occ.Free)
	fmt.Fprintf(&b, "\nRevenue today: $%s\n", formatMoney(stats.RevenueToday))
	fmt.Fprintf(&b, "Total history records: %d", stats.HistoryCount)
	return b.String(), nil
}

func (s *AssistantService) spacesResponse(category domain.VehicleCategory) (string, error) {
	occ, err := s.reports.Occupancy()
	if err != nil {
		return "", err
	}

	if category != "" {
		for _, c := range occ.Categories {
			if c.Category != category {
				continue
			}
			var b strings.Builder
			fmt.Fprintf(&b, "Spaces for %s:\n\n", category)
			fmt.Fprintf(&b, "Available: %d of %d\n", c.Free, c.Total)
			fmt.Fprintf(&b, "Occupied: %d\n", c.Occupied)
			if c.Free == 0 {
				fmt.Fprintf(&b, "\nNo spaces available for %ss right now!", strings.ToLower(string(category)))
			} else if free, err := s.reports.spaceRepo.FindAvailable(category); err == nil && len(free) <= 10 {
				numbers := make([]string, 0, len(free))
				for _, space := range free {
					numbers = append(numbers, space.Number)
				}
				fmt.Fprintf(&b, "\nFree spaces: %s", strings.Join(numbers, ", "))
			}
			return b.String(), nil
		}
	}

	var b strings.Builder
	b.WriteString("Space availability:\n\n")
	for _, c := range occ.Categories {
		fmt.Fprintf(&b, "- %ss: %d/%d free\n", strings.ToLower(string(c.Category)), c.Free, c.Total)
	}
	if occ.Free == 0 {
		b.WriteString("\nThe lot is completely full!")
	}
	return b.String(), nil
}

func (s *AssistantService) tariffsResponse() (string, error) {
	rules, err := s.reports.Tariffs()
	if err != nil {
		return "", err
	}
	if len(rules) == 0 {
		return "No tariffs are configured.", nil
	}
	var b strings.Builder
	b.WriteString("Parking tariffs:\n\n")
	for _, rule := range rules {
		if rule.FlatRate > 0 {
			fmt.Fprintf(&b, "- %s: $%s (flat)\n", rule.Category, formatMoney(rule.FlatRate))
		} else {
			fmt.Fprintf(&b, "- %s: $%s / hour\n", rule.Category, formatMoney(rule.HourlyRate))
		}
	}
	return b.String(), nil
}

func (s *AssistantService) historyResponse() (string, error) {
	all, err := s.reports.Revenue()
	if err != nil {
		return "", err
	}
	if all.Records == 0 {
		return "The history is empty.", nil
	}
	today, err := s.reports.RevenueToday()
	if err != nil {
		return "", err
	}
	recent, err := s.reports.History()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Parking history:\n\n")
	fmt.Fprintf(&b, "Total records: %d\n", all.Records)
	fmt.Fprintf(&b, "Total revenue: $%s\n", formatMoney(all.Total))
	fmt.Fprintf(&b, "Average per vehicle: $%s\n", formatMoney(all.Average))
	fmt.Fprintf(&b, "Today: %d vehicles, $%s\n", today.Records, formatMoney(today.Total))

	if len(recent) > 3 {
		recent = recent[:3]
	}
	if len(recent) > 0 {
		b.WriteString("\nLatest departures:\n")
		for _, rec := range recent {
			fmt.Fprintf(&b, "- %s (%s): %s, $%s\n", rec.Plate, rec.Category, rec.StayDuration, formatMoney(rec.AmountCharged))
		}
	}
	return b.String(), nil
}

func (s *AssistantService) vehiclesByCategory(category domain.VehicleCategory) (string, error) {
	sessions, err := s.reports.ActiveSessions(category)
	if err != nil {
		return "", err
	}
	lower := strings.ToLower(string(category))
	if len(sessions) == 0 {
		return fmt.Sprintf("There are no %ss parked right now.", lower), nil
	}
	now := s.nowFunc()
	var b strings.Builder
	fmt.Fprintf(&b, "%d active %s(s):\n\n", len(sessions), lower)
	for _, session := range sessions {
		fmt.Fprintf(&b, "- %s at %s, %s\n", session.Plate, session.SpaceNumber, elapsedText(session.EntryTime, now))
	}
	return b.String(), nil
}

func (s *AssistantService) activeVehicles() (string, error) {
	sessions, err := s.reports.ActiveSessions("")
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "There are no vehicles parked right now.", nil
	}
	now := s.nowFunc()
	var b strings.Builder
	fmt.Fprintf(&b, "%d active vehicle(s):\n\n", len(sessions))
	shown := sessions
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, session := range shown {
		fmt.Fprintf(&b, "- %s (%s) at %s, %s\n", session.Plate, session.Category, session.SpaceNumber, elapsedText(session.EntryTime, now))
	}
	if len(sessions) > 10 {
		fmt.Fprintf(&b, "\n...and %d more.", len(sessions)-10)
	}
	return b.String(), nil
}

func (s *AssistantService) plateResponse(plate string) (string, error) {
	result, err := s.reports.LookupPlate(plate, 3)
	if err != nil {
		return "", err
	}
	if result.Active == nil && len(result.History) == 0 {
		return fmt.Sprintf("No vehicle found with plate %s.", plate), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Result for %s:\n", plate)
	if result.Active != nil {
		b.WriteString("\nCURRENTLY PARKED\n")
		fmt.Fprintf(&b, "- Type: %s\n", result.Active.Category)
		fmt.Fprintf(&b, "- Space: %s\n", result.Active.SpaceNumber)
		fmt.Fprintf(&b, "- Entered at: %s\n", result.Active.EntryTimeDisplay)
		fmt.Fprintf(&b, "- Time parked: %s\n", result.Charge.DurationDisplay())
		fmt.Fprintf(&b, "- Estimated charge: $%s\n", formatMoney(result.Charge.Amount))
	}
	if len(result.History) > 0 {
		b.WriteString("\nRecent visits:\n")
		for _, rec := range result.History {
			fmt.Fprintf(&b, "- %s: %s, $%s\n",
				rec.ExitTime.In(s.location).Format("2006-01-02"), rec.StayDuration, formatMoney(rec.AmountCharged))
		}
	}
	return b.String(), nil
}

func (s *AssistantService) lastVehicle() (string, error) {
	session, err := s.reports.LastArrival()
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return "There are no vehicles parked right now.", nil
		}
		return "", err
	}
	return fmt.Sprintf("Last vehicle checked in:\n\n- Plate: %s\n- Type: %s\n- Space: %s\n- Entered at: %s\n- %s ago",
		session.Plate, session.Category, session.SpaceNumber, session.EntryTimeDisplay,
		elapsedText(session.EntryTime, s.nowFunc())), nil
}

func (s *AssistantService) fallback() string {
	return "I did not understand that. Try one of:\n\n" +
		"- stats\n- vehicles\n- spaces\n- tariffs\n- history\n\n" +
		"Or type a plate to find a vehicle. Type 'help' for every command."
}

func elapsedText(entry, now time.Time) string {
	elapsed := now.Sub(entry)
	if elapsed < 0 {
		elapsed = 0
	}
	return fmt.Sprintf("%dh %dm", int(elapsed/time.Hour), int((elapsed%time.Hour)/time.Minute))
}

// formatMoney renders whole amounts with thousands separators, e.g. 9000
// as "9,000".
func formatMoney(amount float64) string {
	raw := strconv.FormatFloat(amount, 'f', 0, 64)
	neg := strings.HasPrefix(raw, "-")
	if neg {
		raw = raw[1:]
	}
	var b strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
