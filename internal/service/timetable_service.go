package service

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/stmaths/advising-check/internal/catalogue"
	"github.com/stmaths/advising-check/internal/models"
	appErrors "github.com/stmaths/advising-check/pkg/errors"
)

// weekPattern narrows a timeslot to a subset of teaching weeks.
type weekPattern int

const (
	weeksAll weekPattern = iota
	weeksOdd
	weeksEven
)

func (w weekPattern) covers(other weekPattern) bool {
	return w == weeksAll || w == other
}

func (w weekPattern) String() string {
	switch w {
	case weeksOdd:
		return "odd weeks"
	case weeksEven:
		return "even weeks"
	default:
		return "all weeks"
	}
}

// Timeslot is one parsed teaching slot of a module.
type Timeslot struct {
	Time  string
	Day   string
	Weeks weekPattern
}

func (t Timeslot) key() string {
	return t.Time + " " + t.Day
}

// timetableOverrides replaces catalogue timetable entries whose published
// text does not follow the comma-separated slot convention.
var timetableOverrides = map[string]string{
	"MT4112": "10am Wed (odd weeks), 10am Fri (odd weeks)",
}

// TimetableService detects lecture clashes between the modules a student
// plans to take in the same semester.
type TimetableService struct {
	catalogue *catalogue.Catalogue
	logger    *zap.Logger
}

// NewTimetableService wires the clash checker.
func NewTimetableService(cat *catalogue.Catalogue, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{catalogue: cat, logger: logger}
}

// Check reports every set of same-semester modules that meet at the same
// day and time. Slots restricted to odd or even weeks only clash with
// slots that share a week in common, so an odd-weeks lecture and an
// even-weeks lecture at the same hour coexist.
func (s *TimetableService) Check(student *models.Student) ([]string, error) {
	var findings []string
	seen := make(map[string]bool)
	for _, label := range student.HonoursYearLabels() {
		for _, semester := range []models.Semester{models.SemesterOne, models.SemesterTwo} {
			slots, order, err := s.groupSlots(student.ChoicesFor(label, semester))
			if err != nil {
				return nil, err
			}
			for _, clash := range findClashes(slots, order) {
				message := fmt.Sprintf("Clash for %s %s between modules %s at %s",
					label, semester,
					strings.Join(clash.modules, " and "),
					strings.Join(clash.slots, " and "))
				if seen[message] {
					continue
				}
				seen[message] = true
				findings = append(findings, message)
			}
		}
	}
	return findings, nil
}

// groupSlots parses the timetable of every known module in one semester's
// choices, keeping first-seen module order for deterministic output.
func (s *TimetableService) groupSlots(choices []models.ModuleChoice) (map[string][]Timeslot, []string, error) {
	slots := make(map[string][]Timeslot)
	var order []string
	for _, choice := range choices {
		if _, done := slots[choice.ModuleCode]; done {
			continue
		}
		module, ok := s.catalogue.Lookup(choice.ModuleCode)
		if !ok {
			continue
		}
		entry := module.Timetable
		if override, ok := timetableOverrides[module.Code]; ok {
			entry = override
		}
		parsed, err := ParseTimetable(entry)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrCatalogue.Code, true,
				fmt.Sprintf("cannot parse timetable entry for module %s", module.Code))
		}
		if len(parsed) == 0 {
			continue
		}
		slots[choice.ModuleCode] = parsed
		order = append(order, choice.ModuleCode)
	}
	return slots, order, nil
}

type clash struct {
	modules []string
	slots   []string
}

// findClashes computes occupancy separately for odd and even teaching
// weeks, then merges clashes that involve the same module set.
func findClashes(slots map[string][]Timeslot, order []string) []clash {
	type group struct {
		modules []string
		tokens  map[string]bool
	}
	merged := make(map[string]*group)
	var mergedOrder []string

	for _, weekClass := range []weekPattern{weeksOdd, weeksEven} {
		type occupant struct {
			modules  []string
			allWeeks bool
		}
		occupancy := make(map[string]*occupant)
		var keys []string
		for _, code := range order {
			for _, slot := range slots[code] {
				if !slot.Weeks.covers(weekClass) {
					continue
				}
				entry, ok := occupancy[slot.key()]
				if !ok {
					entry = &occupant{allWeeks: true}
					occupancy[slot.key()] = entry
					keys = append(keys, slot.key())
				}
				entry.modules = append(entry.modules, code)
				if slot.Weeks != weeksAll {
					entry.allWeeks = false
				}
			}
		}

		for _, key := range keys {
			entry := occupancy[key]
			if len(entry.modules) < 2 {
				continue
			}
			modules := append([]string(nil), entry.modules...)
			sort.Strings(modules)
			identity := strings.Join(modules, "|")
			token := key
			if !entry.allWeeks {
				token = fmt.Sprintf("%s (%s)", key, weekClass)
			}
			g, ok := merged[identity]
			if !ok {
				g = &group{modules: modules, tokens: make(map[string]bool)}
				merged[identity] = g
				mergedOrder = append(mergedOrder, identity)
			}
			g.tokens[token] = true
		}
	}

	var clashes []clash
	for _, identity := range mergedOrder {
		g := merged[identity]
		tokens := make([]string, 0, len(g.tokens))
		for token := range g.tokens {
			tokens = append(tokens, token)
		}
		sort.Strings(tokens)
		clashes = append(clashes, clash{modules: g.modules, slots: tokens})
	}
	return clashes
}

// ParseTimetable parses a comma-separated timetable entry. A part that
// names only a day inherits the time of the preceding part, so
// "10am Mon (even weeks), Tue, Thu" yields an even-weeks Monday slot plus
// unrestricted Tuesday and Thursday slots at the same hour.
func ParseTimetable(entry string) ([]Timeslot, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, nil
	}

	var slots []Timeslot
	currentTime := ""
	for _, part := range strings.Split(entry, ",") {
		part = strings.TrimSpace(part)
		weeks := weeksAll
		switch {
		case strings.Contains(part, "(odd weeks)"):
			weeks = weeksOdd
			part = strings.TrimSpace(strings.ReplaceAll(part, "(odd weeks)", ""))
		case strings.Contains(part, "(even weeks)"):
			weeks = weeksEven
			part = strings.TrimSpace(strings.ReplaceAll(part, "(even weeks)", ""))
		}

		tokens := strings.Fields(part)
		switch len(tokens) {
		case 1:
			if currentTime == "" {
				return nil, fmt.Errorf("timetable part %q names a day with no time", part)
			}
			slots = append(slots, Timeslot{Time: currentTime, Day: tokens[0], Weeks: weeks})
		case 2:
			currentTime = tokens[0]
			slots = append(slots, Timeslot{Time: tokens[0], Day: tokens[1], Weeks: weeks})
		default:
			return nil, fmt.Errorf("unrecognized timetable part %q", part)
		}
	}
	return slots, nil
}
