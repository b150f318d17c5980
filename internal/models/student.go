package models

// ModuleChoice is one planned honours module entry from a choice form.
type ModuleChoice struct {
	HonoursYear  string   // "Year 1", "Year 2", "Year 3"
	AcademicYear string   // "2023/2024"
	Semester     Semester // S1 or S2
	ModuleCode   string
}

// Student is the normalized profile produced by reconciling one submitted
// module choice form with the student's historical academic records.
type Student struct {
	StudentID            int
	FullName             string
	Email                string
	ProgrammeName        string
	YearOfStudy          int
	ExpectedHonoursYears int // 2 or 3, derived from the programme
	CurrentHonoursYear   int // accounts for advanced-standing credit
	PassedModules        []string
	PassedHonoursModules []string
	ModuleChoices        []ModuleChoice
}

// PlannedModules returns the module codes of every planned honours choice,
// in form order.
func (s *Student) PlannedModules() []string {
	codes := make([]string, 0, len(s.ModuleChoices))
	for _, choice := range s.ModuleChoices {
		codes = append(codes, choice.ModuleCode)
	}
	return codes
}

// FullModuleList returns passed modules followed by every planned module.
// Duplicates are preserved so duplicate selections remain findable.
func (s *Student) FullModuleList() []string {
	full := make([]string, 0, len(s.PassedModules)+len(s.ModuleChoices))
	full = append(full, s.PassedModules...)
	full = append(full, s.PlannedModules()...)
	return full
}

// AllHonoursModules returns passed honours modules followed by every
// planned module.
func (s *Student) AllHonoursModules() []string {
	all := make([]string, 0, len(s.PassedHonoursModules)+len(s.ModuleChoices))
	all = append(all, s.PassedHonoursModules...)
	all = append(all, s.PlannedModules()...)
	return all
}

// CountInList reports how many of the given codes the student has taken or
// is planning to take.
func (s *Student) CountInList(codes []string) int {
	taking := make(map[string]bool)
	for _, code := range s.FullModuleList() {
		taking[code] = true
	}
	count := 0
	for _, code := range codes {
		if taking[code] {
			count++
		}
	}
	return count
}

// ChoicesFor returns the planned entries for one honours year, optionally
// restricted to a semester (empty semester matches both).
func (s *Student) ChoicesFor(honoursYear string, semester Semester) []ModuleChoice {
	var selected []ModuleChoice
	for _, choice := range s.ModuleChoices {
		if choice.HonoursYear != honoursYear {
			continue
		}
		if semester != "" && choice.Semester != semester {
			continue
		}
		selected = append(selected, choice)
	}
	return selected
}

// HonoursYearLabels returns the distinct honours year labels present in the
// choice table, in first-seen order.
func (s *Student) HonoursYearLabels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, choice := range s.ModuleChoices {
		if seen[choice.HonoursYear] {
			continue
		}
		seen[choice.HonoursYear] = true
		labels = append(labels, choice.HonoursYear)
	}
	return labels
}
