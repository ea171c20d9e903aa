package task

// DefaultWeeklyHours is the contracted week used when a person has none.
const DefaultWeeklyHours = 40

// WorkdaysPerWeek is the number of weekdays a weekly capacity spreads over.
const WorkdaysPerWeek = 5

// Person is an assignee whose capacity is being planned.
type Person struct {
	ID                  string
	Name                string
	Department          string
	Role                string
	WeeklyCapacityHours float64
}

// DailyHours returns the hours available on a single working day.
func (p *Person) DailyHours() float64 {
	if p == nil || p.WeeklyCapacityHours <= 0 {
		return DefaultWeeklyHours / WorkdaysPerWeek
	}
	return p.WeeklyCapacityHours / WorkdaysPerWeek
}

// DisplayName returns the name, falling back to the ID.
func (p *Person) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// Project groups work items for reporting.
type Project struct {
	ID         string
	Name       string
	IsBillable bool
}
