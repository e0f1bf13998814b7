// Package structure holds the league ownership hierarchy and the season
// schedule that the ranking engine consumes. It is a plain data model:
// lookups by name, no scoring logic.
package structure

import "fmt"

// Team is a club in the league, identified by its unique name.
type Team struct {
	Name string
}

// Division groups teams inside a conference.
type Division struct {
	Name  string
	Teams []Team
}

// AddTeam appends a team to the division. Adding a name that already
// exists in the division is an error.
func (d *Division) AddTeam(name string) (Team, error) {
	if _, ok := d.Team(name); ok {
		return Team{}, fmt.Errorf("division %q: team %q already exists", d.Name, name)
	}
	t := Team{Name: name}
	d.Teams = append(d.Teams, t)
	return t, nil
}

// Team looks a team up by name.
func (d *Division) Team(name string) (Team, bool) {
	for _, t := range d.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// Conference groups divisions.
type Conference struct {
	Name      string
	Divisions []*Division
}

// AddDivision appends a division to the conference. Duplicate names are an error.
func (c *Conference) AddDivision(name string) (*Division, error) {
	if c.Division(name) != nil {
		return nil, fmt.Errorf("conference %q: division %q already exists", c.Name, name)
	}
	div := &Division{Name: name}
	c.Divisions = append(c.Divisions, div)
	return div, nil
}

// Division looks a division up by name, nil if absent.
func (c *Conference) Division(name string) *Division {
	for _, div := range c.Divisions {
		if div.Name == name {
			return div
		}
	}
	return nil
}

// AddTeam adds a team to the named division.
func (c *Conference) AddTeam(divisionName, teamName string) (Team, error) {
	div := c.Division(divisionName)
	if div == nil {
		return Team{}, fmt.Errorf("conference %q: no division %q", c.Name, divisionName)
	}
	return div.AddTeam(teamName)
}

// Teams flattens all teams in the conference, in division insertion order.
func (c *Conference) Teams() []Team {
	var teams []Team
	for _, div := range c.Divisions {
		teams = append(teams, div.Teams...)
	}
	return teams
}

// League is the root of the ownership hierarchy.
type League struct {
	Name        string
	Conferences []*Conference
}

func NewLeague(name string) *League {
	return &League{Name: name}
}

// AddConference appends a conference. Duplicate names are an error.
func (l *League) AddConference(name string) (*Conference, error) {
	if l.Conference(name) != nil {
		return nil, fmt.Errorf("league %q: conference %q already exists", l.Name, name)
	}
	conf := &Conference{Name: name}
	l.Conferences = append(l.Conferences, conf)
	return conf, nil
}

// Conference looks a conference up by name, nil if absent.
func (l *League) Conference(name string) *Conference {
	for _, conf := range l.Conferences {
		if conf.Name == name {
			return conf
		}
	}
	return nil
}

// Teams flattens every team in the league, in insertion order.
func (l *League) Teams() []Team {
	var teams []Team
	for _, conf := range l.Conferences {
		teams = append(teams, conf.Teams()...)
	}
	return teams
}

// TeamNames returns the names of every team in the league, in insertion order.
func (l *League) TeamNames() []string {
	teams := l.Teams()
	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	return names
}
