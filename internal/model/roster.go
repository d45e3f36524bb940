package model

// PlayerID identifies a rostered player
type PlayerID string

// TeamID identifies a team
type TeamID string

// Player is a roster entry photos can be tagged with. Distinct from a
// user account: players need not have logins.
type Player struct {
	ID           PlayerID
	Name         string
	JerseyNumber *int
	TeamID       *TeamID
}

// Team is a roster grouping for a season
type Team struct {
	ID     TeamID
	Name   string
	Season string
}
