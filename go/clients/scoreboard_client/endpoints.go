package scoreboard_client

const (
	// DefaultBaseURL is where the viewer expects the scoreboard service
	DefaultBaseURL = "http://localhost:8000"

	// API Endpoints
	SportsEndpoint      = "/sports"
	SportGamesEndpoint  = "/sports/%s/games"
	GameEndpoint        = "/games/%s"
	GameEventsEndpoint  = "/games/%s/events"
	GameChannelEndpoint = "/ws/games/%s"

	// Headers
	AcceptHeader    = "Accept"
	JsonContentType = "application/json"
)
