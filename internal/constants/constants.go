package constants

// Centralized constants for headers, env keys, routes and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "DEMON_CONFIG"
	EnvDatabase   = "DEMON_DB"
	EnvAddress    = "DEMON_ADDR"
	EnvPort       = "PORT"

	// HTTP headers and content types
	HeaderPlayerID    = "X-Player-ID"
	HeaderPlayerName  = "X-Player-Name"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Gin context key holding the caller's player ID
	ContextPlayerID   = "player_id"
	ContextPlayerName = "player_name"

	DefaultConfigPath = "config.yaml"
)

// Routes used by the backend router
const (
	RouteAPIPrefix      = "/api"
	RouteCards          = "/cards"
	RouteCharacters     = "/characters"
	RouteMatches        = "/matches"
	RouteMatchesJoin    = "/matches/join"
	RouteMatchByCode    = "/matches/:code"
	RouteMatchSelection = "/matches/:code/selection"
	RouteMatchLeave     = "/matches/:code/leave"
	RouteMatchRounds    = "/matches/:code/rounds"
	RouteMatchmaking    = "/matchmaking"
	RouteLeaderboard    = "/leaderboard"
	RoutePlayerStats    = "/player-stats"
	RouteVersion        = "/version"
	RouteHealthz        = "/healthz"
	RouteWebsocket      = "/ws/:code"
)

// Realtime message types
const (
	MessageBattleEvents = "battle_events"
	MessageMatchState   = "match_state"
	MessageMatchStarted = "match_started"
	MessageError        = "error"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyCode    = "code"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrMatchNotFound          = "Match not found"
	ErrMatchFull              = "Match is full"
	ErrMatchNotInProgress     = "Match is not in progress"
	ErrPlayerNotInMatch       = "Player not in this match"
	ErrAlreadySubmitted       = "Selection already submitted for this round"
	ErrRoundResolving         = "Selections are locked; resolving current round"
	ErrAlreadyInQueue         = "Player is already queued"
	ErrAlreadyInMatch         = "Player already joined this match"
	ErrFailedCreateMatch      = "Failed to create match"
	ErrFailedUpdateMatch      = "Failed to update match"
	ErrFailedFetchRounds      = "Failed to fetch rounds"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrPlayerIDRequired       = "X-Player-ID header is required"
	ErrInvalidMatchCode       = "Invalid match code"
	ErrNotInQueue             = "Player is not queued"
	ErrFailedStoreSelection   = "Failed to store selection"
	ErrFailedJoinQueue        = "Failed to join matchmaking"
	ErrUnknownCharacter       = "Unknown character"
)

// Logging field names
const (
	LogFieldMatchCode = "match_code"
	LogFieldPlayerID  = "player_id"
	LogFieldOpponent  = "opponent_id"
	LogFieldSeat      = "seat"
	LogFieldRound     = "round"
	LogFieldResult    = "result"
	LogFieldReason    = "reason"
	LogFieldWorker    = "worker"
	LogFieldSource    = "source"
	LogFieldAddr      = "addr"
	LogFieldCount     = "count"
	LogFieldCharacter = "character"
)
