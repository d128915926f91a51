package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// ClockMode represents the radial clock display mode.
	ClockMode string

	// ViewKind identifies one of the linked views.
	ViewKind string

	// EventKind identifies a user interaction delivered to a session.
	EventKind string

	// FilterField names one field of the filter state.
	FilterField string

	// NegativePolicy controls how negative intensities are treated at load.
	NegativePolicy string

	// SessionStatus represents the lifecycle state of a session.
	SessionStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All clock modes supported.
const (
	Clock12h ClockMode = "12h"
	Clock24h ClockMode = "24h" // default
)

// All views supported, in refresh order.
const (
	HeatmapView ViewKind = "heatmap"
	LineView    ViewKind = "line"
	ClockView   ViewKind = "clock"
	ChordView   ViewKind = "chord"
)

// All event kinds supported.
const (
	ActivityEvent    EventKind = "activity"
	ParticipantEvent EventKind = "participant"
	HoursEvent       EventKind = "hours"
	ClockEvent       EventKind = "clock"
	BrushEvent       EventKind = "brush"
	BrushClearEvent  EventKind = "brush-clear"
)

// All filter fields.
const (
	ActivityField    FilterField = "activity"
	ParticipantField FilterField = "participant"
	HoursField       FilterField = "hours"
	WindowField      FilterField = "window"
	ClockField       FilterField = "clock"
)

// All negative intensity policies supported.
const (
	RejectNegative NegativePolicy = "reject" // default
	ClampNegative  NegativePolicy = "clamp"
	PassNegative   NegativePolicy = "pass"
)

// All session states.
const (
	LoadingStatus SessionStatus = "loading"
	ReadyStatus   SessionStatus = "ready"
	FailedStatus  SessionStatus = "failed"
)

// AllActivities is the activity sentinel that disables activity filtering.
const AllActivities = "all"

// Required input columns.
const (
	IntensityColumn   = "motion_intensity"
	TimestampColumn   = "Timestamp"
	ParticipantColumn = "Participant_ID"
	ActivityColumn    = "Activity_Type"
)

// HoursPerDay is the upper bound of an hour range.
const HoursPerDay = 24

// AllViews lists every view in refresh order.
var AllViews = []ViewKind{HeatmapView, LineView, ClockView, ChordView}

// RequiredColumns lists the columns every input row must carry.
var RequiredColumns = []string{IntensityColumn, TimestampColumn, ParticipantColumn, ActivityColumn}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidClockModes lists all valid clock modes.
var ValidClockModes = map[ClockMode]struct{}{
	Clock12h: {},
	Clock24h: {},
}

// ValidViews lists all valid views.
var ValidViews = map[ViewKind]struct{}{
	HeatmapView: {},
	LineView:    {},
	ClockView:   {},
	ChordView:   {},
}

// ValidEventKinds lists all valid event kinds.
var ValidEventKinds = map[EventKind]struct{}{
	ActivityEvent:    {},
	ParticipantEvent: {},
	HoursEvent:       {},
	ClockEvent:       {},
	BrushEvent:       {},
	BrushClearEvent:  {},
}

// ValidNegativePolicies lists all valid negative intensity policies.
var ValidNegativePolicies = map[NegativePolicy]struct{}{
	RejectNegative: {},
	ClampNegative:  {},
	PassNegative:   {},
}
