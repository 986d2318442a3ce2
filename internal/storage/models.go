package storage

import "time"

// CycleDays is the fixed length of the tracking cycle.
const CycleDays = 30

type CrewMember struct {
	ID       string `json:"id"`
	Callsign string `json:"callsign"`
	Tier     string `json:"tier"`
	Avatar   string `json:"avatar,omitempty"`
}

type MemberTarget struct {
	Target float64 `json:"target"`
	Unit   string  `json:"unit,omitempty"`
}

type Mission struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Type          string                  `json:"type"`
	BaseXP        int                     `json:"baseXP"`
	DefaultTarget float64                 `json:"defaultTarget,omitempty"`
	Unit          string                  `json:"unit,omitempty"`
	MemberTargets map[string]MemberTarget `json:"memberTargets,omitempty"`
	// AssignedTo nil means every crew member; a non-nil list restricts.
	AssignedTo []string `json:"assignedTo"`
	// ActiveDays nil or empty means every day of the cycle.
	ActiveDays []int `json:"activeDays,omitempty"`
	SortKey    int   `json:"sortKey"`
}

// MissionPatch is a sparse override applied on top of a mission definition.
// Nil fields fall through to the base value.
type MissionPatch struct {
	Name          *string                 `json:"name,omitempty"`
	Description   *string                 `json:"description,omitempty"`
	BaseXP        *int                    `json:"baseXP,omitempty"`
	DefaultTarget *float64                `json:"defaultTarget,omitempty"`
	Unit          *string                 `json:"unit,omitempty"`
	MemberTargets map[string]MemberTarget `json:"memberTargets,omitempty"`
	AssignedTo    *[]string               `json:"assignedTo,omitempty"`
	ActiveDays    *[]int                  `json:"activeDays,omitempty"`
	SortKey       *int                    `json:"sortKey,omitempty"`
}

// RecordedValue is either a boolean result (Done set) or partial progress
// (Achieved/Target set), matching the mission type.
type RecordedValue struct {
	Done     *bool    `json:"done,omitempty"`
	Achieved *float64 `json:"achieved,omitempty"`
	Target   *float64 `json:"target,omitempty"`
}

type MissionResult struct {
	Value     RecordedValue `json:"value"`
	XPAwarded int           `json:"xpAwarded"`
}

type DayEntry struct {
	Results   map[string]MissionResult `json:"results,omitempty"`
	XPEarned  int                      `json:"xpEarned"`
	Completed bool                     `json:"completed"`
	SavedAt   *time.Time               `json:"savedAt,omitempty"`
}

type DayLog struct {
	MemberID string     `json:"memberId"`
	Days     []DayEntry `json:"days"`
}

// NewDayLog returns a log pre-populated with CycleDays empty entries.
// There is no "day not initialized" state distinct from "day with no data".
func NewDayLog(memberID string) DayLog {
	return DayLog{MemberID: memberID, Days: make([]DayEntry, CycleDays)}
}

type Settings struct {
	ActiveMemberID string `json:"activeMemberId,omitempty"`
	// EnabledMissions nil means all missions enabled; a non-nil list is an
	// allow-list (an empty list disables everything).
	EnabledMissions []string                `json:"enabledMissions"`
	Overrides       map[string]MissionPatch `json:"overrides,omitempty"`
}

type SyncState struct {
	LastSync *time.Time `json:"lastSync,omitempty"`
}

// Snapshot is the whole local state as mirrored to the remote store.
type Snapshot struct {
	Crew           []CrewMember      `json:"crew"`
	Logs           map[string]DayLog `json:"logs"`
	Settings       Settings          `json:"settings"`
	CustomMissions []Mission         `json:"customMissions"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	DeviceID       string            `json:"deviceId"`
}

// RemoteDocument is one stored snapshot on the mirror server, keyed by the
// household sync key. Body is the serialized Snapshot.
type RemoteDocument struct {
	Key       string
	Body      []byte
	UpdatedAt time.Time
}
