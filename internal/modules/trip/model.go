// README: Trip aggregate — days, items, locations, routes, collaborators.
package trip

import (
	"errors"
	"sort"
	"time"

	"tripmaster/internal/types"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// TravelMode is the directions mode for a day's route.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeTransit TravelMode = "transit"
	ModeWalking TravelMode = "walking"
)

func (m TravelMode) Valid() bool {
	switch m {
	case ModeDriving, ModeTransit, ModeWalking:
		return true
	}
	return false
}

var (
	ErrNotFound              = errors.New("trip not found")
	ErrForbidden             = errors.New("forbidden")
	ErrBadRequest            = errors.New("bad request")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUserNotFound          = errors.New("user not found")
	ErrOwnerCollaborator     = errors.New("owner already has access")
	ErrDuplicateCollaborator = errors.New("collaborator already added")
	ErrCollaboratorNotFound  = errors.New("collaborator not found")
)

// Link is a labelled reference URL attached to an item. Labels are compared
// case-insensitively when deduplicating.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Location is sparse by design: any subset of fields may be present.
// Lat/Lng use pointers so "unset" is distinguishable from zero coordinates.
type Location struct {
	Name    string   `json:"name,omitempty"`
	Address string   `json:"address,omitempty"`
	PlaceID string   `json:"placeId,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Resolved reports whether the location carries coordinates usable for routing.
func (l *Location) Resolved() bool {
	return l != nil && l.Lat != nil && l.Lng != nil
}

type Item struct {
	ID          types.ID  `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	StartTime   string    `json:"startTime,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Links       []Link    `json:"links,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// Route aggregates travel metrics over all legs connecting a day's resolved
// item locations. Unlike locations, routes are replaced wholesale.
type Route struct {
	Mode            TravelMode `json:"mode"`
	Polyline        string     `json:"polyline"`
	DistanceMeters  int        `json:"distanceMeters"`
	DurationSeconds int        `json:"durationSeconds"`
}

type Day struct {
	ID       types.ID  `json:"id,omitempty"`
	DayIndex int       `json:"dayIndex"`
	Date     time.Time `json:"date"`
	Items    []Item    `json:"items"`
	Route    *Route    `json:"routes,omitempty"`
}

type Collaborator struct {
	UserID     types.ID   `json:"userId"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	InvitedAt  time.Time  `json:"invitedAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
}

type Trip struct {
	ID            types.ID       `json:"id"`
	Title         string         `json:"title"`
	Destination   string         `json:"destination"`
	StartDate     *time.Time     `json:"startDate,omitempty"`
	EndDate       *time.Time     `json:"endDate,omitempty"`
	Timezone      string         `json:"timezone,omitempty"`
	OwnerUserID   types.ID       `json:"ownerUserId"`
	Collaborators []Collaborator `json:"collaborators"`
	Days          []Day          `json:"days"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// RoleOf resolves the caller's role on the trip. Ownership is implicit and
// wins over any collaborator entry.
func (t *Trip) RoleOf(userID types.ID) (Role, bool) {
	if t.OwnerUserID == userID {
		return RoleOwner, true
	}
	for _, c := range t.Collaborators {
		if c.UserID == userID {
			return c.Role, true
		}
	}
	return "", false
}

// CanEdit reports whether the role may mutate the itinerary.
func (r Role) CanEdit() bool {
	return r == RoleOwner || r == RoleEditor
}

// NormalizeDays sorts days by date ascending, reassigns dayIndex to the sorted
// position, and assigns ids to days and items that have never been persisted.
// Every write that touches days goes through here so indices stay dense and
// zero-based.
func NormalizeDays(days []Day) []Day {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	for i := range days {
		days[i].DayIndex = i
		if days[i].ID == "" {
			days[i].ID = types.NewID()
		}
		if days[i].Items == nil {
			days[i].Items = []Item{}
		}
		for j := range days[i].Items {
			if days[i].Items[j].ID == "" {
				days[i].Items[j].ID = types.NewID()
			}
		}
	}
	return days
}
