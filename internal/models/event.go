package models

import (
	"fmt"
	"time"
)

// EventStatus represents the current state of a scheduled event
type EventStatus string

const (
	// EventStatusDraft indicates an event whose roster is still being built
	EventStatusDraft EventStatus = "draft"

	// EventStatusScheduled indicates an event with a finalized roster
	EventStatusScheduled EventStatus = "scheduled"

	// EventStatusCompleted indicates an event that has run
	EventStatusCompleted EventStatus = "completed"

	// EventStatusCancelled indicates an event that was called off
	EventStatusCancelled EventStatus = "cancelled"
)

// Party composition for a full raid roster
const (
	TankSlots   = 2
	HealerSlots = 2
	DPSSlots    = 4
)

// SlotAssignment is a snapshot of a participant placed into a slot, with the
// job chosen for this assignment (which may differ from their signup job)
type SlotAssignment struct {
	// Participant is a copy of the participant at assignment time
	Participant Participant `json:"participant"`

	// Job is the job selected for this assignment
	Job Job `json:"job"`
}

// PartySlot represents one of the fixed seats in a roster
type PartySlot struct {
	// ID is the stable slot identifier, e.g. "tank-1" or "dps-3"
	ID string `json:"id"`

	// Role is the duty this slot expects
	Role Role `json:"role"`

	// IsHelperSlot marks a seat intended for helpers
	IsHelperSlot bool `json:"isHelperSlot"`

	// JobRestriction, if set, pins the slot to one specific job
	JobRestriction Job `json:"jobRestriction,omitempty"`

	// AssignedParticipant is set when the slot is filled
	AssignedParticipant *SlotAssignment `json:"assignedParticipant,omitempty"`

	// DraftedBy is the team leader who made the assignment
	DraftedBy string `json:"draftedBy,omitempty"`

	// DraftedAt is when the assignment was made
	DraftedAt *time.Time `json:"draftedAt,omitempty"`
}

// EventRoster is the 8-seat party structure being filled for an event
type EventRoster struct {
	// Party holds the fixed slots in display order
	Party []*PartySlot `json:"party"`

	// TotalSlots is the number of seats in the party
	TotalSlots int `json:"totalSlots"`

	// FilledSlots is derived from the slots with an assignment; use
	// Recount after mutating the party
	FilledSlots int `json:"filledSlots"`
}

// NewEmptyRoster produces the fixed party composition (2 tanks, 2 healers,
// 4 DPS) with no assignments
func NewEmptyRoster() *EventRoster {
	roster := &EventRoster{}

	add := func(role Role, count int) {
		for i := 1; i <= count; i++ {
			roster.Party = append(roster.Party, &PartySlot{
				ID:   fmt.Sprintf("%s-%d", role, i),
				Role: role,
			})
		}
	}

	add(RoleTank, TankSlots)
	add(RoleHealer, HealerSlots)
	add(RoleDPS, DPSSlots)

	roster.TotalSlots = len(roster.Party)
	roster.Recount()

	return roster
}

// FindSlot returns the slot with the given ID, or nil if absent
func (r *EventRoster) FindSlot(slotID string) *PartySlot {
	for _, slot := range r.Party {
		if slot.ID == slotID {
			return slot
		}
	}
	return nil
}

// Recount recomputes FilledSlots from the current assignments
func (r *EventRoster) Recount() {
	filled := 0
	for _, slot := range r.Party {
		if slot.AssignedParticipant != nil {
			filled++
		}
	}
	r.FilledSlots = filled
}

// ScheduledEvent is the aggregate root for one raid night: scheduling
// metadata plus the roster and its version counter
type ScheduledEvent struct {
	// ID is the unique identifier for the event
	ID string `json:"id"`

	// GuildID is the Discord server/guild the event belongs to
	GuildID string `json:"guildId"`

	// ChannelID is the Discord channel coordinating the event
	ChannelID string `json:"channelId,omitempty"`

	// Title is the event's display title
	Title string `json:"title"`

	// Status is the current state of the event
	Status EventStatus `json:"status"`

	// StartTime is when the event is scheduled to run
	StartTime time.Time `json:"startTime"`

	// CreatedBy is the user who created the event
	CreatedBy string `json:"createdBy"`

	// Roster is the party being assembled for the event
	Roster *EventRoster `json:"roster"`

	// Version increases by one on every committed roster mutation
	Version int64 `json:"version"`

	// CreatedAt is when the event was created
	CreatedAt time.Time `json:"createdAt"`

	// LastModified is when the event was last changed
	LastModified time.Time `json:"lastModified"`
}
