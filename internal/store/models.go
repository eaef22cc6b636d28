// Package store provides the persistent JSON document store and its models.
// The whole application state lives in one document on disk; field names
// match the original data.json layout so existing files load unchanged.
package store

import "time"

// Document is the root of the persisted state.
type Document struct {
	Users map[string]*Profile `json:"users"`
	Meta  Meta                `json:"meta"`
}

// Meta holds global singleton state: the last calendar date the daily
// tasks were posted and the list of scheduled timers.
type Meta struct {
	LastDailyDate string   `json:"lastDailyDate,omitempty"`
	Timers        []*Timer `json:"timers,omitempty"`
}

// Profile is the per-user record of XP, level, tasks, and completions.
type Profile struct {
	XP      int             `json:"xp"`
	Level   int             `json:"level"`
	Tasks   []*Task         `json:"tasks"`
	History []*HistoryEntry `json:"history"`
}

// Task is a single entry on a profile's task list. Entries are append-only;
// completion flips Done and never removes the task.
type Task struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	XP    int    `json:"xp"`
	Done  bool   `json:"done"`
	Daily bool   `json:"daily,omitempty"`
	Date  string `json:"date,omitempty"`
}

// HistoryEntry is a snapshot of a completed task, decoupled from the live
// Task so later mutation cannot alter the record.
type HistoryEntry struct {
	ID          int       `json:"id"`
	Text        string    `json:"text"`
	XP          int       `json:"xp"`
	CompletedAt time.Time `json:"completedAt"`
}

// Timer is a user-scheduled event with three one-way notification flags.
type Timer struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	UserID        string    `json:"userId"`
	Notified12h   bool      `json:"notified12h"`
	Notified30m   bool      `json:"notified30m"`
	NotifiedExact bool      `json:"notifiedExact"`
}

// NewDocument returns an empty document, the state of a fresh install.
func NewDocument() *Document {
	return &Document{
		Users: make(map[string]*Profile),
	}
}

// Profile returns the profile for userID, creating it with zero-value
// defaults on first use. Profiles are never deleted.
func (d *Document) Profile(userID string) *Profile {
	if d.Users == nil {
		d.Users = make(map[string]*Profile)
	}
	p, ok := d.Users[userID]
	if !ok {
		p = &Profile{Level: 1}
		d.Users[userID] = p
	}
	if p.Level < 1 {
		p.Level = 1
	}
	return p
}

// NextTaskID returns max(existing ids)+1, or 1 for an empty list. Ids are
// never reused: tasks are append-only within a profile.
func (p *Profile) NextTaskID() int {
	next := 1
	for _, t := range p.Tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// NextTimerID returns the next globally unique timer id using the same
// max+1 scheme, scoped to the whole timer list rather than per user.
func (m *Meta) NextTimerID() int {
	next := 1
	for _, t := range m.Timers {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}
