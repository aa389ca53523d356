package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// StepType fixes how a step's daily value is entered. It never changes
// after creation.
type StepType string

const (
	StepBool  StepType = "bool"
	StepCount StepType = "count"
)

// StepStatus is a step's lifecycle state.
type StepStatus string

const (
	StatusActive    StepStatus = "active"
	StatusSuspended StepStatus = "suspended"
	StatusCompleted StepStatus = "completed"
)

// Tracked reports whether steps in this status accept daily input.
func (s StepStatus) Tracked() bool {
	return s != StatusSuspended && s != StatusCompleted
}

// ParseStepStatus validates a status string.
func ParseStepStatus(s string) (StepStatus, bool) {
	switch st := StepStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusSuspended, StatusCompleted:
		return st, true
	}
	return "", false
}

// Weekday is a short English weekday code as stored by the backend.
type Weekday string

// Weekdays lists the codes in display order.
var Weekdays = []Weekday{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayOf returns the code for t's weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String()[:3])
}

// ParseWeekday accepts any casing of a short or long weekday name.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return "", false
	}
	prefix := strings.ToLower(s[:3])
	for _, d := range Weekdays {
		if strings.ToLower(string(d)) == prefix {
			return d, true
		}
	}
	return "", false
}

// DateLayout is the backend's calendar date format.
const DateLayout = "2006-01-02"

// Heading groups steps.
type Heading struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color,omitempty"`
	IsExpanded *bool  `json:"isExpanded,omitempty"`
	Order      *int   `json:"order,omitempty"`
}

// Expanded reports the persisted expansion flag. Headings default to open.
func (h Heading) Expanded() bool {
	return h.IsExpanded == nil || *h.IsExpanded
}

// HeadingRequest is the body for creating or editing a heading
type HeadingRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Number decodes a JSON number, numeric string, boolean or null.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	switch s {
	case "", "null", "false":
		*n = 0
		return nil
	case "true":
		*n = 1
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("number %q is not finite", s)
	}
	*n = Number(f)
	return nil
}

// Int truncates n, flooring negatives at zero and capping at math.MaxInt.
func (n Number) Int() int {
	f := float64(n)
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	}
	return int(f)
}

// StepDatum is the value recorded for one step on one date.
type StepDatum struct {
	Date  string `json:"date"`
	Count Number `json:"count"`
	Kudos Number `json:"kudos"`
}

// Step is a recurring habit.
type Step struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Type            StepType    `json:"type"`
	Days            []Weekday   `json:"days,omitempty"`
	IsPublic        bool        `json:"isPublic"`
	Status          StepStatus  `json:"status,omitempty"`
	Icon            string      `json:"icon,omitempty"`
	Order           *int        `json:"order,omitempty"`
	TargetHeadingID *string     `json:"targetHeadingId,omitempty"`
	TargetHeading   *Heading    `json:"targetHeading,omitempty"`
	TargetStepData  []StepDatum `json:"targetStepData,omitempty"`
}

// HeadingID returns the id of the heading the step belongs to, preferring
// the embedded heading. Empty means none.
func (s Step) HeadingID() string {
	if s.TargetHeading != nil && s.TargetHeading.ID != "" {
		return s.TargetHeading.ID
	}
	if s.TargetHeadingID != nil {
		return *s.TargetHeadingID
	}
	return ""
}

// Latest returns the most recent daily datum, if any.
func (s Step) Latest() (StepDatum, bool) {
	if len(s.TargetStepData) == 0 {
		return StepDatum{}, false
	}
	return s.TargetStepData[0], true
}

// StepRequest is the body for creating or editing a step
type StepRequest struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	IsPublic        bool      `json:"isPublic"`
	TargetHeadingID *string   `json:"targetHeadingId"`
	Icon            string    `json:"icon"`
	Type            StepType  `json:"type"`
	Days            []Weekday `json:"days"`
}

// StepDataRequest records today's value for a step
type StepDataRequest struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// User is the authenticated profile.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// UserFriend is a one-directional friend edge owned by the current user.
type UserFriend struct {
	ID           string `json:"id,omitempty"`
	UserID       string `json:"userId,omitempty"`
	FriendUserID string `json:"friendUserId"`
	Friend       *User  `json:"friend,omitempty"`
}

// Name returns the friend's display name, falling back to email then uid.
func (f UserFriend) Name() string {
	if f.Friend != nil {
		if f.Friend.DisplayName != "" {
			return f.Friend.DisplayName
		}
		if f.Friend.Email != "" {
			return f.Friend.Email
		}
	}
	return f.FriendUserID
}

// FriendToday is a friend's public steps with today's data.
type FriendToday struct {
	Steps []Step `json:"steps"`
}

// TodoHeading groups todos.
type TodoHeading struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// DefaultTodoHeadingColor is used when a new todo heading has no color.
const DefaultTodoHeadingColor = "#FF7043"

// TodoHeadingRequest is the body for creating or editing a todo heading
type TodoHeadingRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Todo is a one-off task.
type Todo struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TodoHeadingID *string `json:"todoHeadingId,omitempty"`
	IsDone        bool    `json:"isDone"`
}

// TodoRequest is the body for creating or editing a todo
type TodoRequest struct {
	Title         string  `json:"title"`
	TodoHeadingID *string `json:"todoHeadingId,omitempty"`
	IsDone        *bool   `json:"isDone,omitempty"`
}

// Repeat is how often a reminder fires.
type Repeat string

const (
	RepeatNone   Repeat = "none"
	RepeatDaily  Repeat = "daily"
	RepeatWeekly Repeat = "weekly"
	RepeatCustom Repeat = "custom"
)

// ParseRepeat validates a repeat mode.
func ParseRepeat(s string) (Repeat, bool) {
	switch r := Repeat(strings.ToLower(strings.TrimSpace(s))); r {
	case RepeatNone, RepeatDaily, RepeatWeekly, RepeatCustom:
		return r, true
	}
	return "", false
}

// Reminder is a scheduled nudge. Delivery happens outside this client.
type Reminder struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Time        string    `json:"time"`
	Repeat      Repeat    `json:"repeat"`
	Days        []Weekday `json:"days,omitempty"`
}

// ReminderRequest is the body for creating or editing a reminder. Days is
// only sent for custom repeats.
type ReminderRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Time        string    `json:"time"`
	Repeat      Repeat    `json:"repeat"`
	Days        []Weekday `json:"days,omitempty"`
}

// FeedbackTag classifies feedback.
type FeedbackTag string

// FeedbackTags lists the accepted tags.
var FeedbackTags = []FeedbackTag{"feedback", "bug", "feature request", "ui / ux issue"}

// FeedbackStatus is set by the admin user only.
type FeedbackStatus string

// FeedbackStatuses lists the accepted statuses.
var FeedbackStatuses = []FeedbackStatus{"open", "in progress", "fixed", "need more info"}

// Feedback is a user-submitted report.
type Feedback struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tag         FeedbackTag    `json:"tag"`
	Status      FeedbackStatus `json:"status,omitempty"`
	UserID      string         `json:"userId,omitempty"`
}

// FeedbackRequest is the body for creating or editing feedback
type FeedbackRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Tag         FeedbackTag `json:"tag"`
}

// DeserveEntry is one line of the "do I deserve it" list.
type DeserveEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Period selects a report range.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod validates a report period.
func ParsePeriod(s string) (Period, bool) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return p, true
	}
	return "", false
}

// Report holds a step's data over a period.
type Report struct {
	TargetStepData []StepDatum `json:"targetStepData"`
}

// ErrorResponse is the backend's error body
type ErrorResponse struct {
	Error string `json:"error"`
}
