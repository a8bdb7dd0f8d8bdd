package hydration

import (
	"time"

	"github.com/google/uuid"

	"smartHydrationAPI/internal/types/alert"
)

// Label is the discrete hydration state produced by classification.
type Label string

const (
	LabelHydrated           Label = "Hydrated"
	LabelSlightlyDehydrated Label = "Slightly Dehydrated"
	LabelDehydrated         Label = "Dehydrated"
)

// band is one row of the ordered classification table. Bounds are half-open:
// a score lands in the first band whose upper bound it is strictly below.
type band struct {
	upperExclusive float64
	label          Label
}

var bands = []band{
	{70, LabelDehydrated},
	{85, LabelSlightlyDehydrated},
}

// Classify maps a combined hydration score to a label. Total over all floats,
// no clamping: 70 and 85 fall into the higher band.
func Classify(score float64) Label {
	for _, b := range bands {
		if score < b.upperExclusive {
			return b.label
		}
	}
	return LabelHydrated
}

// CombinedMetric reproduces the training formula: skin conductance is
// normalized by 1.25 before averaging the four vitals.
func CombinedMetric(heartRate, bodyTemperature, skinConductance, ecgSigmoid float64) float64 {
	return (heartRate + bodyTemperature + skinConductance*1.25 + ecgSigmoid) / 4
}

// copyEntry is the fixed product copy attached to each label.
type copyEntry struct {
	severity    alert.Type
	title       string
	description string
}

var alertCopy = map[Label]copyEntry{
	LabelDehydrated: {
		severity:    alert.TypeCritical,
		title:       "Critical Hydration Alert",
		description: "You are in a dehydrated state! Immediate hydration is recommended to prevent fatigue and performance decline.",
	},
	LabelSlightlyDehydrated: {
		severity:    alert.TypeWarning,
		title:       "Hydration Warning",
		description: "You are slightly dehydrated. Drink 250mL of water to maintain optimal performance.",
	},
	LabelHydrated: {
		severity:    alert.TypeReminder,
		title:       "Daily Hydration Goal Reminder",
		description: "You are well hydrated. Keep going! Your daily hydration goal is 2.5L.",
	},
}

// SeverityFor returns the presentation severity tag for a label.
func SeverityFor(label Label) alert.Type {
	return alertCopy[label].severity
}

// CoachMessage is the templated one-liner shown to the coach on a status change.
func CoachMessage(label Label) string {
	return "Status changed to " + string(label)
}

// StatusChanged reports whether the current label differs from the previous
// one. The first-ever reading has nothing to change from, so nil previous is
// never a change.
func StatusChanged(current Label, previous *Label) bool {
	if previous == nil {
		return false
	}
	return current != *previous
}

// Suppressed reports whether alert creation should be skipped entirely:
// machine-generated alerts for a well-hydrated athlete are dropped to avoid
// alert fatigue. Manually requested alerts are never suppressed.
func Suppressed(label Label, source alert.Source) bool {
	return source == alert.SourceMLModel && label == LabelHydrated
}

// ComposeAlert builds the full alert document in memory. It has no side
// effects; persistence is the caller's responsibility, and readers only ever
// see the fully composed document.
func ComposeAlert(athleteID uuid.UUID, label Label, score float64, statusChange bool, source alert.Source) *alert.Alert {
	entry := alertCopy[label]

	a := &alert.Alert{
		ID:              uuid.New(),
		AthleteID:       athleteID,
		Type:            entry.severity,
		Title:           entry.title,
		Description:     entry.description,
		HydrationLevel:  score,
		HydrationStatus: string(label),
		StatusChange:    statusChange,
		Source:          source,
		Status:          alert.StatusActive,
		Timestamp:       time.Now().UTC(),
	}

	if statusChange {
		msg := CoachMessage(label)
		a.CoachMessage = &msg
	}

	return a
}
