package hydration

import (
	"testing"

	"github.com/google/uuid"

	"smartHydrationAPI/internal/types/alert"
)

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		score float64
		want  Label
	}{
		{0, LabelDehydrated},
		{60, LabelDehydrated},
		{69.999, LabelDehydrated},
		{70, LabelSlightlyDehydrated}, // boundary belongs to the higher band
		{72, LabelSlightlyDehydrated},
		{84.999, LabelSlightlyDehydrated},
		{85, LabelHydrated}, // boundary belongs to the higher band
		{90, LabelHydrated},
		{100, LabelHydrated},
		{150, LabelHydrated}, // no clamping above 100
		{-5, LabelDehydrated},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rank := map[Label]int{
		LabelDehydrated:         0,
		LabelSlightlyDehydrated: 1,
		LabelHydrated:           2,
	}

	prev := Classify(0)
	for score := 0.5; score <= 120; score += 0.5 {
		cur := Classify(score)
		if rank[cur] < rank[prev] {
			t.Fatalf("classification not monotonic: %q at %v after %q", cur, score, prev)
		}
		prev = cur
	}
}

func TestSeverityMatchesLabel(t *testing.T) {
	cases := []struct {
		score float64
		label Label
		want  alert.Type
	}{
		{60, LabelDehydrated, alert.TypeCritical},
		{72, LabelSlightlyDehydrated, alert.TypeWarning},
		{90, LabelHydrated, alert.TypeReminder},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.label {
			t.Errorf("Classify(%v) = %q, want %q", tc.score, got, tc.label)
		}
		if got := SeverityFor(tc.label); got != tc.want {
			t.Errorf("SeverityFor(%q) = %q, want %q", tc.label, got, tc.want)
		}
	}
}

func TestCombinedMetric(t *testing.T) {
	// skin conductance is normalized by 1.25 before averaging
	got := CombinedMetric(80, 36, 40, 64)
	want := (80.0 + 36.0 + 50.0 + 64.0) / 4
	if got != want {
		t.Errorf("CombinedMetric = %v, want %v", got, want)
	}
}

func TestStatusChanged(t *testing.T) {
	hydrated := LabelHydrated
	dehydrated := LabelDehydrated

	if StatusChanged(LabelDehydrated, nil) {
		t.Error("first-ever reading must not count as a change")
	}
	if !StatusChanged(LabelDehydrated, &hydrated) {
		t.Error("Hydrated -> Dehydrated must be a change")
	}
	if StatusChanged(LabelDehydrated, &dehydrated) {
		t.Error("Dehydrated -> Dehydrated must not be a change")
	}
}

func TestSuppressed(t *testing.T) {
	if !Suppressed(LabelHydrated, alert.SourceMLModel) {
		t.Error("machine alerts for hydrated athletes must be suppressed")
	}
	if Suppressed(LabelDehydrated, alert.SourceMLModel) {
		t.Error("machine alerts for dehydrated athletes must not be suppressed")
	}
	if Suppressed(LabelHydrated, alert.SourceAthlete) {
		t.Error("manually requested alerts must never be suppressed")
	}
	if Suppressed(LabelHydrated, alert.SourceManual) {
		t.Error("manually requested alerts must never be suppressed")
	}
}

func TestComposeAlertOnChange(t *testing.T) {
	athleteID := uuid.New()

	a := ComposeAlert(athleteID, LabelDehydrated, 60, true, alert.SourceMLModel)

	if a.Type != alert.TypeCritical {
		t.Errorf("type = %q, want CRITICAL", a.Type)
	}
	if a.Title != "Critical Hydration Alert" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if a.HydrationStatus != string(LabelDehydrated) {
		t.Errorf("hydration_status = %q", a.HydrationStatus)
	}
	if !a.StatusChange {
		t.Error("status_change not set")
	}
	if a.CoachMessage == nil || *a.CoachMessage != "Status changed to Dehydrated" {
		t.Errorf("coach_message = %v, want 'Status changed to Dehydrated'", a.CoachMessage)
	}
	if a.Status != alert.StatusActive {
		t.Errorf("status = %q, want active", a.Status)
	}
	if loc := a.Timestamp.Location(); loc != nil && loc.String() != "UTC" {
		t.Errorf("timestamp not UTC: %v", loc)
	}
}

func TestComposeAlertNoChange(t *testing.T) {
	a := ComposeAlert(uuid.New(), LabelDehydrated, 60, false, alert.SourceMLModel)

	if a.CoachMessage != nil {
		t.Errorf("coach_message must be nil without a status change, got %q", *a.CoachMessage)
	}
	if a.StatusChange {
		t.Error("status_change must be false")
	}
}

func TestComposeAlertCopyPerLabel(t *testing.T) {
	cases := []struct {
		label Label
		typ   alert.Type
		title string
	}{
		{LabelDehydrated, alert.TypeCritical, "Critical Hydration Alert"},
		{LabelSlightlyDehydrated, alert.TypeWarning, "Hydration Warning"},
		{LabelHydrated, alert.TypeReminder, "Daily Hydration Goal Reminder"},
	}

	for _, tc := range cases {
		a := ComposeAlert(uuid.New(), tc.label, 75, false, alert.SourceAthlete)
		if a.Type != tc.typ || a.Title != tc.title {
			t.Errorf("label %q: got (%q, %q), want (%q, %q)", tc.label, a.Type, a.Title, tc.typ, tc.title)
		}
		if a.Description == "" {
			t.Errorf("label %q: empty description", tc.label)
		}
	}
}

func TestCoachMessageTemplate(t *testing.T) {
	if got := CoachMessage(LabelSlightlyDehydrated); got != "Status changed to Slightly Dehydrated" {
		t.Errorf("CoachMessage = %q", got)
	}
}
