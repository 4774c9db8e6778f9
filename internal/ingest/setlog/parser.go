package setlog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claude/repcoach/internal/models"
)

var (
	// sessionHeaderRe matches: "Push Day A";"2026-03-10 18:12"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d{1,2}:\d{2})"$`)

	// exerciseHeaderRe matches: "Bench Press · Barbell" or "Pull-up"
	exerciseHeaderRe = regexp.MustCompile(`^"(.+?)(?:\s+·\s+([^·]+?))?"$`)

	// setDataRe matches: 1;82,5;8 or a warmup line W1;60;10
	setDataRe = regexp.MustCompile(`^(W?)(\d+);(.+);(\d+)$`)

	// columnHeaderRe matches: #;KG;REPS
	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS$`)
)

// Parse reads the app's strength-log CSV export and returns parsed
// sessions. Blank lines separate sessions; unknown lines (notes) are
// skipped silently.
func Parse(r io.Reader) ([]models.SetLogSession, error) {
	scanner := bufio.NewScanner(r)
	var sessions []models.SetLogSession
	var current *models.SetLogSession
	var currentExercise *models.SetLogExercise

	flushExercise := func() {
		if current != nil && currentExercise != nil {
			current.Exercises = append(current.Exercises, *currentExercise)
			currentExercise = nil
		}
	}
	flushSession := func() {
		if current != nil {
			flushExercise()
			sessions = append(sessions, *current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flushSession()
			continue
		}

		if columnHeaderRe.MatchString(line) {
			continue
		}

		if m := sessionHeaderRe.FindStringSubmatch(line); m != nil {
			flushSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("parsing session date %q: %w", m[2], err)
			}
			current = &models.SetLogSession{Name: m[1], Date: date}
			continue
		}

		if m := setDataRe.FindStringSubmatch(line); m != nil {
			if currentExercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			num, _ := strconv.Atoi(m[2])
			weight, added := parseWeight(m[3])
			reps, _ := strconv.Atoi(m[4])

			currentExercise.Sets = append(currentExercise.Sets, models.SetLogSet{
				Number:      num,
				WeightKg:    weight,
				Reps:        reps,
				IsWarmup:    m[1] == "W",
				AddedWeight: added,
			})
			continue
		}

		if m := exerciseHeaderRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			flushExercise()
			currentExercise = &models.SetLogExercise{
				Name:      strings.TrimSpace(m[1]),
				Equipment: strings.TrimSpace(m[2]),
			}
			continue
		}

		// Unknown line — skip silently (could be notes or other metadata)
	}

	flushSession()
	return sessions, scanner.Err()
}

// parseSessionDate parses "2026-03-10 18:12" into a time.Time.
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q", s)
}

// parseWeight handles European decimals and bodyweight-plus notation.
// "+20" -> (20, true), "82,5" -> (82.5, false)
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		return parseEuropeanFloat(s[1:]), true
	}
	return parseEuropeanFloat(s), false
}

// parseEuropeanFloat converts a European decimal string to float64.
// "82,5" -> 82.5
func parseEuropeanFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
