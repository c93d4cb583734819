// Package alpha imports Alpha Progression CSV exports as training sessions.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Session is one workout block of an export.
type Session struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []Exercise
}

// Exercise is one numbered exercise of a session.
type Exercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []Set
}

// Set is a working or warmup set. Bodyweight-plus sets carry only the added load.
type Set struct {
	Number         int
	WeightKg       float64
	BodyweightPlus bool
	Reps           int
	Warmup         bool
}

var (
	// "Push · Day 1";"2026-02-17 5:04 h";"1:12 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// "1. Bench Press · Barbell · 6 reps[ · modifiers]"[;"warmups"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// 1;102,5;6;0
	setRowRe = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// WU1 · 37,5 kg · 9 reps
	warmupRe = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)

	// 1:02 hr, 45 min
	hoursRe   = regexp.MustCompile(`^(\d+):(\d{2})\s*hr?$`)
	minutesRe = regexp.MustCompile(`^(\d+)\s*min$`)
)

const columnHeader = "#;KG;REPS;RIR"

type parser struct {
	sessions []Session
	session  *Session
	exercise *Exercise
}

func (p *parser) closeExercise() {
	if p.exercise != nil && p.session != nil {
		p.session.Exercises = append(p.session.Exercises, *p.exercise)
	}
	p.exercise = nil
}

func (p *parser) closeSession() {
	p.closeExercise()
	if p.session != nil {
		p.sessions = append(p.sessions, *p.session)
	}
	p.session = nil
}

// Parse reads an export. Sessions are separated by blank lines; lines that
// match no known shape are skipped.
func Parse(r io.Reader) ([]Session, error) {
	var p parser
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			p.closeSession()

		case line == columnHeader:

		case sessionHeaderRe.MatchString(line):
			m := sessionHeaderRe.FindStringSubmatch(line)
			p.closeSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, err
			}
			p.session = &Session{Name: m[1], Date: date, Duration: m[3]}

		case exerciseHeaderRe.MatchString(line):
			m := exerciseHeaderRe.FindStringSubmatch(line)
			if p.session == nil {
				return nil, fmt.Errorf("exercise without session: %q", line)
			}
			p.closeExercise()
			num, _ := strconv.Atoi(m[1])
			target, _ := strconv.Atoi(m[4])
			p.exercise = &Exercise{
				Number:     num,
				Name:       strings.TrimSpace(m[2]),
				Equipment:  strings.TrimSpace(m[3]),
				TargetReps: target,
				Sets:       parseWarmups(m[6]),
			}

		case setRowRe.MatchString(line):
			m := setRowRe.FindStringSubmatch(line)
			if p.exercise == nil {
				return nil, fmt.Errorf("set data without exercise: %q", line)
			}
			num, _ := strconv.Atoi(m[1])
			weight, bw := parseWeight(m[2])
			reps, _ := strconv.Atoi(m[3])
			p.exercise.Sets = append(p.exercise.Sets, Set{
				Number:         num,
				WeightKg:       weight,
				BodyweightPlus: bw,
				Reps:           reps,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	p.closeSession()
	return p.sessions, nil
}

// parseSessionDate accepts "2026-02-19 4:54" and "2026-02-19 16:54".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing session date %q", s)
}

// parseDuration turns "1:02 hr" or "45 min" into minutes. ok is false for
// anything else.
func parseDuration(s string) (minutes float64, ok bool) {
	s = strings.TrimSpace(s)
	if m := hoursRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		mm, _ := strconv.Atoi(m[2])
		return float64(h*60 + mm), true
	}
	if m := minutesRe.FindStringSubmatch(s); m != nil {
		mm, _ := strconv.Atoi(m[1])
		return float64(mm), true
	}
	return 0, false
}

// parseWarmups reads "WU1 · 37,5 kg · 9 reps<br>WU2 · ...".
func parseWarmups(s string) []Set {
	if s == "" {
		return nil
	}
	var sets []Set
	for _, part := range strings.Split(s, "<br>") {
		m := warmupRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		weight, bw := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		sets = append(sets, Set{
			Number:         num,
			WeightKg:       weight,
			BodyweightPlus: bw,
			Reps:           reps,
			Warmup:         true,
		})
	}
	return sets
}

// parseWeight reads comma decimals and the "+N" bodyweight-plus notation.
func parseWeight(s string) (kg float64, bodyweightPlus bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return decimalComma(rest), true
	}
	return decimalComma(s), false
}

func decimalComma(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return f
}
