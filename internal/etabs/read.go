package etabs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"structhub/internal/idmap"
)

// Story is one STORY directive from an existing document.
type Story struct {
	Name      string
	Height    float64
	Elevation float64
}

// ReadStories scans an E2K document for STORY directives and returns
// them top-down with absolute elevations. Only the bottom story carries
// ELEV on disk; the others accumulate their heights above it.
func ReadStories(r io.Reader) ([]Story, error) {
	sc := bufio.NewScanner(r)
	var stories []Story
	lineNo := 0
	for sc.Scan() {
		lineNo++
		story, ok, err := parseStoryLine(strings.TrimSpace(sc.Text()))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			stories = append(stories, story)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading e2k: %w", err)
	}

	for i := len(stories) - 2; i >= 0; i-- {
		stories[i].Elevation = stories[i+1].Elevation + stories[i].Height
	}
	return stories, nil
}

// ReadStoriesFile reads STORY directives from the document at path.
func ReadStoriesFile(path string) ([]Story, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening e2k file: %w", err)
	}
	defer f.Close()
	return ReadStories(f)
}

// StoryRefs converts read stories to mapper references. E2K has no
// separate story key, so the name doubles as the UID.
func StoryRefs(stories []Story) []idmap.StoryRef {
	refs := make([]idmap.StoryRef, 0, len(stories))
	for _, s := range stories {
		refs = append(refs, idmap.StoryRef{UID: s.Name, Name: s.Name, Elevation: s.Elevation})
	}
	return refs
}

func parseStoryLine(line string) (Story, bool, error) {
	rest, ok := strings.CutPrefix(line, "STORY ")
	if !ok {
		return Story{}, false, nil
	}
	name, rest, err := quotedToken(rest)
	if err != nil {
		return Story{}, false, err
	}

	story := Story{Name: name}
	fields := strings.Fields(rest)
	for i := 0; i+1 < len(fields); i += 2 {
		value := strings.Trim(fields[i+1], `"`)
		switch fields[i] {
		case "HEIGHT":
			story.Height, err = strconv.ParseFloat(value, 64)
		case "ELEV":
			story.Elevation, err = strconv.ParseFloat(value, 64)
		}
		if err != nil {
			return Story{}, false, fmt.Errorf("story %q: bad %s value %q", name, fields[i], fields[i+1])
		}
	}
	return story, true, nil
}

func quotedToken(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, `"`) {
		return "", "", fmt.Errorf("expected quoted token in %q", s)
	}
	end := strings.Index(s[1:], `"`)
	if end < 0 {
		return "", "", fmt.Errorf("unterminated quote in %q", s)
	}
	return s[1 : 1+end], s[end+2:], nil
}
