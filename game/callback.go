package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/arkadios/glossabot/models"
)

// Callback-data wire formats:
//
//	mode:<mode>
//	category:<category>|mode:<mode>
//	level:<level>|mode:<mode>[|category:<category>]
//	<p>=<sessionId>&a=<index>   with <p> in {s,f,t}

// ModeIntent is a parsed mode-selection callback.
type ModeIntent struct {
	Mode models.Mode
}

// CategoryIntent is a parsed category-selection callback.
type CategoryIntent struct {
	Category string
	Mode     models.Mode
}

// LevelIntent is a parsed level-selection callback.
type LevelIntent struct {
	Level    string
	Mode     models.Mode
	Category string
}

// AnswerIntent is a parsed answer callback.
type AnswerIntent struct {
	Prefix    string
	SessionID string
	Index     int
}

var answerPattern = regexp.MustCompile(`^([sft])=([^&=|]+)&a=(\d+)$`)

// ParseMenuCallback recognizes the menu wire formats. Unknown mode values
// fall back to the default mode; strings that match no menu format yield
// false so the caller can try the next route.
func ParseMenuCallback(data string) (any, bool) {
	fields := map[string]string{}
	for _, part := range strings.Split(data, "|") {
		key, value, ok := strings.Cut(part, ":")
		if !ok || key == "" || value == "" {
			return nil, false
		}
		fields[key] = value
	}

	switch {
	case fields["level"] != "":
		if fields["mode"] == "" {
			return nil, false
		}
		return LevelIntent{
			Level:    fields["level"],
			Mode:     models.ParseMode(fields["mode"]),
			Category: fields["category"],
		}, true
	case fields["category"] != "":
		if fields["mode"] == "" {
			return nil, false
		}
		return CategoryIntent{
			Category: fields["category"],
			Mode:     models.ParseMode(fields["mode"]),
		}, true
	case fields["mode"] != "" && len(fields) == 1:
		return ModeIntent{Mode: models.ParseMode(fields["mode"])}, true
	default:
		return nil, false
	}
}

// ParseAnswerCallback recognizes the per-variant answer formats.
func ParseAnswerCallback(data string) (AnswerIntent, bool) {
	match := answerPattern.FindStringSubmatch(data)
	if match == nil {
		return AnswerIntent{}, false
	}
	index, err := strconv.Atoi(match[3])
	if err != nil {
		return AnswerIntent{}, false
	}
	return AnswerIntent{Prefix: match[1], SessionID: match[2], Index: index}, true
}

// ModeCallback builds mode-selection callback data.
func ModeCallback(mode models.Mode) string {
	return fmt.Sprintf("mode:%s", mode)
}

// CategoryCallback builds category-selection callback data.
func CategoryCallback(category string, mode models.Mode) string {
	return fmt.Sprintf("category:%s|mode:%s", category, mode)
}

// LevelCallback builds level-selection callback data, carrying the category
// forward when the mode declared one.
func LevelCallback(level string, mode models.Mode, category string) string {
	if category != "" {
		return fmt.Sprintf("level:%s|mode:%s|category:%s", level, mode, category)
	}
	return fmt.Sprintf("level:%s|mode:%s", level, mode)
}

// AnswerData builds answer callback data for one option position.
func AnswerData(prefix, sessionID string, index int) string {
	return fmt.Sprintf("%s=%s&a=%d", prefix, sessionID, index)
}
