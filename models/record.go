package models

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// The storage layer persists sessions as loosely-typed JSON documents.
// Numeric fields may arrive back as strings or floats depending on what
// wrote them, so every read goes through the coercion helpers below.

// ToRecord converts a session to its storage document.
func (s *Session) ToRecord() map[string]any {
	rec := map[string]any{
		"id":           s.ID,
		"ownerId":      s.OwnerID,
		"level":        s.Level,
		"mode":         string(s.Mode),
		"remainingIds": intsToAny(s.RemainingIDs),
		"totalAsked":   s.TotalAsked,
		"correctCount": s.CorrectCount,
		"totalCount":   s.TotalCount,
		"expiresAt":    s.ExpiresAt,
		"updatedAt":    s.UpdatedAt,
	}
	if s.Category != "" {
		rec["category"] = s.Category
	}
	if len(s.RecentFacts) > 0 {
		rec["recentFacts"] = stringsToAny(s.RecentFacts)
	}
	if s.Current != nil {
		q := map[string]any{
			"answerKeyId":  s.Current.AnswerKeyID,
			"options":      intsToAny(s.Current.Options),
			"correctIndex": s.Current.CorrectIndex,
		}
		if s.Current.PendingMessageID != 0 {
			q["pendingMessageId"] = s.Current.PendingMessageID
		}
		if s.Current.PromptText != "" {
			q["promptText"] = s.Current.PromptText
		}
		if s.Current.QuestionText != "" {
			q["questionText"] = s.Current.QuestionText
		}
		if len(s.Current.OptionTexts) > 0 {
			q["optionTexts"] = stringsToAny(s.Current.OptionTexts)
		}
		rec["current"] = q
	}
	return rec
}

// SessionFromRecord reconstructs a session from its storage document.
func SessionFromRecord(rec map[string]any) (*Session, error) {
	s := &Session{}
	var err error
	if s.ID, err = coerceString(rec["id"]); err != nil {
		return nil, errors.Wrap(err, "field id")
	}
	if s.OwnerID, err = coerceInt64(rec["ownerId"]); err != nil {
		return nil, errors.Wrap(err, "field ownerId")
	}
	if s.Level, err = coerceString(rec["level"]); err != nil {
		return nil, errors.Wrap(err, "field level")
	}
	mode, err := coerceString(rec["mode"])
	if err != nil {
		return nil, errors.Wrap(err, "field mode")
	}
	s.Mode = Mode(mode)
	if v, ok := rec["category"]; ok {
		if s.Category, err = coerceString(v); err != nil {
			return nil, errors.Wrap(err, "field category")
		}
	}
	if s.RemainingIDs, err = coerceInts(rec["remainingIds"]); err != nil {
		return nil, errors.Wrap(err, "field remainingIds")
	}
	if s.TotalAsked, err = coerceInt(rec["totalAsked"]); err != nil {
		return nil, errors.Wrap(err, "field totalAsked")
	}
	if s.CorrectCount, err = coerceInt(rec["correctCount"]); err != nil {
		return nil, errors.Wrap(err, "field correctCount")
	}
	if s.TotalCount, err = coerceInt(rec["totalCount"]); err != nil {
		return nil, errors.Wrap(err, "field totalCount")
	}
	if s.ExpiresAt, err = coerceInt64(rec["expiresAt"]); err != nil {
		return nil, errors.Wrap(err, "field expiresAt")
	}
	if s.UpdatedAt, err = coerceInt64(rec["updatedAt"]); err != nil {
		return nil, errors.Wrap(err, "field updatedAt")
	}
	if v, ok := rec["recentFacts"]; ok {
		if s.RecentFacts, err = coerceStrings(v); err != nil {
			return nil, errors.Wrap(err, "field recentFacts")
		}
	}
	if v, ok := rec["current"]; ok && v != nil {
		nested, ok := v.(map[string]any)
		if !ok {
			return nil, errors.Errorf("field current: expected object, got %T", v)
		}
		q, err := questionFromRecord(nested)
		if err != nil {
			return nil, errors.Wrap(err, "field current")
		}
		s.Current = q
	}
	return s, nil
}

func questionFromRecord(rec map[string]any) (*SessionQuestion, error) {
	q := &SessionQuestion{}
	var err error
	if q.AnswerKeyID, err = coerceInt(rec["answerKeyId"]); err != nil {
		return nil, errors.Wrap(err, "field answerKeyId")
	}
	if q.Options, err = coerceInts(rec["options"]); err != nil {
		return nil, errors.Wrap(err, "field options")
	}
	if q.CorrectIndex, err = coerceInt(rec["correctIndex"]); err != nil {
		return nil, errors.Wrap(err, "field correctIndex")
	}
	if v, ok := rec["pendingMessageId"]; ok {
		if q.PendingMessageID, err = coerceInt(v); err != nil {
			return nil, errors.Wrap(err, "field pendingMessageId")
		}
	}
	if v, ok := rec["promptText"]; ok {
		if q.PromptText, err = coerceString(v); err != nil {
			return nil, errors.Wrap(err, "field promptText")
		}
	}
	if v, ok := rec["questionText"]; ok {
		if q.QuestionText, err = coerceString(v); err != nil {
			return nil, errors.Wrap(err, "field questionText")
		}
	}
	if v, ok := rec["optionTexts"]; ok {
		if q.OptionTexts, err = coerceStrings(v); err != nil {
			return nil, errors.Wrap(err, "field optionTexts")
		}
	}
	return q, nil
}

func coerceString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Errorf("expected string, got %T", v)
	}
	return s, nil
}

func coerceInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, errors.Errorf("not a numeric string: %q", n)
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("expected number, got %T", v)
	}
}

func coerceInt(v any) (int, error) {
	n, err := coerceInt64(v)
	return int(n), err
}

func coerceInts(v any) ([]int, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, errors.Errorf("expected array, got %T", v)
	}
	out := make([]int, 0, len(raw))
	for i, item := range raw {
		n, err := coerceInt(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, n)
	}
	return out, nil
}

func coerceStrings(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, errors.Errorf("expected array, got %T", v)
	}
	out := make([]string, 0, len(raw))
	for i, item := range raw {
		s, err := coerceString(item)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, s)
	}
	return out, nil
}

func intsToAny(ns []int) []any {
	out := make([]any, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
