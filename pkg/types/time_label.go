package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimeLabelLayout формат метки слота: "09:00 AM"
const TimeLabelLayout = "03:04 PM"

// ErrInvalidTimeLabel метка не в формате "HH:MM AM/PM"
var ErrInvalidTimeLabel = errors.New("types: invalid time label, expected HH:MM AM/PM")

// TimeLabel время суток в 12-часовом формате
// Разбирается один раз: дальше используется число минут от полуночи,
// а исходная метка нужна только для отображения
type TimeLabel struct {
	label   string
	minutes int
}

// ParseTimeLabel разбирает "HH:MM AM/PM" (часы 1-12, допускается одна цифра и am/pm в нижнем регистре)
// 12 AM -> 0 минут, 12 PM -> 720 минут
func ParseTimeLabel(s string) (TimeLabel, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if len(normalized) == len(TimeLabelLayout)-1 {
		normalized = "0" + normalized
	}

	t, err := time.Parse(TimeLabelLayout, normalized)
	if err != nil {
		return TimeLabel{}, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	canonical := t.Format(TimeLabelLayout)
	if canonical != normalized {
		return TimeLabel{}, fmt.Errorf("%w: %q", ErrInvalidTimeLabel, s)
	}

	return TimeLabel{label: canonical, minutes: t.Hour()*60 + t.Minute()}, nil
}

// MustParseTimeLabel для констант и тестов
func MustParseTimeLabel(s string) TimeLabel {
	l, err := ParseTimeLabel(s)
	if err != nil {
		panic(err)
	}
	return l
}

// TimeLabelFromMinutes строит метку из минут от полуночи
func TimeLabelFromMinutes(minutes int) (TimeLabel, error) {
	if minutes < 0 || minutes >= 24*60 {
		return TimeLabel{}, fmt.Errorf("%w: minutes out of range: %d", ErrInvalidTimeLabel, minutes)
	}
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return TimeLabel{label: t.Format(TimeLabelLayout), minutes: minutes}, nil
}

// Minutes минуты от полуночи
func (l TimeLabel) Minutes() int {
	return l.minutes
}

func (l TimeLabel) String() string {
	return l.label
}

func (l TimeLabel) IsZero() bool {
	return l.label == ""
}

func (l TimeLabel) Before(other TimeLabel) bool {
	return l.minutes < other.minutes
}

func (l TimeLabel) After(other TimeLabel) bool {
	return l.minutes > other.minutes
}

func (l TimeLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.label)
}

func (l *TimeLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeLabel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
