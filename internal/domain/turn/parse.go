package turn

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var ErrUnparseableTime = errors.New("unparseable time")

type meridiem int

const (
	meridiemNone meridiem = iota
	meridiemAM
	meridiemPM
	meridiemNight
)

var (
	clockPattern   = regexp.MustCompile(`(\d+)(?:\s*[:.h]\s*(\d{2}))?`)
	minutesPattern = regexp.MustCompile(`^\s*(y|menos)\s+(\d{1,2})`)
	anyDigit       = regexp.MustCompile(`\d`)

	accentReplacer = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
		"a.m.", "am", "p.m.", "pm", "a. m.", "am", "p. m.", "pm",
	)

	numberWords = map[string]string{
		"una": "1", "uno": "1", "dos": "2", "tres": "3", "cuatro": "4",
		"cinco": "5", "seis": "6", "siete": "7", "ocho": "8", "nueve": "9",
		"diez": "10", "once": "11", "doce": "12", "trece": "13",
		"catorce": "14", "quince": "15", "dieciseis": "16", "diecisiete": "17",
		"dieciocho": "18", "diecinueve": "19", "veinte": "20", "veintiuno": "21",
		"veintidos": "22", "veintitres": "23", "veinticinco": "25",
		"treinta": "30", "cuarenta": "40", "cincuenta": "50",
		"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
		"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
		"eleven": "11", "twelve": "12",
	}

	// tens that only ever name minutes, so "cuarenta y cinco" is one number
	minuteTens = map[string]int{"treinta": 30, "cuarenta": 40, "cincuenta": 50}
)

// ParseTime turns a free-form time phrase into a TimeOfDay. It understands
// "8pm", "8:30 p.m.", "20:00", "20h", "20.30", "ocho y media de la noche",
// "nueve menos cuarto", "las 20 y 30", "nueve menos diez", "mediodia" and
// similar. A bare hour below 8 with no meridiem marker is read as PM. Digit
// runs longer than two are only read as HHMM when suffixed with "h" ("2030h").
func ParseTime(raw string) (TimeOfDay, error) {
	s := normalize(raw)
	if s == "" {
		return 0, ErrUnparseableTime
	}

	switch {
	case strings.Contains(s, "mediodia") || s == "noon":
		return adjustHalves(s, 12, 0)
	case strings.Contains(s, "medianoche") || s == "midnight":
		return adjustHalves(s, 0, 0)
	}

	idx := clockPattern.FindStringSubmatchIndex(s)
	if idx == nil {
		return 0, ErrUnparseableTime
	}
	digits := s[idx[2]:idx[3]]
	after := s[idx[1]:]
	hour, minute := 0, 0
	switch {
	case len(digits) <= 2:
		hour, _ = strconv.Atoi(digits)
		if idx[4] >= 0 {
			minute, _ = strconv.Atoi(s[idx[4]:idx[5]])
		}
	case len(digits) == 4 && idx[4] < 0 && strings.HasPrefix(after, "h"):
		hour, _ = strconv.Atoi(digits[:2])
		minute, _ = strconv.Atoi(digits[2:])
		after = after[1:]
	default:
		return 0, ErrUnparseableTime
	}

	if mm := minutesPattern.FindStringSubmatch(after); mm != nil {
		if idx[4] >= 0 || len(digits) > 2 {
			return 0, ErrUnparseableTime
		}
		n, _ := strconv.Atoi(mm[2])
		if n == 0 || n > 59 {
			return 0, ErrUnparseableTime
		}
		if mm[1] == "menos" {
			n = -n
		}
		minute = n
		after = after[len(mm[0]):]
	}
	if hour > 23 || minute > 59 {
		return 0, ErrUnparseableTime
	}

	rest := strings.TrimSpace(s[:idx[0]] + " " + after)
	if anyDigit.MatchString(rest) {
		return 0, ErrUnparseableTime
	}
	switch mer := detectMeridiem(rest); mer {
	case meridiemPM:
		if hour > 12 {
			return 0, ErrUnparseableTime
		}
		if hour < 12 {
			hour += 12
		}
	case meridiemNight:
		if hour == 12 {
			hour = 0
		} else if hour < 12 {
			hour += 12
		}
	case meridiemAM:
		if hour > 12 {
			return 0, ErrUnparseableTime
		}
		if hour == 12 {
			hour = 0
		}
	default:
		if hour >= 1 && hour < 8 {
			hour += 12
		}
	}

	return adjustHalves(rest, hour, minute)
}

func normalize(raw string) string {
	s := accentReplacer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if tens, ok := minuteTens[f]; ok && i+2 < len(fields) && fields[i+1] == "y" {
			if unit, err := strconv.Atoi(numberWords[fields[i+2]]); err == nil && unit >= 1 && unit <= 9 {
				out = append(out, strconv.Itoa(tens+unit))
				i += 2
				continue
			}
		}
		if d, ok := numberWords[f]; ok {
			f = d
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func detectMeridiem(rest string) meridiem {
	switch {
	case strings.Contains(rest, "de la noche"), strings.Contains(rest, "por la noche"):
		return meridiemNight
	case hasWord(rest, "pm"),
		strings.Contains(rest, "de la tarde"),
		strings.Contains(rest, "por la tarde"),
		strings.Contains(rest, "evening"),
		strings.Contains(rest, "night"):
		return meridiemPM
	case hasWord(rest, "am"),
		strings.Contains(rest, "de la manana"),
		strings.Contains(rest, "morning"):
		return meridiemAM
	}
	return meridiemNone
}

func hasWord(s, word string) bool {
	for _, f := range strings.Fields(s) {
		if f == word {
			return true
		}
	}
	return false
}

// adjustHalves applies "y media", "y cuarto" and "menos cuarto".
func adjustHalves(rest string, hour, minute int) (TimeOfDay, error) {
	switch {
	case strings.Contains(rest, "y media"), strings.Contains(rest, "half past"):
		minute += 30
	case strings.Contains(rest, "y cuarto"), strings.Contains(rest, "quarter past"):
		minute += 15
	case strings.Contains(rest, "menos cuarto"), strings.Contains(rest, "quarter to"):
		minute -= 15
	}
	total := (hour*60 + minute + minutesPerDay) % minutesPerDay
	if minute > 59 || minute < -59 {
		return 0, ErrUnparseableTime
	}
	return TimeOfDay(total), nil
}
