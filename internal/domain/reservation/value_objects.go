package reservation

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidPhone       = errors.New("phone must contain at least 6 digits")
	ErrInvalidName        = errors.New("client name is required")
	ErrNoteTooLong        = errors.New("note exceeds 500 characters")
	ErrUnknownSpecialNeed = errors.New("unknown special need")
)

const (
	maxNoteLength = 500
	phoneTail     = 9
)

// Phone keeps digits only. Two phones match when their last nine digits agree,
// which ignores country prefixes such as +34.
type Phone struct {
	digits string
}

func NewPhone(raw string) (Phone, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() < 6 {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{digits: b.String()}, nil
}

func (p Phone) String() string { return p.digits }

func (p Phone) tail() string {
	if len(p.digits) <= phoneTail {
		return p.digits
	}
	return p.digits[len(p.digits)-phoneTail:]
}

func (p Phone) Matches(other Phone) bool {
	return p.digits != "" && p.tail() == other.tail()
}

type ClientName struct {
	value string
}

func NewClientName(raw string) (ClientName, error) {
	v := strings.Join(strings.Fields(raw), " ")
	if v == "" {
		return ClientName{}, ErrInvalidName
	}
	return ClientName{value: v}, nil
}

func (n ClientName) String() string { return n.value }

// Matches compares names case-insensitively; a lookup by first name alone
// matches a stored full name.
func (n ClientName) Matches(query string) bool {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if q == "" {
		return false
	}
	v := strings.ToLower(n.value)
	return v == q || strings.HasPrefix(v, q+" ")
}

type Note struct {
	value string
}

func NewNote(raw string) (Note, error) {
	v := strings.TrimSpace(raw)
	if utf8.RuneCountInString(v) > maxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: v}, nil
}

func (n Note) String() string { return n.value }

type SpecialNeed string

const (
	NeedWheelchair  SpecialNeed = "wheelchair"
	NeedHighChair   SpecialNeed = "high-chair"
	NeedAllergy     SpecialNeed = "allergy"
	NeedCelebration SpecialNeed = "celebration"
	NeedBusiness    SpecialNeed = "business"
)

var needAliases = map[string]SpecialNeed{
	"wheelchair":      NeedWheelchair,
	"mobility":        NeedWheelchair,
	"accessible":      NeedWheelchair,
	"accesible":       NeedWheelchair,
	"silla de ruedas": NeedWheelchair,
	"movilidad":       NeedWheelchair,
	"high-chair":      NeedHighChair,
	"highchair":       NeedHighChair,
	"trona":           NeedHighChair,
	"allergy":         NeedAllergy,
	"alergia":         NeedAllergy,
	"celebration":     NeedCelebration,
	"cumpleaños":      NeedCelebration,
	"celebracion":     NeedCelebration,
	"celebración":     NeedCelebration,
	"business":        NeedBusiness,
	"negocios":        NeedBusiness,
}

func ParseSpecialNeed(raw string) (SpecialNeed, error) {
	need, ok := needAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", ErrUnknownSpecialNeed
	}
	return need, nil
}

// Needs is a sorted set of special needs.
type Needs []SpecialNeed

func ParseNeeds(raw []string) (Needs, error) {
	out := make(Needs, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		n, err := ParseSpecialNeed(r)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

func (n Needs) Has(need SpecialNeed) bool {
	return slices.Contains(n, need)
}

// RequiresAccessibility is true for mobility needs, which narrow allocation to accessible tables.
func (n Needs) RequiresAccessibility() bool {
	return n.Has(NeedWheelchair)
}

func (n Needs) Strings() []string {
	out := make([]string, len(n))
	for i, v := range n {
		out[i] = string(v)
	}
	return out
}
