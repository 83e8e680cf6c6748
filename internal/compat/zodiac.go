package compat

// Sign is one of the twelve western zodiac signs.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

var signs = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

// compatibleSigns is read as "row sign likes column sign". It is not checked
// for symmetry: Score looks up the first user's row only.
var compatibleSigns = map[Sign][]Sign{
	Aries:       {Leo, Sagittarius, Gemini, Aquarius},
	Taurus:      {Virgo, Capricorn, Cancer, Pisces},
	Gemini:      {Libra, Aquarius, Aries, Leo},
	Cancer:      {Scorpio, Pisces, Taurus, Virgo},
	Leo:         {Aries, Sagittarius, Gemini, Libra},
	Virgo:       {Taurus, Capricorn, Cancer, Scorpio},
	Libra:       {Gemini, Aquarius, Leo, Sagittarius},
	Scorpio:     {Cancer, Pisces, Virgo, Capricorn},
	Sagittarius: {Aries, Leo, Libra, Aquarius},
	Capricorn:   {Taurus, Virgo, Scorpio, Pisces},
	Aquarius:    {Gemini, Libra, Aries, Sagittarius},
	Pisces:      {Cancer, Scorpio, Taurus, Capricorn},
}

// compatibility is the lookup form of compatibleSigns, built once at init.
var compatibility = func() map[Sign]map[Sign]struct{} {
	m := make(map[Sign]map[Sign]struct{}, len(compatibleSigns))
	for sign, partners := range compatibleSigns {
		set := make(map[Sign]struct{}, len(partners))
		for _, p := range partners {
			set[p] = struct{}{}
		}
		m[sign] = set
	}
	return m
}()

var signsByName = func() map[string]Sign {
	m := make(map[string]Sign, len(signs))
	for _, s := range signs {
		m[string(s)] = s
	}
	return m
}()

// Signs returns the twelve signs in calendar order starting at Aries.
func Signs() []Sign {
	out := make([]Sign, len(signs))
	copy(out, signs)
	return out
}

// ParseSign resolves a stored sign name. Only the twelve capitalized names
// are recognized; "aries" or " Aries" are unknown signs.
func ParseSign(name string) (Sign, bool) {
	s, ok := signsByName[name]
	return s, ok
}

// CompatibleSigns returns a copy of the signs listed as compatible with sign.
func CompatibleSigns(sign Sign) []Sign {
	partners := compatibleSigns[sign]
	out := make([]Sign, len(partners))
	copy(out, partners)
	return out
}

// IsCompatible reports whether b is listed in a's row of the table.
// Unknown or empty names are never compatible.
func IsCompatible(a, b string) bool {
	signA, ok := ParseSign(a)
	if !ok {
		return false
	}
	signB, ok := ParseSign(b)
	if !ok {
		return false
	}
	_, ok = compatibility[signA][signB]
	return ok
}
