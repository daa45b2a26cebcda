// Package parse converts user-entered duration and time-of-day
// strings into hour/minute/second fields. Both formats are forgiving:
// malformed input yields zero fields rather than an error, and entry
// creation proceeds regardless.
package parse

// Duration parses input of the form "<N>h<N>m<N>s" -- each component
// optional, in any subset, digits immediately followed by the unit
// letter, read left to right. "1m30s", "2h10s", and "60s" are all
// valid. Trailing digits with no unit letter are ignored, as is any
// unrecognised character.
func Duration(input string) (hours, minutes, seconds int) {
	i := 0
	for i < len(input) {
		value := 0
		for i < len(input) && input[i] >= '0' && input[i] <= '9' {
			value = value*10 + int(input[i]-'0')
			i++
		}
		if i >= len(input) {
			break
		}
		switch input[i] {
		case 'h':
			hours = value
		case 'm':
			minutes = value
		case 's':
			seconds = value
		}
		i++
	}
	return hours, minutes, seconds
}

// Clock parses a 6-digit "hhmmss" time of day by position. Short
// input and non-digit characters yield zero for the affected fields;
// nothing is validated or rejected.
func Clock(input string) (hours, minutes, seconds int) {
	digit := func(pos int) int {
		if pos >= len(input) {
			return 0
		}
		c := input[pos]
		if c < '0' || c > '9' {
			return 0
		}
		return int(c - '0')
	}
	hours = digit(0)*10 + digit(1)
	minutes = digit(2)*10 + digit(3)
	seconds = digit(4)*10 + digit(5)
	return hours, minutes, seconds
}
