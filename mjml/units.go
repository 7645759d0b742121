package mjml

import (
	"strconv"
	"strings"
)

// parseWidth splits a CSS length into its value and unit. Numbers without
// unit are pixels; unparsable input yields 0.
func parseWidth(s string) (float64, string) {
	s = strings.TrimSpace(s)
	i := numericPrefix(s)
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, "px"
	}
	unit := strings.TrimSpace(s[i:])
	if unit == "" {
		unit = "px"
	}
	return v, unit
}

// parseInt reads the leading integer of s, ignoring anything after it.
// It returns 0 when s does not start with a number.
func parseInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	v, _ := strconv.Atoi(s[:end])
	return v
}

func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	return i
}

// formatNumber prints a float the shortest way that reads back to the same
// value, so 200 prints as "200" and 100/3 as "33.333333333333336".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func px(f float64) string {
	return formatNumber(f) + "px"
}

// shorthand returns the pixel size of one side of a CSS box shorthand
// such as "10px 25px".
func shorthand(value, direction string) int {
	parts := strings.Fields(value)
	var i int
	switch len(parts) {
	case 0:
		return 0
	case 1:
		i = 0
	case 2:
		if direction == "left" || direction == "right" {
			i = 1
		}
	case 3:
		switch direction {
		case "left", "right":
			i = 1
		case "bottom":
			i = 2
		}
	default:
		i = map[string]int{"top": 0, "right": 1, "bottom": 2, "left": 3}[direction]
	}
	return parseInt(parts[i])
}

// borderWidth extracts the width of a border declaration like
// "1px solid #000".
func borderWidth(value string) int {
	for _, part := range strings.Fields(value) {
		if part != "" && part[0] >= '0' && part[0] <= '9' {
			return parseInt(part)
		}
	}
	return 0
}

// sideValue returns the size of one side of a box attribute ("padding",
// "inner-padding", ...) giving precedence to attr-direction.
func (n *Node) sideValue(attr, direction string) int {
	if v := n.Get(attr + "-" + direction); v != "" {
		return parseInt(v)
	}
	v := n.Get(attr)
	if v == "" {
		return 0
	}
	return shorthand(v, direction)
}

// borderSide returns the border width of one side.
func (n *Node) borderSide(direction string) int {
	if v := n.Get("border-" + direction); v != "" {
		return borderWidth(v)
	}
	return borderWidth(n.Get("border"))
}

// horizontalSpacing is the sum of left and right padding and borders.
func (n *Node) horizontalSpacing() (paddings, borders int) {
	paddings = n.sideValue("padding", "left") + n.sideValue("padding", "right")
	borders = n.borderSide("left") + n.borderSide("right")
	return paddings, borders
}

// suffixClasses appends suffix to every class of a class list.
func suffixClasses(classes, suffix string) string {
	fields := strings.Fields(classes)
	for i, c := range fields {
		fields[i] = c + "-" + suffix
	}
	return strings.Join(fields, " ")
}
