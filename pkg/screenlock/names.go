package screenlock

import "strings"

const maxNameLength = 255

// isValidBusName reports whether name is a valid well-known or unique bus name.
func isValidBusName(name string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}

	unique := strings.HasPrefix(name, ":")
	if unique {
		name = name[1:]
	}

	elements := strings.Split(name, ".")
	if len(elements) < 2 {
		return false
	}

	for _, element := range elements {
		if element == "" {
			return false
		}
		for i, r := range element {
			switch {
			case isNameChar(r) || r == '-':
			case !unique && i == 0 && r >= '0' && r <= '9':
				return false
			case r >= '0' && r <= '9':
			default:
				return false
			}
		}
	}

	return true
}

func isValidInterfaceName(name string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}

	elements := strings.Split(name, ".")
	if len(elements) < 2 {
		return false
	}

	for _, element := range elements {
		if !isValidMemberName(element) {
			return false
		}
	}

	return true
}

func isValidMemberName(name string) bool {
	if name == "" || len(name) > maxNameLength {
		return false
	}

	for i, r := range name {
		switch {
		case isNameChar(r):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}
