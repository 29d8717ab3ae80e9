package permstore

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/permgroup/engine/internal/errs"
)

// FormatCycles renders a 0-based image array as 1-based disjoint-cycle
// notation, fixed points omitted. The identity permutation renders as "()".
func FormatCycles(image []int32) string {
	n := len(image)
	seen := make([]bool, n)
	var sb strings.Builder
	any := false

	for start := 0; start < n; start++ {
		if seen[start] || image[start] == int32(start) {
			seen[start] = true
			continue
		}
		// trace the cycle starting at `start`
		cyc := []int{start}
		seen[start] = true
		for next := int(image[start]); next != start; next = int(image[next]) {
			seen[next] = true
			cyc = append(cyc, next)
		}
		if len(cyc) < 2 {
			continue
		}
		any = true
		sb.WriteByte('(')
		for i, p := range cyc {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(p + 1))
		}
		sb.WriteByte(')')
	}
	if !any {
		return "()"
	}
	return sb.String()
}

// ParseCycleNotation parses 1-based disjoint-cycle notation into a 0-based
// image array sized to the largest point referenced (or size `minDegree`,
// whichever is larger). Whitespace and commas inside cycles are equivalent
// separators. "()" denotes identity. Non-positive or non-integer tokens are
// InvalidInput.
func ParseCycleNotation(s string, minDegree int32) ([]int32, error) {
	s = strings.TrimSpace(s)
	var cycles [][]int32
	i := 0
	for i < len(s) {
		switch {
		case unicode.IsSpace(rune(s[i])):
			i++
		case s[i] == '(':
			j := strings.IndexByte(s[i:], ')')
			if j < 0 {
				return nil, errs.New(errs.InvalidInput, "unterminated cycle in %q", s)
			}
			body := s[i+1 : i+j]
			i = i + j + 1
			cyc, err := parseCycleBody(body)
			if err != nil {
				return nil, err
			}
			if len(cyc) > 0 {
				cycles = append(cycles, cyc)
			}
		default:
			return nil, errs.New(errs.InvalidInput, "unexpected character %q in %q", s[i], s)
		}
	}

	maxPoint := int32(0)
	for _, cyc := range cycles {
		for _, p := range cyc {
			if p > maxPoint {
				maxPoint = p
			}
		}
	}
	degree := maxPoint
	if degree < minDegree {
		degree = minDegree
	}

	image := make([]int32, degree)
	for i := range image {
		image[i] = int32(i)
	}
	for _, cyc := range cycles {
		for i, p := range cyc {
			next := cyc[(i+1)%len(cyc)]
			image[p-1] = next - 1
		}
	}
	return image, nil
}

func parseCycleBody(body string) ([]int32, error) {
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	cyc := make([]int32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v <= 0 {
			return nil, errs.New(errs.InvalidInput, "invalid cycle token %q", f)
		}
		cyc = append(cyc, int32(v))
	}
	return cyc, nil
}
