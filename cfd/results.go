package cfd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var forceLine = regexp.MustCompile(`^\s*Total\s+(CL|CD|CMz|CL/CD)\s*:\s*([-+0-9.eE]+|nan|-?inf)`)

// ParseForces reads the totals from an SU2 forces breakdown.
func ParseForces(r io.Reader) (Coefficients, error) {
	var (
		c    Coefficients
		seen = make(map[string]bool)
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := forceLine.FindStringSubmatch(sc.Text())
		if m == nil || seen[m[1]] {
			continue
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return Coefficients{}, fmt.Errorf("total %s: %w", m[1], err)
		}
		seen[m[1]] = true
		switch m[1] {
		case "CL":
			c.CL = v
		case "CD":
			c.CD = v
		case "CMz":
			c.CM = v
		case "CL/CD":
			c.E = v
		}
	}
	if err := sc.Err(); err != nil {
		return Coefficients{}, err
	}
	for _, k := range []string{"CL", "CD", "CMz", "CL/CD"} {
		if !seen[k] {
			return Coefficients{}, fmt.Errorf("missing total %s", k)
		}
	}
	return c, nil
}

// History is one row of an SU2 convergence history, keyed by column name.
type History map[string]float64

// Coefficients returns the force coefficients recorded in the row.
func (h History) Coefficients() Coefficients {
	return Coefficients{CL: h["CL"], CD: h["CD"], CM: h["CMz"], E: h["CL/CD"]}
}

// Progress returns the iteration number and the elapsed wall time in
// minutes. Newer SU2 versions name the iteration column Inner_Iter.
func (h History) Progress() (iterations int, minutes float64) {
	it, ok := h["Iteration"]
	if !ok {
		it = h["Inner_Iter"]
	}
	return int(it), h["Time(min)"]
}

// ParseHistory returns the last row of an SU2 history file. Column names
// may be quoted and padded.
func ParseHistory(r io.Reader) (History, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var header, last []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		for i, f := range fields {
			fields[i] = strings.Trim(strings.TrimSpace(f), `"`)
		}
		if header == nil {
			header = fields
			continue
		}
		last = fields
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, errors.New("empty history")
	}
	if last == nil {
		return nil, errors.New("history has no rows")
	}
	if len(last) != len(header) {
		return nil, fmt.Errorf("last row has %d fields, header has %d", len(last), len(header))
	}

	h := make(History, len(header))
	for i, name := range header {
		v, err := strconv.ParseFloat(last[i], 64)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		h[name] = v
	}
	return h, nil
}
