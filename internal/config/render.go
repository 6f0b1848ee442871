package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# mdnotes configuration (TOML)\n\n")

	top, sections, order := groupOptions(GetConfigOptions())
	for _, o := range top {
		b.WriteString(strings.Join(optionLines(o), "\n") + "\n\n")
	}
	for _, section := range order {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			b.WriteString(strings.Join(optionLines(o), "\n") + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// UpdateTOML merges missing defaults into an existing TOML document and
// comments out keys that are no longer part of the schema. It reports
// whether anything changed. Missing keys of an existing table are added to
// that table rather than to a second header.
func UpdateTOML(existing string) (string, bool) {
	opts := GetConfigOptions()
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Key] = true
	}

	lines := strings.Split(existing, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	// tableEnd is the index in out just past the last non-blank line of a table.
	tableEnd := map[string]int{"": 0}
	section := ""
	changed := false

	for _, line := range lines {
		trim := strings.TrimSpace(line)
		switch {
		case trim == "" || strings.HasPrefix(trim, "#"):
			out = append(out, line)
			continue
		case strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]"):
			section = strings.TrimSpace(trim[1 : len(trim)-1])
			out = append(out, line)
			tableEnd[section] = len(out)
			continue
		}
		key, ok := parseTOMLKey(line)
		if !ok {
			out = append(out, line)
			tableEnd[section] = len(out)
			continue
		}
		full := key
		if section != "" {
			full = section + "." + key
		}
		seen[full] = true
		if !known[full] {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out,
				indent+"# OUTDATED: option removed from config schema",
				indent+"# "+strings.TrimLeft(line, " \t"))
			changed = true
		} else {
			out = append(out, line)
		}
		tableEnd[section] = len(out)
	}

	var missing []ConfigOption
	for _, o := range opts {
		if !seen[o.Key] {
			missing = append(missing, o)
		}
	}
	if len(missing) == 0 {
		return strings.Join(out, "\n"), changed
	}

	top, sections, order := groupOptions(missing)
	type insertion struct {
		at    int
		lines []string
	}
	var inserts []insertion
	var fresh []string

	if len(top) > 0 {
		block := []string{"# Added by config update"}
		for _, o := range top {
			block = append(block, optionLines(o)...)
		}
		inserts = append(inserts, insertion{at: firstTableHeader(out), lines: append(block, "")})
	}
	for _, name := range order {
		var block []string
		for _, o := range sections[name] {
			block = append(block, optionLines(o)...)
		}
		if at, ok := tableEnd[name]; ok && name != "" {
			inserts = append(inserts, insertion{at: at, lines: block})
			continue
		}
		fresh = append(fresh, "["+name+"]")
		fresh = append(fresh, block...)
		fresh = append(fresh, "")
	}

	// Apply from the bottom up so earlier indexes stay valid.
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].at > inserts[j].at })
	for _, ins := range inserts {
		out = append(out[:ins.at:ins.at], append(ins.lines, out[ins.at:]...)...)
	}
	if len(fresh) > 0 {
		out = append(out, "# Added by config update")
		out = append(out, fresh...)
	}
	return strings.Join(out, "\n"), true
}

// groupOptions splits dotted keys into TOML sections, keeping first-seen order.
func groupOptions(opts []ConfigOption) ([]ConfigOption, map[string][]ConfigOption, []string) {
	var (
		top   []ConfigOption
		order []string
	)
	sections := make(map[string][]ConfigOption)
	for _, o := range opts {
		section, key, ok := strings.Cut(o.Key, ".")
		if !ok {
			top = append(top, o)
			continue
		}
		if _, exists := sections[section]; !exists {
			order = append(order, section)
		}
		sections[section] = append(sections[section], ConfigOption{Key: key, Default: o.Default, Comment: o.Comment})
	}
	return top, sections, order
}

func optionLines(o ConfigOption) []string {
	var lines []string
	if o.Comment != "" {
		lines = append(lines, "# "+o.Comment)
	}
	return append(lines, o.Key+" = "+tomlValue(o.Default))
}

func tomlValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case bool, int, int64:
		return fmt.Sprintf("%v", v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		quoted := make([]string, len(v))
		for i, s := range v {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

func firstTableHeader(lines []string) int {
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		if strings.HasPrefix(trim, "[") && strings.HasSuffix(trim, "]") {
			return i
		}
	}
	return len(lines)
}

func parseTOMLKey(line string) (string, bool) {
	idx := strings.Index(line, "=")
	if idx == -1 {
		return "", false
	}
	key := strings.TrimSpace(line[:idx])
	if key == "" || strings.HasPrefix(key, "[") || strings.HasPrefix(key, "\"") || strings.HasPrefix(key, "'") {
		return "", false
	}
	return key, true
}
