package extract

const (
	markOpen  = "【"
	markClose = "】"
)

// FindSnippets returns up to maxSnippets non-overlapping hits of query in
// text, each with contextLen runes of context on both sides and the hit
// wrapped in 【】. Offsets are counted in runes, not bytes.
func FindSnippets(text string, query string, contextLen int, maxSnippets int) []string {
	if maxSnippets <= 0 {
		maxSnippets = 1
	}
	if contextLen < 0 {
		contextLen = 0
	}
	hay := []rune(text)
	needle := []rune(query)
	if len(needle) == 0 || len(hay) < len(needle) {
		return nil
	}

	var out []string
	for from := 0; len(out) < maxSnippets; {
		at := runeIndex(hay, needle, from)
		if at < 0 {
			break
		}
		end := at + len(needle)
		lo := max(at-contextLen, 0)
		hi := min(end+contextLen, len(hay))
		out = append(out, string(hay[lo:at])+markOpen+string(hay[at:end])+markClose+string(hay[end:hi]))
		from = end
	}
	return out
}

func runeIndex(hay, needle []rune, from int) int {
	last := len(hay) - len(needle)
outer:
	for i := max(from, 0); i <= last; i++ {
		for j, r := range needle {
			if hay[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
