package sgf

import (
	"sort"
	"strconv"
	"strings"

	"goban/internal/domain/board"
	"goban/internal/domain/game"
)

// DefaultAppID is written to AP when the generator has no id of its own.
const DefaultAppID = "goban:1.0"

var rootKeyOrder = []string{
	"GM", "FF", "CA", "AP", "ST", "SZ", "KM", "HA", "RU", "DT", "RE", "GN",
	"PB", "PW", "BR", "WR", "PL", "AB", "AW", "AE", "C",
}

var nodeKeyOrder = []string{
	"B", "W", "PL", "AB", "AW", "AE", "C", "MN", "N", "TR", "SQ", "CR", "MA",
	"LB", "SL", "DD", "AR", "LN", "DM", "GB", "GW", "UC", "TE", "BM", "DO", "IT", "HO",
}

// Generator writes games as FF[4] text.
type Generator struct {
	AppID string
}

// GenerateSgfString serialises g with the default application id.
func GenerateSgfString(g *game.FullGameData) string {
	return Generator{AppID: DefaultAppID}.Generate(g)
}

func (gen Generator) Generate(g *game.FullGameData) string {
	root := g.Root()
	if root == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("(")
	writeNode(&b, gen.rootProperties(g, root), rootKeyOrder)
	writeChildren(&b, g, root)
	b.WriteString(")\n")
	return b.String()
}

// rootProperties merges stored root properties, generated headers and
// metadata, and the live root node, each layer overriding the last.
func (gen Generator) rootProperties(g *game.FullGameData, root *game.GameTreeNode) game.Properties {
	props := g.RootProperties.Clone()

	appID := gen.AppID
	if appID == "" {
		appID = DefaultAppID
	}
	size := g.Info.BoardSize
	if size == 0 {
		size = root.BoardState.Size()
	}

	props.Set("GM", "1")
	props.Set("FF", "4")
	props.Set("CA", "UTF-8")
	props.Set("AP", appID)
	props.Set("ST", "2")
	props.Set("SZ", strconv.Itoa(size))
	props.Set("KM", FormatKomi(g.Info.Komi))
	if g.Info.Handicap > 0 {
		props.Set("HA", strconv.Itoa(g.Info.Handicap))
	}
	for key, value := range map[string]string{
		"RU": g.Info.Ruleset,
		"DT": g.Info.Date,
		"RE": g.Info.Result,
		"GN": g.Info.GameName,
		"PB": g.Info.PlayerBlack,
		"PW": g.Info.PlayerWhite,
		"BR": g.Info.RankBlack,
		"WR": g.Info.RankWhite,
	} {
		if value != "" {
			props.Set(key, value)
		}
	}
	if g.InitialPlayer == board.White {
		props.Set("PL", board.White.String())
	}

	for key, values := range root.Properties {
		props[key] = append([]string(nil), values...)
	}
	if !props.Has("C") && g.Info.Comment != "" {
		props.Set("C", g.Info.Comment)
	}
	return props
}

// FormatKomi prints one decimal place unless the value is whole.
func FormatKomi(komi float64) string {
	if komi == float64(int64(komi)) {
		return strconv.FormatInt(int64(komi), 10)
	}
	return strconv.FormatFloat(komi, 'f', 1, 64)
}

// writeChildren walks below n. A single child continues the current
// sequence; several children are each wrapped in their own variation,
// main line first.
func writeChildren(b *strings.Builder, g *game.FullGameData, n *game.GameTreeNode) {
	for {
		switch {
		case len(n.ChildrenIDs) == 0:
			return
		case len(n.ChildrenIDs) == 1:
			child, ok := g.Node(n.ChildrenIDs[0])
			if !ok {
				return
			}
			writeNode(b, child.Properties, nodeKeyOrder)
			n = child
		default:
			for _, id := range n.ChildrenIDs {
				child, ok := g.Node(id)
				if !ok {
					continue
				}
				b.WriteString("(")
				writeNode(b, child.Properties, nodeKeyOrder)
				writeChildren(b, g, child)
				b.WriteString(")")
			}
			return
		}
	}
}

func writeNode(b *strings.Builder, props game.Properties, order []string) {
	b.WriteString(";")
	for _, key := range orderedKeys(props, order) {
		values := props[key]
		if len(values) == 0 || !game.ValidPropertyKey(key) {
			continue
		}
		b.WriteString(key)
		for _, v := range values {
			b.WriteString("[")
			b.WriteString(EscapeValue(v))
			b.WriteString("]")
		}
	}
}

// orderedKeys lists the keys of props named in order first, then the rest
// alphabetically.
func orderedKeys(props game.Properties, order []string) []string {
	keys := make([]string, 0, len(props))
	used := make(map[string]bool, len(order))
	for _, key := range order {
		if _, ok := props[key]; ok {
			keys = append(keys, key)
			used[key] = true
		}
	}
	var rest []string
	for key := range props {
		if !used[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
