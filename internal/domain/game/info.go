package game

// HeaderKeys are the format headers the generator always writes itself.
var HeaderKeys = []string{"GM", "FF", "CA", "AP", "ST"}

// MetadataKeys are the root properties derived from GameInfo.
var MetadataKeys = []string{"SZ", "KM", "HA", "RU", "DT", "RE", "GN", "PB", "PW", "BR", "WR"}

// WithInfo replaces the game metadata. Stored copies of the metadata keys
// are dropped so the new values are the ones written out; a changed
// comment is mirrored onto the root's C property.
func (g *FullGameData) WithInfo(info GameInfo) *FullGameData {
	next := g.clone()
	next.RootProperties.Delete(MetadataKeys...)

	if root, ok := g.Node(g.RootID); ok {
		updated := root.clone()
		updated.Properties.Delete(MetadataKeys...)
		if info.Comment != g.Info.Comment {
			if info.Comment == "" {
				updated.Properties.Delete("C")
			} else {
				updated.Properties.Set("C", info.Comment)
			}
			updated.Comment = info.Comment
		}
		next.Nodes[updated.ID] = updated
	}

	info.BoardSize = g.Info.BoardSize
	next.Info = info
	return next
}

// Apply returns info with the non-nil fields of p applied.
func (p InfoPatch) Apply(info GameInfo) GameInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	if p.Komi != nil {
		info.Komi = *p.Komi
	}
	set(&info.Ruleset, p.Ruleset)
	set(&info.Date, p.Date)
	set(&info.Result, p.Result)
	set(&info.GameName, p.GameName)
	set(&info.PlayerBlack, p.PlayerBlack)
	set(&info.PlayerWhite, p.PlayerWhite)
	set(&info.RankBlack, p.RankBlack)
	set(&info.RankWhite, p.RankWhite)
	set(&info.Comment, p.Comment)
	return info
}
