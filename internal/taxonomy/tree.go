package taxonomy

// AreaNode is a leaf of the browse tree.
type AreaNode struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SubtrackNode is a second-level node of the browse tree.
type SubtrackNode struct {
	Name  string     `json:"name"`
	Count int        `json:"count"`
	Areas []AreaNode `json:"areas"`
}

// TrackNode is a top-level node of the browse tree.
type TrackNode struct {
	Name      string         `json:"name"`
	Count     int            `json:"count"`
	Subtracks []SubtrackNode `json:"subtracks"`
}

// Tree renders the taxonomy with counts attached. Tracks follow display order;
// subtracks and areas follow declared order. Tracks listed in the display order
// but absent from the taxonomy are kept with no subtracks.
func Tree(tax *Taxonomy, counts Counts) []TrackNode {
	names := tax.Tracks()
	out := make([]TrackNode, 0, len(names))
	for _, name := range names {
		node := TrackNode{Name: name, Count: counts.Get(name), Subtracks: []SubtrackNode{}}
		if tr, ok := tax.Track(name); ok {
			for _, st := range tr.Subtracks {
				sn := SubtrackNode{Name: st.Name, Count: counts.Get(st.Name), Areas: make([]AreaNode, len(st.Areas))}
				for i, a := range st.Areas {
					sn.Areas[i] = AreaNode{Name: a, Count: counts.Get(a)}
				}
				node.Subtracks = append(node.Subtracks, sn)
			}
		}
		out = append(out, node)
	}
	return out
}
